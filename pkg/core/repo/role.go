// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Role is a string specifying a database connection role. Each role
// has a set of granted privileges which indicates which operations
// may be performed after using it for connecting to a database.
// Identification information of a role are captured from the config
// file while its authentication information are read from a pgpass
// format passwords file.
type Role string

// These constants specify the expected database roles.
const (
	// AdminRole is an administrator role which is used by the schema
	// initialization command. It must exist beforehand with enough
	// privileges to create tables and indices.
	AdminRole Role = "admin"

	// NormalRole is an unprivileged role which is used for all common
	// operations on an already initialized schema.
	NormalRole Role = "rentweb"
)
