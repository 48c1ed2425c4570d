// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres provides the PostgreSQL adapter, realizing the
// pkg/core/repo connection pool, connection, and transaction
// interfaces on top of the GORM framework. Table-specific repository
// packages, named like motosrp, build their queries on the Queryer
// type set which accepts both connections and transactions.
package postgres
