// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., as required by ORM or JSON
// serialization libraries) since adding more tags does not complicate
// definition of a struct, but can prevent unnecessary structs
// duplication.
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrBlankLicensePlate indicates that an empty or all-whitespace
// license plate string was passed to a motorcycle mutation method.
var ErrBlankLicensePlate = errors.New("license plate may not be blank")

// Motorcycle models a registered motorcycle which may be rented out
// to a delivery person. The license plate is unique fleet-wide; that
// invariant is enforced by the use cases layer (backed by a database
// unique constraint) and not by this entity.
type Motorcycle struct {
	ID           uuid.UUID `json:"id"`
	Year         int       `json:"year"`
	Model        string    `json:"model"`
	LicensePlate string    `json:"license_plate"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewMotorcycle instantiates a motorcycle with a fresh random ID and
// the current UTC time as its creation timestamp.
func NewMotorcycle(year int, mdl, licensePlate string) *Motorcycle {
	return &Motorcycle{
		ID:           uuid.New(),
		Year:         year,
		Model:        mdl,
		LicensePlate: licensePlate,
		CreatedAt:    time.Now().UTC(),
	}
}

// UpdateLicensePlate replaces the license plate of this motorcycle.
// Blank plates are rejected with ErrBlankLicensePlate.
func (m *Motorcycle) UpdateLicensePlate(plate string) error {
	if strings.TrimSpace(plate) == "" {
		return ErrBlankLicensePlate
	}
	m.LicensePlate = plate
	return nil
}
