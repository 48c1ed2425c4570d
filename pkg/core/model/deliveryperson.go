// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryPerson models a registered delivery driver. The tax ID and
// license number are each unique fleet-wide; those invariants are
// enforced by the use cases layer (backed by database unique
// constraints) and not by this entity.
type DeliveryPerson struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	TaxID           string      `json:"tax_id"`
	BirthDate       time.Time   `json:"birth_date"`
	LicenseNumber   string      `json:"license_number"`
	LicenseType     LicenseType `json:"license_type"`
	LicenseImageURL *string     `json:"license_image_url,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// NewDeliveryPerson instantiates a delivery person with a fresh random
// ID and the current UTC time as its creation timestamp. The birth
// date is normalized to UTC.
func NewDeliveryPerson(
	name, taxID string,
	birthDate time.Time,
	licenseNumber string,
	licenseType LicenseType,
) *DeliveryPerson {
	return &DeliveryPerson{
		ID:            uuid.New(),
		Name:          name,
		TaxID:         taxID,
		BirthDate:     NormalizeUTC(birthDate),
		LicenseNumber: licenseNumber,
		LicenseType:   licenseType,
		CreatedAt:     time.Now().UTC(),
	}
}

// UpdateLicenseImage records the URL of the stored license image.
func (d *DeliveryPerson) UpdateLicenseImage(url string) {
	d.LicenseImageURL = &url
}

// CanRent reports whether this delivery person is licensed to rent a
// motorcycle. Only the A and AB categories qualify; category B alone
// does not cover motorcycles.
func (d *DeliveryPerson) CanRent() bool {
	return d.LicenseType == LicenseTypeA || d.LicenseType == LicenseTypeAB
}
