// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
)

// MotorcycleRegistered is the event payload which is published to the
// message broker whenever a motorcycle is registered. Delivery is
// fire-and-forget; registration does not depend on its confirmation.
type MotorcycleRegistered struct {
	MotorcycleID     uuid.UUID `json:"motorcycle_id"`
	Year             int       `json:"year"`
	Model            string    `json:"model"`
	LicensePlate     string    `json:"license_plate"`
	RegistrationDate time.Time `json:"registration_date"`
}

// MotorcycleNotification records a consumed registration event which
// matched the notification criteria (currently, motorcycles
// manufactured in 2024).
type MotorcycleNotification struct {
	ID               uuid.UUID `json:"id"`
	MotorcycleID     uuid.UUID `json:"motorcycle_id"`
	Year             int       `json:"year"`
	Model            string    `json:"model"`
	LicensePlate     string    `json:"license_plate"`
	NotificationDate time.Time `json:"notification_date"`
}

// NewMotorcycleNotification instantiates a notification record with a
// fresh random ID and the current UTC time.
func NewMotorcycleNotification(
	motorcycleID uuid.UUID, year int, mdl, licensePlate string,
) *MotorcycleNotification {
	return &MotorcycleNotification{
		ID:               uuid.New(),
		MotorcycleID:     motorcycleID,
		Year:             year,
		Model:            mdl,
		LicensePlate:     licensePlate,
		NotificationDate: time.Now().UTC(),
	}
}
