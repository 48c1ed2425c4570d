// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migration creates the database schema objects, so a fresh
// database may be initialized before serving requests.
package migration

import (
	"context"
	"fmt"

	"github.com/motorent/rentweb/pkg/core/repo"
)

// statements lists the schema DDL in dependency order. All statements
// are idempotent, hence, running the initialization against an already
// initialized database is harmless.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS motorcycles (
	mid uuid PRIMARY KEY,
	year integer NOT NULL,
	model varchar NOT NULL,
	license_plate varchar NOT NULL,
	created_at timestamptz NOT NULL,
	CONSTRAINT uq_motorcycles_license_plate UNIQUE (license_plate)
)`,
	`CREATE TABLE IF NOT EXISTS delivery_persons (
	did uuid PRIMARY KEY,
	name varchar NOT NULL,
	tax_id varchar NOT NULL,
	birth_date timestamptz NOT NULL,
	license_number varchar NOT NULL,
	license_type varchar NOT NULL,
	license_image_url varchar,
	created_at timestamptz NOT NULL,
	CONSTRAINT uq_delivery_persons_tax_id UNIQUE (tax_id),
	CONSTRAINT uq_delivery_persons_license_number UNIQUE (license_number)
)`,
	`CREATE TABLE IF NOT EXISTS rentals (
	rid uuid PRIMARY KEY,
	motorcycle_id uuid NOT NULL
		REFERENCES motorcycles (mid),
	delivery_person_id uuid NOT NULL
		REFERENCES delivery_persons (did),
	start_date timestamptz NOT NULL,
	end_date timestamptz NOT NULL,
	expected_end_date timestamptz NOT NULL,
	plan_days integer NOT NULL,
	daily_rate decimal(10,2) NOT NULL,
	total_amount decimal(10,2) NOT NULL,
	return_date timestamptz,
	fine_amount decimal(10,2),
	additional_amount decimal(10,2),
	created_at timestamptz NOT NULL
)`,
	// one open rental per delivery person, enforced by the DBMS, so
	// two concurrent creation requests cannot both commit
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_rentals_active_delivery_person
	ON rentals (delivery_person_id) WHERE return_date IS NULL`,
	`CREATE TABLE IF NOT EXISTS motorcycle_notifications (
	nid uuid PRIMARY KEY,
	motorcycle_id uuid NOT NULL,
	year integer NOT NULL,
	model varchar NOT NULL,
	license_plate varchar NOT NULL,
	notification_date timestamptz NOT NULL
)`,
}

// InitDB creates all tables and indices in one transaction, either
// initializing the entire schema or leaving the database untouched.
func InitDB(ctx context.Context, p repo.Pool) error {
	return p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			for _, stmt := range statements {
				if _, err := tx.Exec(ctx, stmt); err != nil {
					return fmt.Errorf("executing DDL: %w", err)
				}
			}
			return nil
		})
	})
}
