// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package motosuc contains the motorcycles use case which supports
// registration of motorcycles (announcing them over the message
// broker), listing them with an optional plate filter, updating a
// license plate, and removing motorcycles which were never rented.
package motosuc

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/motorent/rentweb/pkg/core/cerr"
	"github.com/motorent/rentweb/pkg/core/log"
	"github.com/motorent/rentweb/pkg/core/model"
	"github.com/motorent/rentweb/pkg/core/repo"
)

// EventPublisher announces registered motorcycles to interested
// consumers. Delivery is fire-and-forget; implementations must not
// block registration on broker availability longer than their own
// publish timeout.
type EventPublisher interface {
	PublishMotorcycleRegistered(
		ctx context.Context, e model.MotorcycleRegistered,
	) error
}

// UseCase represents the motorcycles use case. It holds a database
// connection pool, the motorcycles and rentals repository instances
// (to be guided with the DB pool), and the event publisher.
type UseCase struct {
	pool      repo.Pool
	motosrp   repo.Motorcycles
	rentalsrp repo.Rentals
	events    EventPublisher
}

// New instantiates a motorcycles use case. A nil events publisher
// disables registration announcements.
func New(
	p repo.Pool, m repo.Motorcycles, r repo.Rentals, events EventPublisher,
) *UseCase {
	return &UseCase{pool: p, motosrp: m, rentalsrp: r, events: events}
}

// Create registers a motorcycle after checking that its license plate
// is not taken yet, then publishes a registration event. A failed
// publication is logged and does not fail the registration.
func (motos *UseCase) Create(
	ctx context.Context, year int, mdl, licensePlate string,
) (moto *model.Motorcycle, err error) {
	err = motos.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := motos.motosrp.Conn(c)
		taken, err := q.PlateExists(ctx, licensePlate, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return cerr.BadRequest(errors.New(
				"the license plate is already registered",
			))
		}
		moto = model.NewMotorcycle(year, mdl, licensePlate)
		return q.Create(ctx, moto)
	})
	if err != nil {
		return nil, err
	}
	if motos.events != nil {
		e := model.MotorcycleRegistered{
			MotorcycleID:     moto.ID,
			Year:             moto.Year,
			Model:            moto.Model,
			LicensePlate:     moto.LicensePlate,
			RegistrationDate: moto.CreatedAt,
		}
		if perr := motos.events.PublishMotorcycleRegistered(ctx, e); perr != nil {
			log.Error(
				ctx, "publishing motorcycle registered event",
				log.Err("error", perr),
			)
		}
	}
	return moto, nil
}

// List returns all registered motorcycles, keeping only those with
// the given license plate when plateFilter is not empty.
func (motos *UseCase) List(
	ctx context.Context, plateFilter string,
) (ms []*model.Motorcycle, err error) {
	err = motos.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		ms, err = motos.motosrp.Conn(c).List(ctx, plateFilter)
		return err
	})
	if err != nil {
		ms = nil
	}
	return
}

// Get returns the mid motorcycle, failing with a not-found error when
// no such motorcycle exists.
func (motos *UseCase) Get(
	ctx context.Context, mid uuid.UUID,
) (moto *model.Motorcycle, err error) {
	err = motos.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		moto, err = motos.motosrp.Conn(c).GetByID(ctx, mid)
		return err
	})
	if err != nil {
		moto = nil
	}
	return
}

// UpdateLicensePlate replaces the license plate of the mid motorcycle
// after checking that the new plate is not taken by another
// motorcycle. A missing motorcycle is reported as a validation
// failure since it is encountered in the middle of an update.
func (motos *UseCase) UpdateLicensePlate(
	ctx context.Context, mid uuid.UUID, plate string,
) (moto *model.Motorcycle, err error) {
	err = motos.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := motos.motosrp.Conn(c)
		if _, err := q.GetByID(ctx, mid); err != nil {
			if cerr.IsNotFound(err) {
				return cerr.BadRequest(errors.New("motorcycle not found"))
			}
			return err
		}
		taken, err := q.PlateExists(ctx, plate, mid)
		if err != nil {
			return err
		}
		if taken {
			return cerr.BadRequest(errors.New(
				"the license plate is already registered",
			))
		}
		moto, err = q.UpdateLicensePlate(ctx, mid, plate)
		return err
	})
	if err != nil {
		moto = nil
	}
	return
}

// Remove deletes the mid motorcycle. Motorcycles which are referenced
// by any rental, settled or not, may not be removed.
func (motos *UseCase) Remove(ctx context.Context, mid uuid.UUID) error {
	return motos.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := motos.motosrp.Conn(c)
		if _, err := q.GetByID(ctx, mid); err != nil {
			if cerr.IsNotFound(err) {
				return cerr.BadRequest(errors.New("motorcycle not found"))
			}
			return err
		}
		rented, err := motos.rentalsrp.Conn(c).ExistsByMotorcycle(ctx, mid)
		if err != nil {
			return err
		}
		if rented {
			return cerr.BadRequest(errors.New(
				"a motorcycle with registered rentals may not be removed",
			))
		}
		return q.Delete(ctx, mid)
	})
}
