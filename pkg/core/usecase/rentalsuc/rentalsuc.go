// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package rentalsuc contains the rentals use case which supports
// creation of rental agreements, registering returns with their
// settlement, and previewing a settlement without persisting it.
package rentalsuc

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/motorent/rentweb/pkg/core/cerr"
	"github.com/motorent/rentweb/pkg/core/model"
	"github.com/motorent/rentweb/pkg/core/repo"
)

// UseCase represents the rentals use case. It holds a database
// connection pool and the rentals, motorcycles, and delivery persons
// repository instances (to be guided with the DB pool).
type UseCase struct {
	pool         repo.Pool
	rentalsrp    repo.Rentals
	motosrp      repo.Motorcycles
	deliveriesrp repo.DeliveryPersons

	now func() time.Time
}

// New instantiates a rentals use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error. Optional parameters are passed as
// a series of functional options.
func New(
	p repo.Pool,
	r repo.Rentals, m repo.Motorcycles, d repo.DeliveryPersons,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{
		pool: p, rentalsrp: r, motosrp: m, deliveriesrp: d,
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, errors.Join(errors.New("invalid option"), err)
		}
	}
	// now, deal with defaults
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc, nil
}

// Create agrees a rental of the mid motorcycle to the did delivery
// person for a planDays plan. The motorcycle and delivery person must
// exist, the person must be licensed for motorcycles, hold no other
// open rental, and planDays must name a known plan. The rental starts
// tomorrow (UTC calendar date) and commits to the full-term cost.
//
// The eligibility checks and the insert run in one transaction and
// the rentals table carries a partial unique index on open rentals,
// so two racing creations for the same person cannot both succeed.
func (rentals *UseCase) Create(
	ctx context.Context, mid, did uuid.UUID, planDays int,
) (rental *model.Rental, err error) {
	plan, err := model.ParseRentalPlan(planDays)
	if err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = rentals.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			if _, err := rentals.motosrp.Tx(tx).GetByID(ctx, mid); err != nil {
				if cerr.IsNotFound(err) {
					return cerr.BadRequest(errors.New("motorcycle not found"))
				}
				return err
			}
			dp, err := rentals.deliveriesrp.Tx(tx).GetByID(ctx, did)
			if err != nil {
				if cerr.IsNotFound(err) {
					return cerr.BadRequest(errors.New(
						"delivery person not found",
					))
				}
				return err
			}
			if !dp.CanRent() {
				return cerr.BadRequest(errors.New(
					"only delivery persons licensed in the A category may rent",
				))
			}
			q := rentals.rentalsrp.Tx(tx)
			active, err := q.GetActiveByDeliveryPerson(ctx, did)
			if err != nil {
				return err
			}
			if active != nil {
				return cerr.BadRequest(errors.New(
					"the delivery person already has an active rental",
				))
			}
			start := model.DateOnly(rentals.now().UTC()).AddDate(0, 0, 1)
			expectedEnd := start.AddDate(0, 0, plan.Days())
			rental = model.NewRental(mid, did, start, expectedEnd, plan)
			return q.Create(ctx, rental)
		})
	})
	if err != nil {
		rental = nil
	}
	return
}

// Get returns the rid rental, failing with a not-found error when no
// such rental exists.
func (rentals *UseCase) Get(
	ctx context.Context, rid uuid.UUID,
) (rental *model.Rental, err error) {
	err = rentals.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		rental, err = rentals.rentalsrp.Conn(c).GetByID(ctx, rid)
		return err
	})
	if err != nil {
		rental = nil
	}
	return
}

// Return settles the rid rental for the given return date and
// persists the settlement. A missing rental is reported as a
// validation failure since it is encountered in the middle of the
// return operation.
func (rentals *UseCase) Return(
	ctx context.Context, rid uuid.UUID, returnDate time.Time,
) (rental *model.Rental, err error) {
	err = rentals.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := rentals.rentalsrp.Conn(c)
		rental, err = q.GetByID(ctx, rid)
		if err != nil {
			if cerr.IsNotFound(err) {
				return cerr.BadRequest(errors.New("rental not found"))
			}
			return err
		}
		rental.RegisterReturn(returnDate)
		return q.Update(ctx, rental)
	})
	if err != nil {
		rental = nil
	}
	return
}

// Calculate previews the settlement of the rid rental for the given
// return date without persisting anything. The computation runs on a
// transient clone of the stored rental and the result is reported
// under the stored rental's identity.
func (rentals *UseCase) Calculate(
	ctx context.Context, rid uuid.UUID, returnDate time.Time,
) (rental *model.Rental, err error) {
	var stored *model.Rental
	err = rentals.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		stored, err = rentals.rentalsrp.Conn(c).GetByID(ctx, rid)
		return err
	})
	if err != nil {
		if cerr.IsNotFound(err) {
			return nil, cerr.BadRequest(errors.New("rental not found"))
		}
		return nil, err
	}
	preview := stored.Clone()
	preview.RegisterReturn(returnDate)
	preview.ID = stored.ID
	preview.CreatedAt = stored.CreatedAt
	return preview, nil
}
