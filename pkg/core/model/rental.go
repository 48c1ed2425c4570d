// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rental models a rental agreement between a delivery person and a
// motorcycle. The committed cost is computed at construction time
// assuming full-term use and is overwritten with the final settlement
// when a return is registered.
//
// Exactly one of FineAmount and AdditionalAmount may be non-nil at any
// time: a fine applies to early returns, an additional amount to late
// returns, and neither to on-time returns or open rentals. EndDate
// equals ExpectedEndDate until a return is registered and the actual
// return date afterwards.
type Rental struct {
	ID               uuid.UUID       `json:"id"`
	MotorcycleID     uuid.UUID       `json:"motorcycle_id"`
	DeliveryPersonID uuid.UUID       `json:"delivery_person_id"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	ExpectedEndDate  time.Time       `json:"expected_end_date"`
	Plan             RentalPlan      `json:"plan_days"`
	DailyRate        decimal.Decimal `json:"daily_rate"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	CreatedAt        time.Time       `json:"created_at"`

	ReturnDate       *time.Time       `json:"return_date,omitempty"`
	FineAmount       *decimal.Decimal `json:"fine_amount,omitempty"`
	AdditionalAmount *decimal.Decimal `json:"additional_amount,omitempty"`
}

// NewRental instantiates a rental with a fresh random ID, committing
// to the given plan. The daily rate is looked up from the pricing
// table and the provisional total assumes full-term use. The plan must
// have been validated beforehand; an unknown plan causes a panic here
// since the pricing table fails closed.
func NewRental(
	motorcycleID, deliveryPersonID uuid.UUID,
	startDate, expectedEndDate time.Time,
	plan RentalPlan,
) *Rental {
	rate := plan.DailyRate()
	return &Rental{
		ID:               uuid.New(),
		MotorcycleID:     motorcycleID,
		DeliveryPersonID: deliveryPersonID,
		StartDate:        NormalizeUTC(startDate),
		EndDate:          NormalizeUTC(expectedEndDate),
		ExpectedEndDate:  NormalizeUTC(expectedEndDate),
		Plan:             plan,
		DailyRate:        rate,
		TotalAmount:      rate.Mul(decimal.NewFromInt(int64(plan.Days()))),
		CreatedAt:        time.Now().UTC(),
	}
}

// Clone returns a transient copy of this rental which shares the
// motorcycle, delivery person, dates, and plan but carries a new ID
// and no settlement. It backs the calculate-without-persisting use
// case: RegisterReturn may be invoked on the clone while the stored
// rental stays untouched.
func (r *Rental) Clone() *Rental {
	return NewRental(
		r.MotorcycleID, r.DeliveryPersonID,
		r.StartDate, r.ExpectedEndDate, r.Plan,
	)
}

// Active reports whether this rental is still open, that is, no
// return has been registered yet.
func (r *Rental) Active() bool {
	return r.ReturnDate == nil
}

// RegisterReturn settles this rental for the given return date,
// mutating EndDate, TotalAmount, FineAmount, AdditionalAmount, and
// ReturnDate. All date comparisons use calendar-date granularity in
// UTC; the stored ReturnDate keeps the full (UTC-normalized)
// precision.
//
// Early returns are billed for the days actually used (counting both
// the start and the return day) plus a fine proportional to the value
// of the unused days; the 30, 45, and 50 day plans carry a zero fine.
// Late returns are billed for the full committed term plus a flat
// per-day surcharge. On-time returns are billed for the days used.
// The computation is pure and total for any valid plan and any two
// comparable dates.
func (r *Rental) RegisterReturn(returnDate time.Time) {
	returnDate = NormalizeUTC(returnDate)
	r.ReturnDate = &returnDate
	r.EndDate = returnDate

	ret := DateOnly(returnDate)
	expected := DateOnly(r.ExpectedEndDate)
	start := DateOnly(r.StartDate)

	switch {
	case ret.Before(expected):
		r.AdditionalAmount = nil

		daysUsed := daysBetween(start, ret) + 1
		daysNotUsed := daysBetween(ret, expected)
		unusedValue := r.DailyRate.Mul(
			decimal.NewFromInt(int64(daysNotUsed)),
		)
		fine := r.Plan.earlyReturnFine(unusedValue)
		r.FineAmount = &fine
		r.TotalAmount = r.DailyRate.Mul(
			decimal.NewFromInt(int64(daysUsed)),
		).Add(fine)
	case ret.After(expected):
		r.FineAmount = nil

		additionalDays := daysBetween(expected, ret)
		additional := lateFeePerDay.Mul(
			decimal.NewFromInt(int64(additionalDays)),
		)
		r.AdditionalAmount = &additional
		r.TotalAmount = r.DailyRate.Mul(
			decimal.NewFromInt(int64(r.Plan.Days())),
		).Add(additional)
	default:
		r.FineAmount = nil
		r.AdditionalAmount = nil

		daysUsed := daysBetween(start, ret) + 1
		r.TotalAmount = r.DailyRate.Mul(
			decimal.NewFromInt(int64(daysUsed)),
		)
	}
}
