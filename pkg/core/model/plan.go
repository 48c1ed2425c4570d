// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// RentalPlan specifies the rental plan enum. Each plan commits the
// renter to a fixed number of days with its own daily rate and, for
// the two shortest plans, an early-return fine rate. The enum value
// is the committed day count itself, but only the five enumerated
// values are valid; any other day count fails Validate.
type RentalPlan int

// Valid values for the RentalPlan enum.
const (
	RentalPlan7  RentalPlan = 7
	RentalPlan15 RentalPlan = 15
	RentalPlan30 RentalPlan = 30
	RentalPlan45 RentalPlan = 45
	RentalPlan50 RentalPlan = 50
)

// ErrUnknownRentalPlan indicates that a given day count does not name
// a known rental plan.
var ErrUnknownRentalPlan = errors.New(
	"unknown rental plan; valid plans are 7, 15, 30, 45, and 50 days",
)

// RentalPlanError indicates an invalid rental plan value, containing
// the invalid day count as an integer.
type RentalPlanError int

// Error implements the error interface, returning a string
// representation of the RentalPlanError.
func (e RentalPlanError) Error() string {
	return fmt.Sprintf("invalid rental plan: %d days", int(e))
}

// Pricing table constants. The table is fixed by business policy and
// exposes no configuration surface.
var (
	dailyRate7  = decimal.RequireFromString("30.00")
	dailyRate15 = decimal.RequireFromString("28.00")
	dailyRate30 = decimal.RequireFromString("22.00")
	dailyRate45 = decimal.RequireFromString("20.00")
	dailyRate50 = decimal.RequireFromString("18.00")

	fineRate7  = decimal.RequireFromString("0.20")
	fineRate15 = decimal.RequireFromString("0.40")

	// lateFeePerDay is the flat per-day surcharge for late returns,
	// independent of the plan.
	lateFeePerDay = decimal.RequireFromString("50.00")
)

// ParseRentalPlan parses the given day count and returns a RentalPlan,
// helping to deserialize it when reading a REST API request.
// For invalid day counts, a zero RentalPlan and ErrUnknownRentalPlan
// will be returned.
func ParseRentalPlan(days int) (RentalPlan, error) {
	p := RentalPlan(days)
	if err := p.Validate(); err != nil {
		return 0, ErrUnknownRentalPlan
	}
	return p, nil
}

// Validate returns nil if the RentalPlan value is valid. For invalid
// values, an instance of the RentalPlanError will be returned.
func (p RentalPlan) Validate() error {
	switch p {
	case RentalPlan7, RentalPlan15, RentalPlan30,
		RentalPlan45, RentalPlan50:
		return nil
	default:
		return RentalPlanError(p)
	}
}

// Days returns the committed day count of this plan.
func (p RentalPlan) Days() int {
	return int(p)
}

// DailyRate returns the fixed daily rate of this plan per the pricing
// table. Invalid plans cause a panic; a RentalPlan must be validated
// at construction time (fail closed), never here.
func (p RentalPlan) DailyRate() decimal.Decimal {
	switch p {
	case RentalPlan7:
		return dailyRate7
	case RentalPlan15:
		return dailyRate15
	case RentalPlan30:
		return dailyRate30
	case RentalPlan45:
		return dailyRate45
	case RentalPlan50:
		return dailyRate50
	default:
		panic(RentalPlanError(p))
	}
}

// earlyReturnFine computes the fine for returning this plan early,
// given the value of the unused days. Only the 7 and 15 day plans
// carry a fine rate; the longer plans yield an exact zero, not a
// missing value.
func (p RentalPlan) earlyReturnFine(unusedValue decimal.Decimal) decimal.Decimal {
	switch p {
	case RentalPlan7:
		return unusedValue.Mul(fineRate7)
	case RentalPlan15:
		return unusedValue.Mul(fineRate15)
	default:
		return decimal.Zero
	}
}
