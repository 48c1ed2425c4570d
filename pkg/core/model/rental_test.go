// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/motorent/rentweb/pkg/core/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newRental(t *testing.T, start time.Time, plan int) *model.Rental {
	t.Helper()
	p, err := model.ParseRentalPlan(plan)
	require.NoError(t, err)
	return model.NewRental(
		uuid.New(), uuid.New(),
		start, start.AddDate(0, 0, p.Days()), p,
	)
}

func TestParseRentalPlan(t *testing.T) {
	for days, rate := range map[int]string{
		7:  "30.00",
		15: "28.00",
		30: "22.00",
		45: "20.00",
		50: "18.00",
	} {
		p, err := model.ParseRentalPlan(days)
		require.NoError(t, err, "plan of %d days must be valid", days)
		assert.Equal(t, days, p.Days())
		assert.Equal(t, rate, p.DailyRate().StringFixed(2))
	}
	for _, days := range []int{0, 1, 6, 8, 14, 16, 31, 60, -7} {
		_, err := model.ParseRentalPlan(days)
		assert.ErrorIs(
			t, err, model.ErrUnknownRentalPlan,
			"plan of %d days must be rejected", days,
		)
	}
}

func TestNewRentalCommittedCost(t *testing.T) {
	start := date(2024, time.January, 1)
	for days, total := range map[int]string{
		7:  "210.00",
		15: "420.00",
		30: "660.00",
		45: "900.00",
		50: "900.00",
	} {
		r := newRental(t, start, days)
		assert.Equal(t, total, r.TotalAmount.StringFixed(2))
		assert.Equal(t, r.ExpectedEndDate, r.EndDate)
		assert.Nil(t, r.ReturnDate)
		assert.Nil(t, r.FineAmount)
		assert.Nil(t, r.AdditionalAmount)
		assert.True(t, r.Active())
	}
}

func TestRegisterReturnEarlyWithFine(t *testing.T) {
	// plan 7: start 2024-01-01, expected 2024-01-08, returned
	// 2024-01-05, hence 5 used days and 3 unused days with a 20% fine
	// rate on the unused-days value.
	r := newRental(t, date(2024, time.January, 1), 7)
	r.RegisterReturn(date(2024, time.January, 5))

	require.NotNil(t, r.FineAmount)
	assert.Equal(t, "18.00", r.FineAmount.StringFixed(2))
	assert.Nil(t, r.AdditionalAmount)
	assert.Equal(t, "168.00", r.TotalAmount.StringFixed(2))
	assert.Equal(t, date(2024, time.January, 5), r.EndDate)
	require.NotNil(t, r.ReturnDate)
	assert.False(t, r.Active())

	// plan 15: 6 unused days at a 40% fine rate.
	r = newRental(t, date(2024, time.January, 1), 15)
	r.RegisterReturn(date(2024, time.January, 10))

	require.NotNil(t, r.FineAmount)
	assert.Equal(t, "67.20", r.FineAmount.StringFixed(2))
	assert.Nil(t, r.AdditionalAmount)
	assert.Equal(t, "347.20", r.TotalAmount.StringFixed(2))
}

func TestRegisterReturnEarlyWithoutFine(t *testing.T) {
	// The 30, 45, and 50 day plans settle early returns with an exact
	// zero fine, not a missing value.
	for _, days := range []int{30, 45, 50} {
		r := newRental(t, date(2024, time.January, 1), days)
		r.RegisterReturn(date(2024, time.January, 2))

		require.NotNil(t, r.FineAmount, "plan %d", days)
		assert.True(
			t, r.FineAmount.IsZero(),
			"plan %d must have a zero fine", days,
		)
		assert.Nil(t, r.AdditionalAmount)
		// two used days (start day counts) and no fine
		expected := r.DailyRate.Mul(decimal.NewFromInt(2))
		assert.Equal(
			t, expected.StringFixed(2), r.TotalAmount.StringFixed(2),
		)
	}
}

func TestRegisterReturnLate(t *testing.T) {
	// plan 7: expected 2024-01-08, returned 2024-01-10, hence two
	// additional days at the flat 50.00 daily surcharge.
	r := newRental(t, date(2024, time.January, 1), 7)
	r.RegisterReturn(date(2024, time.January, 10))

	require.NotNil(t, r.AdditionalAmount)
	assert.Equal(t, "100.00", r.AdditionalAmount.StringFixed(2))
	assert.Nil(t, r.FineAmount)
	assert.Equal(t, "310.00", r.TotalAmount.StringFixed(2))
}

func TestRegisterReturnOnTime(t *testing.T) {
	r := newRental(t, date(2024, time.January, 1), 7)
	r.RegisterReturn(date(2024, time.January, 8))

	assert.Nil(t, r.FineAmount)
	assert.Nil(t, r.AdditionalAmount)
	// eight used days, counting both the start and the return day
	assert.Equal(t, "240.00", r.TotalAmount.StringFixed(2))
}

func TestRegisterReturnDateGranularity(t *testing.T) {
	// Time of day is discarded; a return at 23:59 on the expected end
	// date is on time, and offsets are converted to UTC first.
	r := newRental(t, date(2024, time.January, 1), 7)
	r.RegisterReturn(
		time.Date(2024, time.January, 8, 23, 59, 0, 0, time.UTC),
	)
	assert.Nil(t, r.FineAmount)
	assert.Nil(t, r.AdditionalAmount)

	// 2024-01-09T01:30+03:00 is 2024-01-08T22:30Z, still on time.
	tz := time.FixedZone("UTC+3", 3*60*60)
	r = newRental(t, date(2024, time.January, 1), 7)
	r.RegisterReturn(time.Date(2024, time.January, 9, 1, 30, 0, 0, tz))
	assert.Nil(t, r.AdditionalAmount)
	require.NotNil(t, r.ReturnDate)
	assert.Equal(t, time.UTC, r.ReturnDate.Location())
}

func TestCloneSettlesWithoutMutatingOriginal(t *testing.T) {
	r := newRental(t, date(2024, time.January, 1), 7)
	committed := r.TotalAmount

	c1 := r.Clone()
	c1.RegisterReturn(date(2024, time.January, 5))
	c2 := r.Clone()
	c2.RegisterReturn(date(2024, time.January, 5))

	assert.Nil(t, r.ReturnDate, "original must stay open")
	assert.Equal(
		t, committed.StringFixed(2), r.TotalAmount.StringFixed(2),
	)
	// the settlement is a pure function of the dates and plan
	assert.Equal(
		t, c1.TotalAmount.StringFixed(2), c2.TotalAmount.StringFixed(2),
	)
	assert.Equal(
		t, c1.FineAmount.StringFixed(2), c2.FineAmount.StringFixed(2),
	)
	assert.NotEqual(t, r.ID, c1.ID)
}
