// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"
	"time"

	"github.com/motorent/rentweb/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLicenseType(t *testing.T) {
	for in, want := range map[string]model.LicenseType{
		"A":  model.LicenseTypeA,
		"b":  model.LicenseTypeB,
		"AB": model.LicenseTypeAB,
		"ab": model.LicenseTypeAB,
	} {
		lt, err := model.ParseLicenseType(in)
		require.NoError(t, err, "license type %q must parse", in)
		assert.Equal(t, want, lt)
		assert.NoError(t, lt.Validate())
	}
	for _, in := range []string{"", "C", "BA", "ABC"} {
		_, err := model.ParseLicenseType(in)
		assert.ErrorIs(t, err, model.ErrUnknownLicenseType)
	}
}

func TestCanRent(t *testing.T) {
	birth := time.Date(1990, time.May, 20, 0, 0, 0, 0, time.UTC)
	for lt, can := range map[model.LicenseType]bool{
		model.LicenseTypeA:  true,
		model.LicenseTypeB:  false,
		model.LicenseTypeAB: true,
	} {
		d := model.NewDeliveryPerson(
			"Jo Doe", "12.345.678/0001-95", birth, "74834920143", lt,
		)
		assert.Equal(t, can, d.CanRent(), "license type %s", lt)
	}
}

func TestUpdateLicenseImage(t *testing.T) {
	d := model.NewDeliveryPerson(
		"Jo Doe", "12.345.678/0001-95",
		time.Date(1990, time.May, 20, 0, 0, 0, 0, time.UTC),
		"74834920143", model.LicenseTypeA,
	)
	require.Nil(t, d.LicenseImageURL)
	d.UpdateLicenseImage("/uploads/abc.png")
	require.NotNil(t, d.LicenseImageURL)
	assert.Equal(t, "/uploads/abc.png", *d.LicenseImageURL)
}

func TestUpdateLicensePlate(t *testing.T) {
	m := model.NewMotorcycle(2024, "Urban 125", "ABC-1234")
	assert.ErrorIs(
		t, m.UpdateLicensePlate("  "), model.ErrBlankLicensePlate,
	)
	require.NoError(t, m.UpdateLicensePlate("XYZ-9876"))
	assert.Equal(t, "XYZ-9876", m.LicensePlate)
}
