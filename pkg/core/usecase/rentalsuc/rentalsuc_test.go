// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package rentalsuc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/motorent/rentweb/pkg/core/cerr"
	"github.com/motorent/rentweb/pkg/core/model"
	"github.com/motorent/rentweb/pkg/core/repo"
	"github.com/motorent/rentweb/pkg/core/usecase/rentalsuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePool satisfies repo.Pool without a database, handing out a
// connection which forwards transactions to an in-memory fake too.
type fakePool struct{}

func (fakePool) Conn(ctx context.Context, h repo.ConnHandler) error {
	return h(ctx, fakeConn{})
}

func (fakePool) Close() error { return nil }

type fakeConn struct{}

func (fakeConn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, nil
}

func (fakeConn) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, errors.New("not implemented")
}

func (fakeConn) Tx(ctx context.Context, h repo.TxHandler) error {
	return h(ctx, fakeTx{})
}

func (fakeConn) IsConn() {}

type fakeTx struct{}

func (fakeTx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, nil
}

func (fakeTx) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, errors.New("not implemented")
}

func (fakeTx) IsTx() {}

type fakeMotos struct {
	byID map[uuid.UUID]*model.Motorcycle
}

func (f *fakeMotos) Conn(repo.Conn) repo.MotorcyclesConnQueryer { return f }
func (f *fakeMotos) Tx(repo.Tx) repo.MotorcyclesTxQueryer       { return f }

func (f *fakeMotos) Create(_ context.Context, m *model.Motorcycle) error {
	f.byID[m.ID] = m
	return nil
}

func (f *fakeMotos) List(
	context.Context, string,
) ([]*model.Motorcycle, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeMotos) GetByID(
	_ context.Context, mid uuid.UUID,
) (*model.Motorcycle, error) {
	if m, ok := f.byID[mid]; ok {
		return m, nil
	}
	return nil, cerr.NotFound(errors.New("no such motorcycle"))
}

func (f *fakeMotos) UpdateLicensePlate(
	context.Context, uuid.UUID, string,
) (*model.Motorcycle, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeMotos) Delete(context.Context, uuid.UUID) error {
	return errors.New("not implemented")
}

func (f *fakeMotos) PlateExists(
	context.Context, string, uuid.UUID,
) (bool, error) {
	return false, nil
}

type fakeDeliveries struct {
	byID map[uuid.UUID]*model.DeliveryPerson
}

func (f *fakeDeliveries) Conn(repo.Conn) repo.DeliveryPersonsConnQueryer {
	return f
}

func (f *fakeDeliveries) Tx(repo.Tx) repo.DeliveryPersonsTxQueryer {
	return f
}

func (f *fakeDeliveries) Create(
	_ context.Context, d *model.DeliveryPerson,
) error {
	f.byID[d.ID] = d
	return nil
}

func (f *fakeDeliveries) GetByID(
	_ context.Context, did uuid.UUID,
) (*model.DeliveryPerson, error) {
	if d, ok := f.byID[did]; ok {
		return d, nil
	}
	return nil, cerr.NotFound(errors.New("no such delivery person"))
}

func (f *fakeDeliveries) TaxIDExists(
	context.Context, string,
) (bool, error) {
	return false, nil
}

func (f *fakeDeliveries) LicenseNumberExists(
	context.Context, string,
) (bool, error) {
	return false, nil
}

func (f *fakeDeliveries) UpdateLicenseImage(
	context.Context, uuid.UUID, string,
) (*model.DeliveryPerson, error) {
	return nil, errors.New("not implemented")
}

type fakeRentals struct {
	byID map[uuid.UUID]*model.Rental
}

func (f *fakeRentals) Conn(repo.Conn) repo.RentalsConnQueryer { return f }
func (f *fakeRentals) Tx(repo.Tx) repo.RentalsTxQueryer       { return f }

func (f *fakeRentals) Create(_ context.Context, r *model.Rental) error {
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeRentals) GetByID(
	_ context.Context, rid uuid.UUID,
) (*model.Rental, error) {
	if r, ok := f.byID[rid]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, cerr.NotFound(errors.New("no such rental"))
}

func (f *fakeRentals) Update(_ context.Context, r *model.Rental) error {
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeRentals) GetActiveByDeliveryPerson(
	_ context.Context, did uuid.UUID,
) (*model.Rental, error) {
	for _, r := range f.byID {
		if r.DeliveryPersonID == did && r.Active() {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRentals) ExistsByMotorcycle(
	_ context.Context, mid uuid.UUID,
) (bool, error) {
	for _, r := range f.byID {
		if r.MotorcycleID == mid {
			return true, nil
		}
	}
	return false, nil
}

type fixture struct {
	uc         *rentalsuc.UseCase
	motos      *fakeMotos
	deliveries *fakeDeliveries
	rentals    *fakeRentals
	moto       *model.Motorcycle
	dp         *model.DeliveryPerson
}

// 2024-01-10T15:30Z, so created rentals start on 2024-01-11.
var testNow = time.Date(2024, time.January, 10, 15, 30, 0, 0, time.UTC)

func newFixture(t *testing.T, licenseType model.LicenseType) *fixture {
	t.Helper()
	f := &fixture{
		motos:      &fakeMotos{byID: map[uuid.UUID]*model.Motorcycle{}},
		deliveries: &fakeDeliveries{byID: map[uuid.UUID]*model.DeliveryPerson{}},
		rentals:    &fakeRentals{byID: map[uuid.UUID]*model.Rental{}},
	}
	uc, err := rentalsuc.New(
		fakePool{}, f.rentals, f.motos, f.deliveries,
		rentalsuc.WithClock(func() time.Time { return testNow }),
	)
	require.NoError(t, err)
	f.uc = uc
	f.moto = model.NewMotorcycle(2024, "Urban 125", "ABC-1234")
	f.motos.byID[f.moto.ID] = f.moto
	f.dp = model.NewDeliveryPerson(
		"Jo Doe", "12.345.678/0001-95",
		time.Date(1990, time.May, 20, 0, 0, 0, 0, time.UTC),
		"74834920143", licenseType,
	)
	f.deliveries.byID[f.dp.ID] = f.dp
	return f
}

func assertBadRequest(t *testing.T, err error) {
	t.Helper()
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusBadRequest, ce.HTTPStatusCode)
}

func TestCreateRental(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, model.LicenseTypeA)

	r, err := f.uc.Create(ctx, f.moto.ID, f.dp.ID, 7)
	require.NoError(t, err)
	assert.Equal(
		t, time.Date(2024, time.January, 11, 0, 0, 0, 0, time.UTC),
		r.StartDate, "rental must start tomorrow",
	)
	assert.Equal(
		t, time.Date(2024, time.January, 18, 0, 0, 0, 0, time.UTC),
		r.ExpectedEndDate,
	)
	assert.Equal(t, "30.00", r.DailyRate.StringFixed(2))
	assert.Equal(t, "210.00", r.TotalAmount.StringFixed(2))
	require.Contains(t, f.rentals.byID, r.ID, "rental must be persisted")
}

func TestCreateRentalRejectsInvalidPlan(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, model.LicenseTypeA)

	for _, days := range []int{0, 10, 31} {
		_, err := f.uc.Create(ctx, f.moto.ID, f.dp.ID, days)
		assertBadRequest(t, err)
		assert.ErrorIs(t, err, model.ErrUnknownRentalPlan)
	}
	assert.Empty(t, f.rentals.byID)
}

func TestCreateRentalRejectsMissingAggregates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, model.LicenseTypeA)

	_, err := f.uc.Create(ctx, uuid.New(), f.dp.ID, 7)
	assertBadRequest(t, err)

	_, err = f.uc.Create(ctx, f.moto.ID, uuid.New(), 7)
	assertBadRequest(t, err)
}

func TestCreateRentalRejectsCategoryB(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, model.LicenseTypeB)

	_, err := f.uc.Create(ctx, f.moto.ID, f.dp.ID, 7)
	assertBadRequest(t, err)
}

func TestCreateRentalRejectsSecondActiveRental(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, model.LicenseTypeAB)

	_, err := f.uc.Create(ctx, f.moto.ID, f.dp.ID, 7)
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, f.moto.ID, f.dp.ID, 15)
	assertBadRequest(t, err)

	// once the first rental is settled, a new one may be created
	var rid uuid.UUID
	for id := range f.rentals.byID {
		rid = id
	}
	_, err = f.uc.Return(ctx, rid, testNow.AddDate(0, 0, 8))
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, f.moto.ID, f.dp.ID, 15)
	require.NoError(t, err)
}

func TestReturnRental(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, model.LicenseTypeA)

	r, err := f.uc.Create(ctx, f.moto.ID, f.dp.ID, 7)
	require.NoError(t, err)

	// start 2024-01-11, expected 2024-01-18, returned 2024-01-15:
	// five used days, three unused days at 30.00 with a 20% fine rate.
	ret := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	settled, err := f.uc.Return(ctx, r.ID, ret)
	require.NoError(t, err)
	require.NotNil(t, settled.FineAmount)
	assert.Equal(t, "18.00", settled.FineAmount.StringFixed(2))
	assert.Nil(t, settled.AdditionalAmount)
	assert.Equal(t, "168.00", settled.TotalAmount.StringFixed(2))

	stored := f.rentals.byID[r.ID]
	require.NotNil(t, stored.ReturnDate, "settlement must be persisted")
}

func TestReturnMissingRentalIsValidationFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, model.LicenseTypeA)

	_, err := f.uc.Return(ctx, uuid.New(), testNow)
	assertBadRequest(t, err)
	_, err = f.uc.Calculate(ctx, uuid.New(), testNow)
	assertBadRequest(t, err)
}

func TestCalculateNeverPersists(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, model.LicenseTypeA)

	r, err := f.uc.Create(ctx, f.moto.ID, f.dp.ID, 7)
	require.NoError(t, err)

	for _, day := range []int{15, 18, 20} {
		ret := time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC)
		preview, err := f.uc.Calculate(ctx, r.ID, ret)
		require.NoError(t, err)
		assert.Equal(t, r.ID, preview.ID, "identity must be preserved")
		require.NotNil(t, preview.ReturnDate)

		stored := f.rentals.byID[r.ID]
		assert.Nil(t, stored.ReturnDate, "preview must not persist")
		assert.Equal(
			t, "210.00", stored.TotalAmount.StringFixed(2),
			"stored total must stay committed",
		)
	}

	// previewing twice with the same date yields identical totals
	ret := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	p1, err := f.uc.Calculate(ctx, r.ID, ret)
	require.NoError(t, err)
	p2, err := f.uc.Calculate(ctx, r.ID, ret)
	require.NoError(t, err)
	assert.Equal(
		t, p1.TotalAmount.StringFixed(2), p2.TotalAmount.StringFixed(2),
	)
}
