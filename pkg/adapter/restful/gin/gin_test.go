// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/motorent/rentweb/internal/test/dbcontainer"
	"github.com/motorent/rentweb/pkg/adapter/db/postgres"
	"github.com/motorent/rentweb/pkg/adapter/db/postgres/migration"
	"github.com/motorent/rentweb/pkg/adapter/restful/gin"
	"github.com/motorent/rentweb/pkg/adapter/restful/gin/routes"
	"github.com/motorent/rentweb/pkg/adapter/storage/local"
	"github.com/motorent/rentweb/pkg/core/model"
	"github.com/stretchr/testify/suite"
)

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	Gin  *gin.Engine
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	err := migration.InitDB(igts.Ctx, igts.Pool)
	igts.Require().NoError(err, "failed to initialize DB schema")

	storage, err := local.New(
		igts.T().TempDir(), "http://localhost/files",
	)
	igts.Require().NoError(err, "cannot instantiate blob storage")

	igts.Gin = gin.New(gin.Logger(), gin.Recovery())
	igts.Require().NotNil(igts.Gin, "cannot instantiate Gin engine")
	err = routes.Register(igts.Ctx, igts.Gin, igts.Pool, nil, storage)
	igts.Require().NoError(err, "failed to register Gin routes")
}

func (igts *IntegrationGinTestSuite) jsonBody(v any) io.Reader {
	b, err := json.Marshal(v)
	igts.Require().NoError(err, "cannot marshal request body")
	return bytes.NewReader(b)
}

func (igts *IntegrationGinTestSuite) sendReqRecvResp(
	method, path string, body io.Reader, res any,
) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, body)
	igts.Require().NoError(err, "cannot create %s request", method)
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}
	igts.Gin.ServeHTTP(w, req)
	if res != nil {
		b := w.Body.Bytes()
		igts.Require().NoError(
			json.Unmarshal(b, res), "body is not json: %s", b,
		)
	}
	return w
}

func (igts *IntegrationGinTestSuite) createMoto(
	year int, mdl, plate string,
) *model.Motorcycle {
	res := &model.Motorcycle{}
	w := igts.sendReqRecvResp(
		http.MethodPost, "/api/rentweb/v1/motorcycles",
		igts.jsonBody(map[string]any{
			"year":          year,
			"model":         mdl,
			"license_plate": plate,
		}),
		res,
	)
	igts.Require().Equal(201, w.Code, "motorcycle must be created")
	return res
}

func (igts *IntegrationGinTestSuite) createDeliveryPerson(
	name, taxID, licenseNumber, licenseType string,
) *model.DeliveryPerson {
	res := &model.DeliveryPerson{}
	w := igts.sendReqRecvResp(
		http.MethodPost, "/api/rentweb/v1/delivery-persons",
		igts.jsonBody(map[string]any{
			"name":           name,
			"tax_id":         taxID,
			"birth_date":     "1990-05-20",
			"license_number": licenseNumber,
			"license_type":   licenseType,
		}),
		res,
	)
	igts.Require().Equal(201, w.Code, "delivery person must be created")
	return res
}

type detailResp struct {
	Detail string
}

func (igts *IntegrationGinTestSuite) TestMotorcycleLifecycle() {
	moto := igts.createMoto(2023, "Honda CG 160", "ABC-1234")
	igts.NotEqual(uuid.Nil, moto.ID)
	igts.Equal("ABC-1234", moto.LicensePlate)

	res := &detailResp{}
	w := igts.sendReqRecvResp(
		http.MethodPost, "/api/rentweb/v1/motorcycles",
		igts.jsonBody(map[string]any{
			"year":          2024,
			"model":         "Honda CG 160",
			"license_plate": "ABC-1234",
		}),
		res,
	)
	igts.Equal(400, w.Code, "duplicate plates must be rejected")
	igts.Equal("the license plate is already registered", res.Detail)

	var motos []*model.Motorcycle
	w = igts.sendReqRecvResp(
		http.MethodGet,
		"/api/rentweb/v1/motorcycles?license-plate=ABC-1234",
		nil, &motos,
	)
	igts.Equal(200, w.Code)
	igts.Require().Len(motos, 1)
	igts.Equal(moto.ID, motos[0].ID)

	got := &model.Motorcycle{}
	w = igts.sendReqRecvResp(
		http.MethodGet,
		"/api/rentweb/v1/motorcycles/"+moto.ID.String(),
		nil, got,
	)
	igts.Equal(200, w.Code)
	igts.Equal(moto.ID, got.ID)

	w = igts.sendReqRecvResp(
		http.MethodPatch,
		"/api/rentweb/v1/motorcycles/"+moto.ID.String()+"/license-plate",
		igts.jsonBody(map[string]any{"license_plate": "XYZ-0456"}),
		got,
	)
	igts.Equal(200, w.Code)
	igts.Equal("XYZ-0456", got.LicensePlate)

	w = igts.sendReqRecvResp(
		http.MethodGet,
		"/api/rentweb/v1/motorcycles?license-plate=ABC-1234",
		nil, &motos,
	)
	igts.Equal(200, w.Code)
	igts.Empty(motos, "the old plate must not match anymore")

	w = igts.sendReqRecvResp(
		http.MethodDelete,
		"/api/rentweb/v1/motorcycles/"+moto.ID.String(),
		nil, nil,
	)
	igts.Equal(204, w.Code)

	res = &detailResp{}
	w = igts.sendReqRecvResp(
		http.MethodGet,
		"/api/rentweb/v1/motorcycles/"+moto.ID.String(),
		nil, res,
	)
	igts.Equal(404, w.Code, "a removed motorcycle must not be found")
}

func (igts *IntegrationGinTestSuite) TestUpdatePlateOfMissingMoto() {
	res := &detailResp{}
	w := igts.sendReqRecvResp(
		http.MethodPatch,
		"/api/rentweb/v1/motorcycles/"+uuid.NewString()+"/license-plate",
		igts.jsonBody(map[string]any{"license_plate": "NOP-0000"}),
		res,
	)
	igts.Equal(400, w.Code)
	igts.Equal("motorcycle not found", res.Detail)
}

func (igts *IntegrationGinTestSuite) TestDeliveryPersonRegistration() {
	dp := igts.createDeliveryPerson(
		"Jo Silva", "76352656001", "DL-553321", "A",
	)
	igts.NotEqual(uuid.Nil, dp.ID)
	igts.Equal(model.LicenseTypeA, dp.LicenseType)
	igts.Nil(dp.LicenseImageURL)

	res := &detailResp{}
	w := igts.sendReqRecvResp(
		http.MethodPost, "/api/rentweb/v1/delivery-persons",
		igts.jsonBody(map[string]any{
			"name":           "Other Person",
			"tax_id":         "76352656001",
			"birth_date":     "1985-01-01",
			"license_number": "DL-999999",
			"license_type":   "A",
		}),
		res,
	)
	igts.Equal(400, w.Code, "duplicate tax IDs must be rejected")
	igts.Equal("the tax ID is already registered", res.Detail)

	w = igts.sendReqRecvResp(
		http.MethodPost, "/api/rentweb/v1/delivery-persons",
		igts.jsonBody(map[string]any{
			"name":           "Other Person",
			"tax_id":         "44433322200",
			"birth_date":     "1985-01-01",
			"license_number": "DL-553321",
			"license_type":   "A",
		}),
		res,
	)
	igts.Equal(400, w.Code, "duplicate license numbers must be rejected")
	igts.Equal("the license number is already registered", res.Detail)

	w = igts.sendReqRecvResp(
		http.MethodPost, "/api/rentweb/v1/delivery-persons",
		igts.jsonBody(map[string]any{
			"name":           "Bad Category",
			"tax_id":         "11122233344",
			"birth_date":     "1985-01-01",
			"license_number": "DL-100001",
			"license_type":   "C",
		}),
		res,
	)
	igts.Equal(400, w.Code, "unknown license categories must be rejected")

	got := &model.DeliveryPerson{}
	w = igts.sendReqRecvResp(
		http.MethodGet,
		"/api/rentweb/v1/delivery-persons/"+dp.ID.String(),
		nil, got,
	)
	igts.Equal(200, w.Code)
	igts.Equal(dp.ID, got.ID)

	w = igts.sendReqRecvResp(
		http.MethodGet,
		"/api/rentweb/v1/delivery-persons/"+uuid.NewString(),
		nil, res,
	)
	igts.Equal(404, w.Code)
}

func (igts *IntegrationGinTestSuite) uploadLicenseImage(
	did uuid.UUID, fileName string, res any,
) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("license_image", fileName)
	igts.Require().NoError(err, "cannot create multipart file")
	_, err = fw.Write([]byte("image-bytes"))
	igts.Require().NoError(err, "cannot write multipart file")
	igts.Require().NoError(mw.Close(), "cannot close multipart writer")

	w := httptest.NewRecorder()
	req, err := http.NewRequest(
		http.MethodPut,
		"/api/rentweb/v1/delivery-persons/"+did.String()+"/license-image",
		body,
	)
	igts.Require().NoError(err, "cannot create PUT request")
	req.Header.Add("Content-Type", mw.FormDataContentType())
	igts.Gin.ServeHTTP(w, req)
	if res != nil {
		b := w.Body.Bytes()
		igts.Require().NoError(
			json.Unmarshal(b, res), "body is not json: %s", b,
		)
	}
	return w
}

func (igts *IntegrationGinTestSuite) TestLicenseImageUpload() {
	dp := igts.createDeliveryPerson(
		"Image Person", "98765432100", "DL-778899", "AB",
	)

	got := &model.DeliveryPerson{}
	w := igts.uploadLicenseImage(dp.ID, "license.png", got)
	igts.Equal(200, w.Code)
	igts.Require().NotNil(got.LicenseImageURL)
	firstURL := *got.LicenseImageURL

	// replacing the image stores a fresh blob under a new URL
	w = igts.uploadLicenseImage(dp.ID, "license.bmp", got)
	igts.Equal(200, w.Code)
	igts.Require().NotNil(got.LicenseImageURL)
	igts.NotEqual(firstURL, *got.LicenseImageURL)

	res := &detailResp{}
	w = igts.uploadLicenseImage(dp.ID, "license.jpg", res)
	igts.Equal(400, w.Code, "non PNG/BMP images must be rejected")
	igts.Equal("the license image format must be PNG or BMP", res.Detail)

	w = igts.uploadLicenseImage(uuid.New(), "license.png", res)
	igts.Equal(400, w.Code)
	igts.Equal("delivery person not found", res.Detail)
}

func (igts *IntegrationGinTestSuite) createRental(
	mid, did uuid.UUID, planDays int, res any,
) *httptest.ResponseRecorder {
	return igts.sendReqRecvResp(
		http.MethodPost, "/api/rentweb/v1/rentals",
		igts.jsonBody(map[string]any{
			"motorcycle_id":      mid.String(),
			"delivery_person_id": did.String(),
			"plan_days":          planDays,
		}),
		res,
	)
}

func (igts *IntegrationGinTestSuite) TestRentalLifecycle() {
	moto := igts.createMoto(2022, "Yamaha Factor 150", "RNT-1001")
	dp := igts.createDeliveryPerson(
		"Rider One", "10120230344", "DL-202401", "A",
	)

	res := &detailResp{}
	w := igts.createRental(moto.ID, dp.ID, 8, res)
	igts.Equal(400, w.Code, "a plan of 8 days must be rejected")

	w = igts.createRental(uuid.New(), dp.ID, 7, res)
	igts.Equal(400, w.Code)
	igts.Equal("motorcycle not found", res.Detail)

	w = igts.createRental(moto.ID, uuid.New(), 7, res)
	igts.Equal(400, w.Code)
	igts.Equal("delivery person not found", res.Detail)

	rental := &model.Rental{}
	w = igts.createRental(moto.ID, dp.ID, 7, rental)
	igts.Require().Equal(201, w.Code, "rental must be created")

	tomorrow := model.DateOnly(time.Now().UTC()).AddDate(0, 0, 1)
	igts.Equal(tomorrow, rental.StartDate, "rentals start tomorrow")
	igts.Equal(tomorrow.AddDate(0, 0, 7), rental.ExpectedEndDate)
	igts.Equal("210.00", rental.TotalAmount.StringFixed(2))
	igts.Nil(rental.ReturnDate)

	w = igts.createRental(moto.ID, dp.ID, 15, res)
	igts.Equal(400, w.Code, "one active rental per person")
	igts.Equal(
		"the delivery person already has an active rental", res.Detail,
	)

	// returning on the start day previews one used day plus a 20%
	// fine over the seven unused days: 30.00 + 42.00
	preview := &model.Rental{}
	w = igts.sendReqRecvResp(
		http.MethodPost,
		"/api/rentweb/v1/rentals/"+rental.ID.String()+"/calculate",
		igts.jsonBody(map[string]any{
			"return_date": tomorrow.Format("2006-01-02"),
		}),
		preview,
	)
	igts.Equal(200, w.Code)
	igts.Equal(rental.ID, preview.ID)
	igts.Require().NotNil(preview.FineAmount)
	igts.Equal("42.00", preview.FineAmount.StringFixed(2))
	igts.Equal("72.00", preview.TotalAmount.StringFixed(2))

	stored := &model.Rental{}
	w = igts.sendReqRecvResp(
		http.MethodGet,
		"/api/rentweb/v1/rentals/"+rental.ID.String(),
		nil, stored,
	)
	igts.Equal(200, w.Code)
	igts.Nil(stored.ReturnDate, "calculate must not persist anything")
	igts.Equal("210.00", stored.TotalAmount.StringFixed(2))

	// an on-time return is billed for the used days only
	settled := &model.Rental{}
	w = igts.sendReqRecvResp(
		http.MethodPost,
		"/api/rentweb/v1/rentals/"+rental.ID.String()+"/return",
		igts.jsonBody(map[string]any{
			"return_date": rental.ExpectedEndDate.Format("2006-01-02"),
		}),
		settled,
	)
	igts.Equal(200, w.Code)
	igts.Require().NotNil(settled.ReturnDate)
	igts.Nil(settled.FineAmount)
	igts.Nil(settled.AdditionalAmount)
	igts.Equal("240.00", settled.TotalAmount.StringFixed(2))

	// the settled rental frees the person for a new agreement
	w = igts.createRental(moto.ID, dp.ID, 15, &model.Rental{})
	igts.Equal(201, w.Code, "a settled rental is not active anymore")
}

func (igts *IntegrationGinTestSuite) TestRentalNotFound() {
	res := &detailResp{}
	w := igts.sendReqRecvResp(
		http.MethodGet,
		"/api/rentweb/v1/rentals/"+uuid.NewString(),
		nil, res,
	)
	igts.Equal(404, w.Code)

	w = igts.sendReqRecvResp(
		http.MethodPost,
		"/api/rentweb/v1/rentals/"+uuid.NewString()+"/return",
		igts.jsonBody(map[string]any{"return_date": "2024-06-01"}),
		res,
	)
	igts.Equal(400, w.Code)
	igts.Equal("rental not found", res.Detail)
}

func (igts *IntegrationGinTestSuite) TestRemoveRentedMoto() {
	moto := igts.createMoto(2021, "Honda Biz 125", "RNT-2002")
	dp := igts.createDeliveryPerson(
		"Rider Two", "20230344556", "DL-202402", "AB",
	)
	w := igts.createRental(moto.ID, dp.ID, 30, &model.Rental{})
	igts.Require().Equal(201, w.Code, "rental must be created")

	res := &detailResp{}
	w = igts.sendReqRecvResp(
		http.MethodDelete,
		"/api/rentweb/v1/motorcycles/"+moto.ID.String(),
		nil, res,
	)
	igts.Equal(400, w.Code)
	igts.Equal(
		"a motorcycle with registered rentals may not be removed",
		res.Detail,
	)
}
