// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package deliveriesuc contains the delivery persons use case which
// supports registration of delivery drivers with their license
// information and storage of their license images.
package deliveriesuc

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/motorent/rentweb/pkg/core/cerr"
	"github.com/motorent/rentweb/pkg/core/log"
	"github.com/motorent/rentweb/pkg/core/model"
	"github.com/motorent/rentweb/pkg/core/repo"
)

// Storage persists license image blobs and serves them back by URL.
type Storage interface {
	Upload(
		ctx context.Context,
		content io.Reader, fileName, contentType string,
	) (url string, err error)
	Delete(ctx context.Context, url string) error
}

// Image carries an uploaded license image towards the storage
// service, together with its client-provided name and content type.
type Image struct {
	Content     io.Reader
	FileName    string
	ContentType string
}

// CreateParams aggregates the fields which are required to register
// a delivery person. LicenseImage is optional.
type CreateParams struct {
	Name          string
	TaxID         string
	BirthDate     time.Time
	LicenseNumber string
	LicenseType   string
	LicenseImage  *Image
}

// UseCase represents the delivery persons use case. It holds a
// database connection pool, the delivery persons repository instance,
// and the license image storage service.
type UseCase struct {
	pool         repo.Pool
	deliveriesrp repo.DeliveryPersons
	storage      Storage
}

// New instantiates a delivery persons use case.
func New(p repo.Pool, d repo.DeliveryPersons, s Storage) *UseCase {
	return &UseCase{pool: p, deliveriesrp: d, storage: s}
}

// checkImageExt accepts the .png and .bmp extensions only, matching
// them case-insensitively.
func checkImageExt(fileName string) error {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".png", ".bmp":
		return nil
	default:
		return cerr.BadRequest(errors.New(
			"the license image format must be PNG or BMP",
		))
	}
}

// Create registers a delivery person after checking that the tax ID
// and license number are not taken yet and that the license category
// is one of A, B, or AB. The birth date must lie in the past and is
// normalized to UTC. When a license image is provided, it is stored
// and its URL is recorded on the created record.
func (dps *UseCase) Create(
	ctx context.Context, params CreateParams,
) (dp *model.DeliveryPerson, err error) {
	licenseType, err := model.ParseLicenseType(params.LicenseType)
	if err != nil {
		return nil, cerr.BadRequest(err)
	}
	if !params.BirthDate.Before(time.Now()) {
		return nil, cerr.BadRequest(errors.New(
			"the birth date must be in the past",
		))
	}
	var imageURL string
	if img := params.LicenseImage; img != nil {
		if err := checkImageExt(img.FileName); err != nil {
			return nil, err
		}
		imageURL, err = dps.storage.Upload(
			ctx, img.Content, img.FileName, img.ContentType,
		)
		if err != nil {
			return nil, err
		}
	}
	err = dps.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := dps.deliveriesrp.Conn(c)
		taken, err := q.TaxIDExists(ctx, params.TaxID)
		if err != nil {
			return err
		}
		if taken {
			return cerr.BadRequest(errors.New(
				"the tax ID is already registered",
			))
		}
		taken, err = q.LicenseNumberExists(ctx, params.LicenseNumber)
		if err != nil {
			return err
		}
		if taken {
			return cerr.BadRequest(errors.New(
				"the license number is already registered",
			))
		}
		dp = model.NewDeliveryPerson(
			params.Name, params.TaxID, params.BirthDate,
			params.LicenseNumber, licenseType,
		)
		if imageURL != "" {
			dp.UpdateLicenseImage(imageURL)
		}
		return q.Create(ctx, dp)
	})
	if err != nil {
		if imageURL != "" {
			// do not leave an orphaned blob behind a failed insert
			if derr := dps.storage.Delete(ctx, imageURL); derr != nil {
				log.Warn(
					ctx, "deleting license image of failed registration",
					log.Err("error", derr),
				)
			}
		}
		return nil, err
	}
	return dp, nil
}

// Get returns the did delivery person, failing with a not-found error
// when no such person exists.
func (dps *UseCase) Get(
	ctx context.Context, did uuid.UUID,
) (dp *model.DeliveryPerson, err error) {
	err = dps.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		dp, err = dps.deliveriesrp.Conn(c).GetByID(ctx, did)
		return err
	})
	if err != nil {
		dp = nil
	}
	return
}

// UpdateLicenseImage stores a new license image for the did delivery
// person, replacing and deleting the previously stored blob if any.
// A missing person is reported as a validation failure since it is
// encountered in the middle of an update.
func (dps *UseCase) UpdateLicenseImage(
	ctx context.Context, did uuid.UUID, img Image,
) (dp *model.DeliveryPerson, err error) {
	if err := checkImageExt(img.FileName); err != nil {
		return nil, err
	}
	err = dps.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := dps.deliveriesrp.Conn(c)
		old, err := q.GetByID(ctx, did)
		if err != nil {
			if cerr.IsNotFound(err) {
				return cerr.BadRequest(errors.New(
					"delivery person not found",
				))
			}
			return err
		}
		if old.LicenseImageURL != nil {
			if derr := dps.storage.Delete(ctx, *old.LicenseImageURL); derr != nil {
				log.Warn(
					ctx, "deleting previous license image",
					log.Err("error", derr),
				)
			}
		}
		url, err := dps.storage.Upload(
			ctx, img.Content, img.FileName, img.ContentType,
		)
		if err != nil {
			return err
		}
		dp, err = q.UpdateLicenseImage(ctx, did, url)
		return err
	})
	if err != nil {
		dp = nil
	}
	return
}
