package deliveriesrp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/motorent/rentweb/pkg/adapter/db/postgres"
	"github.com/motorent/rentweb/pkg/core/cerr"
	"github.com/motorent/rentweb/pkg/core/model"
	"gorm.io/gorm/clause"
)

type gDeliveryPerson struct {
	DID             uuid.UUID `gorm:"primaryKey;type:uuid;column:did"`
	Name            string
	TaxID           string `gorm:"column:tax_id"`
	BirthDate       time.Time
	LicenseNumber   string
	LicenseType     string
	LicenseImageURL *string `gorm:"column:license_image_url"`
	CreatedAt       time.Time
}

func (gd *gDeliveryPerson) TableName() string {
	return "delivery_persons"
}

// Model converts the row into a domain entity. The license type
// column is constrained by the schema, so a parse failure indicates
// corrupt data and is reported as an error instead of a panic.
func (gd *gDeliveryPerson) Model() (*model.DeliveryPerson, error) {
	lt, err := model.ParseLicenseType(gd.LicenseType)
	if err != nil {
		return nil, fmt.Errorf(
			"decoding license type %q: %w", gd.LicenseType, err,
		)
	}
	return &model.DeliveryPerson{
		ID:              gd.DID,
		Name:            gd.Name,
		TaxID:           gd.TaxID,
		BirthDate:       model.NormalizeUTC(gd.BirthDate),
		LicenseNumber:   gd.LicenseNumber,
		LicenseType:     lt,
		LicenseImageURL: gd.LicenseImageURL,
		CreatedAt:       model.NormalizeUTC(gd.CreatedAt),
	}, nil
}

func fromModel(d *model.DeliveryPerson) *gDeliveryPerson {
	return &gDeliveryPerson{
		DID:             d.ID,
		Name:            d.Name,
		TaxID:           d.TaxID,
		BirthDate:       d.BirthDate,
		LicenseNumber:   d.LicenseNumber,
		LicenseType:     d.LicenseType.String(),
		LicenseImageURL: d.LicenseImageURL,
		CreatedAt:       d.CreatedAt,
	}
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, d *model.DeliveryPerson) error {
	gdb := q.GORM(ctx)
	if err := gdb.Create(fromModel(d)).Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

func GetByID[Q postgres.Queryer](ctx context.Context, q Q, did uuid.UUID) (*model.DeliveryPerson, error) {
	gdb := q.GORM(ctx)
	var gds []gDeliveryPerson
	if err := gdb.Where("did=?", did).Limit(1).Find(&gds).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gds); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gds[0].Model()
}

func TaxIDExists[Q postgres.Queryer](ctx context.Context, q Q, taxID string) (bool, error) {
	var n int64
	err := q.GORM(ctx).Model(&gDeliveryPerson{}).Where(
		"tax_id=?", taxID,
	).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return n > 0, nil
}

func LicenseNumberExists[Q postgres.Queryer](ctx context.Context, q Q, licenseNumber string) (bool, error) {
	var n int64
	err := q.GORM(ctx).Model(&gDeliveryPerson{}).Where(
		"license_number=?", licenseNumber,
	).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("query: %w", err)
	}
	return n > 0, nil
}

func UpdateLicenseImage[Q postgres.Queryer](ctx context.Context, q Q, did uuid.UUID, url string) (*model.DeliveryPerson, error) {
	gdb := q.GORM(ctx)
	var gds []gDeliveryPerson
	gdb.Model(&gds).Clauses(clause.Returning{}).Select(
		"license_image_url",
	).Where(
		"did=?", did,
	).Updates(gDeliveryPerson{
		LicenseImageURL: &url,
	})
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gds); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gds[0].Model()
}
