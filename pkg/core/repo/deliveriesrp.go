package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/motorent/rentweb/pkg/core/model"
)

type DeliveryPersonsConnQueryer interface {
	DeliveryPersonsQueryer
}

type DeliveryPersonsTxQueryer interface {
	DeliveryPersonsQueryer
}

type DeliveryPersonsQueryer interface {
	Create(ctx context.Context, d *model.DeliveryPerson) error
	GetByID(ctx context.Context, did uuid.UUID) (*model.DeliveryPerson, error)
	TaxIDExists(ctx context.Context, taxID string) (bool, error)
	LicenseNumberExists(ctx context.Context, licenseNumber string) (bool, error)
	UpdateLicenseImage(ctx context.Context, did uuid.UUID, url string) (*model.DeliveryPerson, error)
}

type DeliveryPersons interface {
	Conn(Conn) DeliveryPersonsConnQueryer
	Tx(Tx) DeliveryPersonsTxQueryer
}
