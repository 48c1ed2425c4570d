package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/motorent/rentweb/pkg/core/model"
)

type MotorcyclesConnQueryer interface {
	MotorcyclesQueryer
}

type MotorcyclesTxQueryer interface {
	MotorcyclesQueryer
}

// MotorcyclesQueryer supports the motorcycles table queries.
// PlateExists ignores the row identified by exclude when it is not
// uuid.Nil, so a motorcycle may keep its own plate during an update.
type MotorcyclesQueryer interface {
	Create(ctx context.Context, m *model.Motorcycle) error
	List(ctx context.Context, plateFilter string) ([]*model.Motorcycle, error)
	GetByID(ctx context.Context, mid uuid.UUID) (*model.Motorcycle, error)
	UpdateLicensePlate(ctx context.Context, mid uuid.UUID, plate string) (*model.Motorcycle, error)
	Delete(ctx context.Context, mid uuid.UUID) error
	PlateExists(ctx context.Context, plate string, exclude uuid.UUID) (bool, error)
}

type Motorcycles interface {
	Conn(Conn) MotorcyclesConnQueryer
	Tx(Tx) MotorcyclesTxQueryer
}
