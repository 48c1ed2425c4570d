package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/motorent/rentweb/pkg/core/model"
)

type RentalsConnQueryer interface {
	RentalsQueryer
}

type RentalsTxQueryer interface {
	RentalsQueryer
}

// RentalsQueryer supports the rentals table queries.
// GetActiveByDeliveryPerson returns a nil rental and a nil error when
// the delivery person has no open rental. Update persists the
// settlement fields of an already created rental.
type RentalsQueryer interface {
	Create(ctx context.Context, r *model.Rental) error
	GetByID(ctx context.Context, rid uuid.UUID) (*model.Rental, error)
	Update(ctx context.Context, r *model.Rental) error
	GetActiveByDeliveryPerson(ctx context.Context, did uuid.UUID) (*model.Rental, error)
	ExistsByMotorcycle(ctx context.Context, mid uuid.UUID) (bool, error)
}

type Rentals interface {
	Conn(Conn) RentalsConnQueryer
	Tx(Tx) RentalsTxQueryer
}
