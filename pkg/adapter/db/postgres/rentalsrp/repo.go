package rentalsrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/motorent/rentweb/pkg/adapter/db/postgres"
	"github.com/motorent/rentweb/pkg/core/model"
	"github.com/motorent/rentweb/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (rs *Repo) Conn(c repo.Conn) repo.RentalsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, r *model.Rental) error {
	return Create(ctx, cq.Conn, r)
}

func (cq connQueryer) GetByID(ctx context.Context, rid uuid.UUID) (*model.Rental, error) {
	return GetByID(ctx, cq.Conn, rid)
}

func (cq connQueryer) Update(ctx context.Context, r *model.Rental) error {
	_, err := Update(ctx, cq.Conn, r)
	return err
}

func (cq connQueryer) GetActiveByDeliveryPerson(ctx context.Context, did uuid.UUID) (*model.Rental, error) {
	return GetActiveByDeliveryPerson(ctx, cq.Conn, did)
}

func (cq connQueryer) ExistsByMotorcycle(ctx context.Context, mid uuid.UUID) (bool, error) {
	return ExistsByMotorcycle(ctx, cq.Conn, mid)
}

type txQueryer struct {
	*postgres.Tx
}

func (rs *Repo) Tx(tx repo.Tx) repo.RentalsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, r *model.Rental) error {
	return Create(ctx, tq.Tx, r)
}

func (tq txQueryer) GetByID(ctx context.Context, rid uuid.UUID) (*model.Rental, error) {
	return GetByID(ctx, tq.Tx, rid)
}

func (tq txQueryer) Update(ctx context.Context, r *model.Rental) error {
	_, err := Update(ctx, tq.Tx, r)
	return err
}

func (tq txQueryer) GetActiveByDeliveryPerson(ctx context.Context, did uuid.UUID) (*model.Rental, error) {
	return GetActiveByDeliveryPerson(ctx, tq.Tx, did)
}

func (tq txQueryer) ExistsByMotorcycle(ctx context.Context, mid uuid.UUID) (bool, error) {
	return ExistsByMotorcycle(ctx, tq.Tx, mid)
}
