package motosrp

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

func (motos *Repo) Conn(c repo.Conn) repo.MotorcyclesConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, m *model.Motorcycle) error {
	return Create(ctx, cq.Conn, m)
}

func (cq connQueryer) List(ctx context.Context, plateFilter string) ([]*model.Motorcycle, error) {
	return List(ctx, cq.Conn, plateFilter)
}

func (cq connQueryer) GetByID(ctx context.Context, mid uuid.UUID) (*model.Motorcycle, error) {
	return GetByID(ctx, cq.Conn, mid)
}

func (cq connQueryer) UpdateLicensePlate(ctx context.Context, mid uuid.UUID, plate string) (*model.Motorcycle, error) {
	return UpdateLicensePlate(ctx, cq.Conn, mid, plate)
}

func (cq connQueryer) Delete(ctx context.Context, mid uuid.UUID) error {
	return Delete(ctx, cq.Conn, mid)
}

func (cq connQueryer) PlateExists(ctx context.Context, plate string, exclude uuid.UUID) (bool, error) {
	return PlateExists(ctx, cq.Conn, plate, exclude)
}

type txQueryer struct {
	*postgres.Tx
}

func (motos *Repo) Tx(tx repo.Tx) repo.MotorcyclesTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, m *model.Motorcycle) error {
	return Create(ctx, tq.Tx, m)
}

func (tq txQueryer) List(ctx context.Context, plateFilter string) ([]*model.Motorcycle, error) {
	return List(ctx, tq.Tx, plateFilter)
}

func (tq txQueryer) GetByID(ctx context.Context, mid uuid.UUID) (*model.Motorcycle, error) {
	return GetByID(ctx, tq.Tx, mid)
}

func (tq txQueryer) UpdateLicensePlate(ctx context.Context, mid uuid.UUID, plate string) (*model.Motorcycle, error) {
	return UpdateLicensePlate(ctx, tq.Tx, mid, plate)
}

func (tq txQueryer) Delete(ctx context.Context, mid uuid.UUID) error {
	return Delete(ctx, tq.Tx, mid)
}

func (tq txQueryer) PlateExists(ctx context.Context, plate string, exclude uuid.UUID) (bool, error) {
	return PlateExists(ctx, tq.Tx, plate, exclude)
}
