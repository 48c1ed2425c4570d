package deliveriesrp

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

func (dps *Repo) Conn(c repo.Conn) repo.DeliveryPersonsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, d *model.DeliveryPerson) error {
	return Create(ctx, cq.Conn, d)
}

func (cq connQueryer) GetByID(ctx context.Context, did uuid.UUID) (*model.DeliveryPerson, error) {
	return GetByID(ctx, cq.Conn, did)
}

func (cq connQueryer) TaxIDExists(ctx context.Context, taxID string) (bool, error) {
	return TaxIDExists(ctx, cq.Conn, taxID)
}

func (cq connQueryer) LicenseNumberExists(ctx context.Context, licenseNumber string) (bool, error) {
	return LicenseNumberExists(ctx, cq.Conn, licenseNumber)
}

func (cq connQueryer) UpdateLicenseImage(ctx context.Context, did uuid.UUID, url string) (*model.DeliveryPerson, error) {
	return UpdateLicenseImage(ctx, cq.Conn, did, url)
}

type txQueryer struct {
	*postgres.Tx
}

func (dps *Repo) Tx(tx repo.Tx) repo.DeliveryPersonsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, d *model.DeliveryPerson) error {
	return Create(ctx, tq.Tx, d)
}

func (tq txQueryer) GetByID(ctx context.Context, did uuid.UUID) (*model.DeliveryPerson, error) {
	return GetByID(ctx, tq.Tx, did)
}

func (tq txQueryer) TaxIDExists(ctx context.Context, taxID string) (bool, error) {
	return TaxIDExists(ctx, tq.Tx, taxID)
}

func (tq txQueryer) LicenseNumberExists(ctx context.Context, licenseNumber string) (bool, error) {
	return LicenseNumberExists(ctx, tq.Tx, licenseNumber)
}

func (tq txQueryer) UpdateLicenseImage(ctx context.Context, did uuid.UUID, url string) (*model.DeliveryPerson, error) {
	return UpdateLicenseImage(ctx, tq.Tx, did, url)
}
