package notifsrp

import (
	"context"

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

func (ns *Repo) Conn(c repo.Conn) repo.NotificationsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, n *model.MotorcycleNotification) error {
	return Create(ctx, cq.Conn, n)
}

type txQueryer struct {
	*postgres.Tx
}

func (ns *Repo) Tx(tx repo.Tx) repo.NotificationsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, n *model.MotorcycleNotification) error {
	return Create(ctx, tq.Tx, n)
}
