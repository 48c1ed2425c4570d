package rabbitmq

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/motorent/rentweb/pkg/core/log"
	"github.com/motorent/rentweb/pkg/core/model"
	"github.com/motorent/rentweb/pkg/core/repo"
	amqp "github.com/rabbitmq/amqp091-go"
)

// notificationYear selects the registration events which must be
// recorded as notifications.
const notificationYear = 2024

// Consumer stores a notification for each consumed registration event
// which matches the notification criteria. Other events are consumed
// and dropped.
type Consumer struct {
	mq       *Conn
	pool     repo.Pool
	notifsrp repo.Notifications
	queue    string
}

// NewConsumer instantiates a consumer over an established broker
// connection with a declared topology.
func NewConsumer(
	mq *Conn, t Topology, p repo.Pool, n repo.Notifications,
) *Consumer {
	return &Consumer{mq: mq, pool: p, notifsrp: n, queue: t.Queue}
}

// Run starts consuming registration events until ctx is canceled.
// Malformed messages are rejected without requeueing; messages which
// fail to be stored are requeued for a later attempt.
func (cons *Consumer) Run(ctx context.Context) error {
	return cons.mq.Consume(
		ctx, cons.queue, "rentweb-notifications",
		func(msg amqp.Delivery) {
			cons.handle(ctx, msg)
		},
	)
}

func (cons *Consumer) handle(ctx context.Context, msg amqp.Delivery) {
	var e model.MotorcycleRegistered
	if err := json.Unmarshal(msg.Body, &e); err != nil {
		log.Warn(
			ctx, "dropping malformed registration event",
			log.Err("error", err),
		)
		_ = msg.Nack(false, false)
		return
	}
	if e.Year != notificationYear {
		_ = msg.Ack(false)
		return
	}
	n := model.NewMotorcycleNotification(
		e.MotorcycleID, e.Year, e.Model, e.LicensePlate,
	)
	err := cons.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return cons.notifsrp.Conn(c).Create(ctx, n)
	})
	if err != nil {
		log.Error(
			ctx, "storing motorcycle notification",
			log.Err("error", err),
		)
		_ = msg.Nack(false, true)
		return
	}
	_ = msg.Ack(false)
}
