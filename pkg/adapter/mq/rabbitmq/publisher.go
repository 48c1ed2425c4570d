package rabbitmq

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/motorent/rentweb/pkg/core/model"
)

// Publisher announces registered motorcycles over the broker. It
// satisfies the publisher expectations of the motorcycles use case.
type Publisher struct {
	mq *Conn
	t  Topology
}

// NewPublisher instantiates a publisher over an established broker
// connection with a declared topology.
func NewPublisher(mq *Conn, t Topology) *Publisher {
	return &Publisher{mq: mq, t: t}
}

// PublishMotorcycleRegistered serializes and publishes the e event.
func (p *Publisher) PublishMotorcycleRegistered(
	ctx context.Context, e model.MotorcycleRegistered,
) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("serializing event: %w", err)
	}
	return p.mq.Publish(ctx, p.t.Exchange, p.t.RoutingKey, body)
}
