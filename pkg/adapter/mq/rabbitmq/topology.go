package rabbitmq

import "fmt"

// Topology names the broker objects which carry registration events.
type Topology struct {
	Exchange   string
	Queue      string
	RoutingKey string
}

// DeclareTopology declares the durable direct exchange and queue and
// binds them, so publishers and consumers may assume their existence.
// Declarations are idempotent on the broker side.
func (mq *Conn) DeclareTopology(t Topology) error {
	ch, err := mq.channel()
	if err != nil {
		return err
	}
	err = ch.ExchangeDeclare(
		t.Exchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("declaring exchange %q: %w", t.Exchange, err)
	}
	_, err = ch.QueueDeclare(
		t.Queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("declaring queue %q: %w", t.Queue, err)
	}
	err = ch.QueueBind(t.Queue, t.RoutingKey, t.Exchange, false, nil)
	if err != nil {
		return fmt.Errorf(
			"binding %q to %q: %w", t.Queue, t.Exchange, err,
		)
	}
	return nil
}
