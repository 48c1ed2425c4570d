// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package rabbitmq adapts the RabbitMQ message broker, allowing
// registration events to be announced and consumed. One Conn wraps an
// AMQP connection with a single channel; publishing and consuming are
// safe for concurrent use as long as the channel stays open.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/motorent/rentweb/pkg/core/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	maxConnectAttempts = 10
	maxConnectBackoff  = 30 * time.Second
	publishTimeout     = 5 * time.Second
	prefetchCount      = 10
)

// Conn represents an established connection to the message broker.
type Conn struct {
	url string

	mu     sync.RWMutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	closed bool
}

// Connect dials the broker at the given AMQP URL, retrying with a
// growing backoff until the broker accepts the connection, the attempt
// budget runs out, or ctx is canceled.
func Connect(ctx context.Context, url string) (*Conn, error) {
	mq := &Conn{url: url}
	backoff := time.Second
	for attempt := 1; ; attempt++ {
		err := mq.connect()
		if err == nil {
			return mq, nil
		}
		log.Warn(
			ctx, "connecting to message broker",
			log.Err("error", err),
		)
		if attempt == maxConnectAttempts {
			return nil, fmt.Errorf(
				"connecting after %d attempts: %w", attempt, err,
			)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
			backoff = time.Duration(float64(backoff) * 1.5)
			if backoff > maxConnectBackoff {
				backoff = maxConnectBackoff
			}
		}
	}
}

func (mq *Conn) connect() error {
	conn, err := amqp.Dial(mq.url)
	if err != nil {
		return fmt.Errorf("dialing broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("opening channel: %w", err)
	}
	if err := ch.Qos(prefetchCount, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("setting qos: %w", err)
	}
	mq.mu.Lock()
	mq.conn = conn
	mq.ch = ch
	mq.mu.Unlock()
	return nil
}

func (mq *Conn) channel() (*amqp.Channel, error) {
	mq.mu.RLock()
	defer mq.mu.RUnlock()
	if mq.closed || mq.ch == nil {
		return nil, errors.New("broker channel is not available")
	}
	return mq.ch, nil
}

// Publish sends a persistent JSON message to the exchange with the
// given routing key, bounding the operation with the publish timeout.
func (mq *Conn) Publish(
	ctx context.Context, exchange, routingKey string, body []byte,
) error {
	ch, err := mq.channel()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	err = ch.PublishWithContext(
		ctx, exchange, routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publishing to %q: %w", exchange, err)
	}
	return nil
}

// Consume reads deliveries from the queue, invoking handler for each
// one until ctx is canceled or the channel is closed. Deliveries are
// not auto-acknowledged; the handler settles each one itself.
func (mq *Conn) Consume(
	ctx context.Context, queue, consumer string,
	handler func(amqp.Delivery),
) error {
	ch, err := mq.channel()
	if err != nil {
		return err
	}
	msgs, err := ch.Consume(
		queue, consumer,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("consuming from %q: %w", queue, err)
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					log.Info(ctx, "consumer channel closed")
					return
				}
				handler(msg)
			}
		}
	}()
	return nil
}

// Close releases the channel and connection. It is idempotent.
func (mq *Conn) Close() error {
	mq.mu.Lock()
	defer mq.mu.Unlock()
	if mq.closed {
		return nil
	}
	mq.closed = true
	if mq.ch != nil {
		_ = mq.ch.Close()
	}
	if mq.conn != nil {
		return mq.conn.Close()
	}
	return nil
}
