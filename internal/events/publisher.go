// Package events carries best-effort "a post changed" notifications. The
// publisher is constructed in bootstrap and injected; there is no package
// global. Delivery is fire-and-forget with no guarantee.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"blogql/internal/model"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
)

type PostEvent struct {
	Action string     `json:"action"`
	Post   model.Post `json:"post"`
}

type Publisher interface {
	PublishPostEvent(ctx context.Context, event PostEvent) error
}

type AMQPPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewAMQPPublisher(conn *amqp.Connection, queueName string) *AMQPPublisher {
	return &AMQPPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *AMQPPublisher) PublishPostEvent(ctx context.Context, event PostEvent) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal post event failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Transient,
		},
	); err != nil {
		return fmt.Errorf("publish post event failed: %w", err)
	}
	return nil
}

// NopPublisher discards events. Used in tests and when the broker is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishPostEvent(context.Context, PostEvent) error {
	return nil
}
