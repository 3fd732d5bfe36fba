package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DispatchPayload is one queued dispatch job. IDs only; the worker reloads the
// records so a broadcast never sends against stale lead data.
type DispatchPayload struct {
	LeadID     string `json:"lead_id"`
	TemplateID string `json:"template_id"`
	AgentID    string `json:"agent_id,omitempty"`
	UserID     string `json:"user_id,omitempty"`
	FromStage  string `json:"from_stage,omitempty"`
	ToStage    string `json:"to_stage,omitempty"`
}

type QueueProducerInterface interface {
	PublishDispatch(ctx context.Context, payload DispatchPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishDispatch(ctx context.Context, payload DispatchPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to serialize payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)

	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %v", err)
	}

	return nil
}
