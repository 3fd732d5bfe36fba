package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/kelechv1/edulead-crm/internal/entity"
	"github.com/kelechv1/edulead-crm/internal/usecase"
)

// Dispatcher is the pipeline contract the worker drives for each job.
type Dispatcher interface {
	Execute(ctx context.Context, input usecase.DispatchInput) (*usecase.DispatchReport, error)
}

type Worker struct {
	Channel    *amqp.Channel
	Dispatcher Dispatcher
	Leads      entity.LeadRepositoryInterface
	Agents     entity.AgentRepositoryInterface
	Templates  entity.TemplateRepositoryInterface
}

func NewWorker(ch *amqp.Channel, dispatcher Dispatcher, leads entity.LeadRepositoryInterface, agents entity.AgentRepositoryInterface, templates entity.TemplateRepositoryInterface) *Worker {
	return &Worker{
		Channel:    ch,
		Dispatcher: dispatcher,
		Leads:      leads,
		Agents:     agents,
		Templates:  templates,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ [WORKER] Failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload DispatchPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] Invalid JSON: %s", err)
				// Malformed message. Reject without requeue so it goes to the DLQ.
				d.Nack(false, false)
				continue
			}

			log.Printf("⚙️ [WORKER] Processing dispatch for lead %s (template %s)", payload.LeadID, payload.TemplateID)

			if err := w.processJob(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Dispatch failed: %s", err)
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] Dispatch recorded for lead %s", payload.LeadID)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker running, waiting on queue '%s'", queueName)
	<-forever
}

// processJob reloads the records by ID and runs the full pipeline. A returned
// error means an infrastructure fault (lookup or history write); per-channel
// delivery failures are already recorded in history and do not nack the job.
func (w *Worker) processJob(ctx context.Context, payload DispatchPayload) error {
	lead, err := w.Leads.FindByID(ctx, payload.LeadID)
	if err != nil {
		return err
	}

	tpl, err := w.Templates.FindByID(ctx, payload.TemplateID)
	if err != nil {
		return err
	}

	var agent *entity.Agent
	if payload.AgentID != "" {
		agent, err = w.Agents.FindByID(ctx, payload.AgentID)
		if err != nil {
			// A vanished agent only blanks the {{agent.*}} tokens.
			log.Printf("⚠️ [WORKER] Agent %s not found, dispatching without agent context", payload.AgentID)
			agent = nil
		}
	}

	_, err = w.Dispatcher.Execute(ctx, usecase.DispatchInput{
		Lead:      lead,
		Agent:     agent,
		Template:  tpl,
		UserID:    payload.UserID,
		FromStage: payload.FromStage,
		ToStage:   payload.ToStage,
	})

	return err
}
