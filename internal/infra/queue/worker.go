package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/peterw/leadreach/internal/entity"
	"github.com/peterw/leadreach/internal/infra/integration/apollo"
)

// EnricherClient is the contract the worker needs from Apollo.
type EnricherClient interface {
	Enrich(ctx context.Context, email, apiKey string) (*apollo.EnrichmentResult, error)
}

type Worker struct {
	Channel  *amqp.Channel
	Enricher EnricherClient
	Leads    entity.LeadRepositoryInterface
}

func NewWorker(ch *amqp.Channel, enricher EnricherClient, leads entity.LeadRepositoryInterface) *Worker {
	return &Worker{
		Channel:  ch,
		Enricher: enricher,
		Leads:    leads,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("failed to register rabbitmq consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload EnrichmentPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[worker] dropping malformed enrichment job: %s", err)
				d.Nack(false, false)
				continue
			}

			if err := w.processJob(context.Background(), payload); err != nil {
				log.Printf("[worker] enrichment failed for %s: %s", payload.Email, err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf("[worker] waiting for enrichment jobs on %q", queueName)
	<-forever
}

func (w *Worker) processJob(ctx context.Context, payload EnrichmentPayload) error {
	result, err := w.Enricher.Enrich(ctx, payload.Email, payload.ApolloKey)
	if err != nil {
		return err
	}

	// "skipped" and "error" providers fail open; nothing to write back.
	if !result.Enriched || result.Data == nil {
		log.Printf("[worker] no enrichment data for %s (provider: %s)", payload.Email, result.Provider)
		return nil
	}

	notes := result.Data.Title
	if result.Data.LinkedIn != "" {
		if notes != "" {
			notes += " — "
		}
		notes += result.Data.LinkedIn
	}

	if err := w.Leads.ApplyEnrichment(ctx, payload.Email, result.Data.Company, result.Data.Location, notes); err != nil {
		return err
	}

	log.Printf("[worker] enriched lead %s from %s", payload.Email, result.Provider)
	return nil
}
