package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/estantedev/estante/internal/infrastructure/outbox"
)

const publishTimeout = 5 * time.Second

// EventEnvelope is the wire format for catalog events.
type EventEnvelope struct {
	ID            string          `json:"id"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	EventType     string          `json:"event_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Data          json.RawMessage `json:"data"`
}

// Publisher delivers outbox messages to JetStream.
type Publisher struct {
	client *Client
	logger *zap.Logger
}

// NewPublisher creates a JetStream outbox publisher.
func NewPublisher(client *Client, logger *zap.Logger) *Publisher {
	return &Publisher{
		client: client,
		logger: logger.Named("publisher"),
	}
}

// Publish sends one staged message. The event id doubles as the JetStream
// deduplication id, so redelivery after a crashed relay is harmless.
func (p *Publisher) Publish(ctx context.Context, msg outbox.Message) error {
	subject := fmt.Sprintf("%s.%s", p.client.config.SubjectPrefix, msg.EventType)

	envelope := EventEnvelope{
		ID:            msg.EventID.String(),
		AggregateID:   msg.AggregateID.String(),
		AggregateType: msg.AggregateType,
		EventType:     msg.EventType,
		OccurredAt:    msg.CreatedAt,
		Data:          msg.Payload,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	ack, err := p.client.JetStream().Publish(pubCtx, subject, data,
		jetstream.WithMsgID(msg.EventID.String()))
	if err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	p.logger.Debug("event published",
		zap.String("event_id", msg.EventID.String()),
		zap.String("event_type", msg.EventType),
		zap.String("subject", subject),
		zap.Uint64("sequence", ack.Sequence),
	)

	return nil
}
