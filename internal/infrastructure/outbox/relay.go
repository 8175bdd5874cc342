package outbox

import (
	"context"
	"time"

	"github.com/estantedev/estante/pkg/interfaces"
)

const (
	defaultInterval  = 2 * time.Second
	defaultBatchSize = 100
	maxAttempts      = 10
)

// Relay drains pending outbox messages to the broker on a fixed interval.
// It is safe to run exactly one relay per process; the store orders
// messages by insertion so per-aggregate ordering is preserved.
type Relay struct {
	store     Store
	publisher Publisher
	logger    interfaces.Logger
	interval  time.Duration
	batchSize int
}

// NewRelay creates a relay with default polling settings.
func NewRelay(store Store, publisher Publisher, logger interfaces.Logger) *Relay {
	return &Relay{
		store:     store,
		publisher: publisher,
		logger:    logger,
		interval:  defaultInterval,
		batchSize: defaultBatchSize,
	}
}

// Run polls until the context is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Drain(ctx); err != nil {
				r.logger.Error("outbox drain failed", interfaces.Error(err))
			}
		}
	}
}

// Drain publishes one batch of pending messages. Publishing stops at the
// first failure so later messages for the same aggregate cannot overtake
// an earlier one.
func (r *Relay) Drain(ctx context.Context) error {
	messages, err := r.store.FetchPending(ctx, r.batchSize)
	if err != nil {
		return err
	}

	for _, msg := range messages {
		if err := r.publisher.Publish(ctx, msg); err != nil {
			r.logger.Warn("outbox publish failed",
				interfaces.String("event_type", msg.EventType),
				interfaces.String("event_id", msg.EventID.String()),
				interfaces.Int("attempts", msg.Attempts+1),
				interfaces.Error(err))
			if markErr := r.store.MarkFailed(ctx, msg.ID, err); markErr != nil {
				return markErr
			}
			return nil
		}
		if err := r.store.MarkPublished(ctx, msg.ID); err != nil {
			return err
		}
	}
	return nil
}
