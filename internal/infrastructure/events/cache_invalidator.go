package events

import (
	"context"

	"github.com/estantedev/estante/internal/domain/catalog"
	"github.com/estantedev/estante/internal/domain/events"
	"github.com/estantedev/estante/pkg/interfaces"
)

// MutationEventTypes lists every event type that changes aggregate state.
var MutationEventTypes = []string{
	catalog.EventBookCreated,
	catalog.EventBookUpdated,
	catalog.EventBookCoverUpdated,
	catalog.EventBookDisabled,
	catalog.EventBookActivated,
	catalog.EventBookDeleted,
	catalog.EventGenderCreated,
	catalog.EventGenderUpdated,
	catalog.EventGenderDisabled,
	catalog.EventGenderActivated,
	catalog.EventGenderDeleted,
	catalog.EventPublisherCreated,
	catalog.EventPublisherUpdated,
	catalog.EventPublisherDisabled,
	catalog.EventPublisherActivated,
	catalog.EventPublisherDeleted,
}

// CacheInvalidator evicts cached read views when their aggregate mutates.
type CacheInvalidator struct {
	cache  interfaces.Cache
	logger interfaces.Logger
}

// NewCacheInvalidator creates the invalidator.
func NewCacheInvalidator(cache interfaces.Cache, logger interfaces.Logger) *CacheInvalidator {
	return &CacheInvalidator{cache: cache, logger: logger}
}

// Register subscribes the invalidator to every mutation event type.
func (c *CacheInvalidator) Register(dispatcher events.Dispatcher) {
	dispatcher.RegisterHandler(c, MutationEventTypes...)
}

// HandleEvent evicts the aggregate's cached view. Eviction failures are
// logged, not propagated; a stale entry expires on its own TTL.
func (c *CacheInvalidator) HandleEvent(ctx context.Context, event events.Event) error {
	key := event.AggregateType() + ":" + event.AggregateID().String()
	if err := c.cache.Delete(ctx, key); err != nil {
		c.logger.Warn("cache eviction failed",
			interfaces.String("key", key),
			interfaces.Error(err))
	}
	return nil
}

// CanHandle reports whether the event type mutates aggregate state.
func (c *CacheInvalidator) CanHandle(eventType string) bool {
	for _, et := range MutationEventTypes {
		if et == eventType {
			return true
		}
	}
	return false
}
