package outbox

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estantedev/estante/pkg/logger"
)

type fakeStore struct {
	pending   []Message
	published []uint
	failed    []uint
	fetchErr  error
}

func (s *fakeStore) FetchPending(ctx context.Context, limit int) ([]Message, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	if len(s.pending) > limit {
		return s.pending[:limit], nil
	}
	return s.pending, nil
}

func (s *fakeStore) MarkPublished(ctx context.Context, id uint) error {
	s.published = append(s.published, id)
	return nil
}

func (s *fakeStore) MarkFailed(ctx context.Context, id uint, cause error) error {
	s.failed = append(s.failed, id)
	return nil
}

type fakePublisher struct {
	delivered []Message
	failOn    map[uint]error
}

func (p *fakePublisher) Publish(ctx context.Context, msg Message) error {
	if err, ok := p.failOn[msg.ID]; ok {
		return err
	}
	p.delivered = append(p.delivered, msg)
	return nil
}

func newMessage(id uint, eventType string) Message {
	return Message{
		ID:            id,
		EventID:       uuid.New(),
		AggregateID:   uuid.New(),
		AggregateType: "book",
		EventType:     eventType,
		Payload:       []byte(`{}`),
		Status:        StatusPending,
	}
}

func newTestRelay(store Store, publisher Publisher) *Relay {
	relay := NewRelay(store, publisher, logger.NewNoop())
	relay.batchSize = 10
	return relay
}

func TestDrainPublishesInOrder(t *testing.T) {
	store := &fakeStore{pending: []Message{
		newMessage(1, "book.created"),
		newMessage(2, "book.updated"),
		newMessage(3, "book.disabled"),
	}}
	publisher := &fakePublisher{}

	require.NoError(t, newTestRelay(store, publisher).Drain(context.Background()))

	require.Len(t, publisher.delivered, 3)
	assert.Equal(t, "book.created", publisher.delivered[0].EventType)
	assert.Equal(t, "book.disabled", publisher.delivered[2].EventType)
	assert.Equal(t, []uint{1, 2, 3}, store.published)
	assert.Empty(t, store.failed)
}

func TestDrainStopsBatchOnFirstFailure(t *testing.T) {
	store := &fakeStore{pending: []Message{
		newMessage(1, "book.created"),
		newMessage(2, "book.updated"),
		newMessage(3, "book.disabled"),
	}}
	publisher := &fakePublisher{failOn: map[uint]error{2: errors.New("broker down")}}

	require.NoError(t, newTestRelay(store, publisher).Drain(context.Background()))

	// message 3 must not overtake the failed message 2
	require.Len(t, publisher.delivered, 1)
	assert.Equal(t, []uint{1}, store.published)
	assert.Equal(t, []uint{2}, store.failed)
}

func TestDrainRespectsBatchSize(t *testing.T) {
	store := &fakeStore{}
	for i := uint(1); i <= 15; i++ {
		store.pending = append(store.pending, newMessage(i, "book.created"))
	}
	publisher := &fakePublisher{}

	require.NoError(t, newTestRelay(store, publisher).Drain(context.Background()))

	assert.Len(t, publisher.delivered, 10)
}

func TestDrainPropagatesFetchError(t *testing.T) {
	store := &fakeStore{fetchErr: errors.New("connection reset")}
	publisher := &fakePublisher{}

	err := newTestRelay(store, publisher).Drain(context.Background())

	require.Error(t, err)
	assert.Empty(t, publisher.delivered)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	store := &fakeStore{}
	relay := newTestRelay(store, &fakePublisher{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		relay.Run(ctx)
		close(done)
	}()

	cancel()
	<-done
}
