package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sobitas/backend/internal/domain/sales"
	"github.com/sobitas/backend/internal/domain/shared"
)

type recordingHandler struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	types  []string
	err    error
	panics bool
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func (h *recordingHandler) received() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.events...)
}

func newOrderCreatedEvent(t *testing.T) shared.DomainEvent {
	t.Helper()
	doc, err := sales.NewDocument(sales.DocTypeOrder, "2026/0001")
	require.NoError(t, err)
	return sales.NewDocumentCreatedEvent(doc)
}

func TestInMemoryEventBus_PublishAndWait(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{sales.EventTypeDocumentCreated}}
	bus.Subscribe(handler)

	event := newOrderCreatedEvent(t)
	require.NoError(t, bus.Publish(context.Background(), event))
	bus.Wait()

	received := handler.received()
	require.Len(t, received, 1)
	assert.Equal(t, event.EventID(), received[0].EventID())
}

func TestInMemoryEventBus_UnrelatedTypeNotDelivered(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{sales.EventTypeDocumentStatusChanged}}
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newOrderCreatedEvent(t)))
	bus.Wait()

	assert.Empty(t, handler.received())
}

func TestInMemoryEventBus_HandlerErrorDoesNotSurface(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{
		types: []string{sales.EventTypeDocumentCreated},
		err:   errors.New("gateway down"),
	}
	bus.Subscribe(handler)

	assert.NoError(t, bus.Publish(context.Background(), newOrderCreatedEvent(t)))
	bus.Wait()
	assert.Len(t, handler.received(), 1)
}

func TestInMemoryEventBus_HandlerPanicIsContained(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	panicking := &recordingHandler{types: []string{sales.EventTypeDocumentCreated}, panics: true}
	healthy := &recordingHandler{types: []string{sales.EventTypeDocumentCreated}}
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	assert.NoError(t, bus.Publish(context.Background(), newOrderCreatedEvent(t)))
	bus.Wait()

	assert.Len(t, healthy.received(), 1)
}

func TestInMemoryEventBus_SurvivesCancelledPublishContext(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	done := make(chan struct{})
	handler := &ctxCheckingHandler{done: done}
	bus.Subscribe(handler, sales.EventTypeDocumentCreated)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, bus.Publish(ctx, newOrderCreatedEvent(t)))
	cancel()

	<-done
	assert.NoError(t, handler.ctxErr)
}

type ctxCheckingHandler struct {
	done   chan struct{}
	ctxErr error
}

func (h *ctxCheckingHandler) Handle(ctx context.Context, _ shared.DomainEvent) error {
	defer close(h.done)
	h.ctxErr = ctx.Err()
	return nil
}

func (h *ctxCheckingHandler) EventTypes() []string { return nil }

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{sales.EventTypeDocumentCreated}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newOrderCreatedEvent(t)))
	bus.Wait()

	assert.Empty(t, handler.received())
}
