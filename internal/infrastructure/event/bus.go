package event

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/sobitas/backend/internal/domain/shared"
)

// InMemoryEventBus implements EventBus with in-memory pub/sub. Dispatch is
// asynchronous: Publish hands each event to its handlers on a background
// goroutine and returns immediately, so a slow notification gateway never
// delays the request that committed the event. Wait drains in-flight
// handlers during shutdown.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	wg       sync.WaitGroup
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// Publish delivers events to all registered handlers asynchronously.
// Handler failures are logged and never surface to the publisher.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		handlers := b.registry.GetHandlers(event.EventType())
		for _, handler := range handlers {
			b.wg.Add(1)
			go func(handler shared.EventHandler, event shared.DomainEvent) {
				defer b.wg.Done()
				// Detach from the request context: the transaction has
				// committed, the handler outlives the request.
				if err := b.dispatchToHandler(context.WithoutCancel(ctx), handler, event); err != nil {
					b.logger.Error("handler failed to process event",
						zap.String("event_type", event.EventType()),
						zap.String("event_id", event.EventID().String()),
						zap.Error(err),
					)
				}
			}(handler, event)
		}
	}
	return nil
}

// Subscribe registers a handler for specific event types
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed",
		zap.Strings("event_types", eventTypes),
	)
}

// Unsubscribe removes a handler
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
	b.logger.Debug("handler unsubscribed")
}

// Wait blocks until all in-flight handler goroutines finish
func (b *InMemoryEventBus) Wait() {
	b.wg.Wait()
}

// dispatchToHandler safely dispatches an event to a handler
func (b *InMemoryEventBus) dispatchToHandler(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panicked",
				zap.String("event_type", event.EventType()),
				zap.Any("panic", r),
			)
		}
	}()

	return handler.Handle(ctx, event)
}

// Ensure InMemoryEventBus implements EventBus
var _ shared.EventBus = (*InMemoryEventBus)(nil)
