package messaging

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sobitas/backend/internal/domain/messaging"
	"github.com/sobitas/backend/internal/domain/partner"
	"github.com/sobitas/backend/internal/domain/sales"
	"github.com/sobitas/backend/internal/domain/shared"
	"github.com/sobitas/backend/internal/domain/shared/valueobject"
)

// IdempotencyStore records which notifications have already been dispatched.
// Claim returns true exactly once per key; later claims for the same key
// return false. A store failure is treated as "already sent" by the handler
// so a flaky store can only suppress messages, never duplicate them.
type IdempotencyStore interface {
	Claim(ctx context.Context, key string) (bool, error)
}

// NotificationHandler turns committed document and client events into SMS
// messages. It runs after the owning transaction has committed; a delivery
// failure is logged and swallowed, the document itself is never affected.
type NotificationHandler struct {
	logger      *zap.Logger
	templates   messaging.TemplateRepository
	sender      messaging.Sender
	idempotency IdempotencyStore
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(logger *zap.Logger, templates messaging.TemplateRepository, sender messaging.Sender, idempotency IdempotencyStore) *NotificationHandler {
	return &NotificationHandler{
		logger:      logger,
		templates:   templates,
		sender:      sender,
		idempotency: idempotency,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *NotificationHandler) EventTypes() []string {
	return []string{
		sales.EventTypeDocumentCreated,
		sales.EventTypeDocumentStatusChanged,
		partner.EventTypeCustomerCreated,
	}
}

// Handle processes a committed domain event
func (h *NotificationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *sales.DocumentCreatedEvent:
		h.handleDocumentCreated(ctx, e)
	case *sales.DocumentStatusChangedEvent:
		h.handleStatusChanged(ctx, e)
	case *partner.CustomerCreatedEvent:
		h.handleCustomerCreated(ctx, e)
	default:
		h.logger.Error("unexpected event type",
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
	return nil
}

func (h *NotificationHandler) handleDocumentCreated(ctx context.Context, e *sales.DocumentCreatedEvent) {
	// Only placed orders trigger a message; invoices and tickets are
	// issued at the counter.
	if e.DocumentType != sales.DocTypeOrder || e.Phone == "" {
		return
	}
	key := fmt.Sprintf("notif:%s:new", e.DocumentID)
	h.dispatch(ctx, key, messaging.TemplateOrderPlaced, e.Phone, messaging.Fields{
		LastName:  e.LastName,
		FirstName: e.FirstName,
		Number:    e.Number,
		Total:     valueobject.NewMoneyTND(e.TotalTTC).String(),
	})
}

func (h *NotificationHandler) handleStatusChanged(ctx context.Context, e *sales.DocumentStatusChangedEvent) {
	if !e.Notify || e.Phone == "" {
		return
	}
	key := fmt.Sprintf("notif:%s:%s", e.DocumentID, e.Status)
	h.dispatch(ctx, key, messaging.TemplateOrderStatus, e.Phone, messaging.Fields{
		LastName:    e.LastName,
		FirstName:   e.FirstName,
		Number:      e.Number,
		StatusLabel: e.Status.Label(),
	})
}

func (h *NotificationHandler) handleCustomerCreated(ctx context.Context, e *partner.CustomerCreatedEvent) {
	if e.Phone == "" {
		return
	}
	key := fmt.Sprintf("notif:welcome:%s", e.CustomerID)
	h.dispatch(ctx, key, messaging.TemplateWelcome, e.Phone, messaging.Fields{
		LastName: e.Name,
	})
}

// dispatch claims the idempotency key, renders the template and hands the
// text to the sender. Every failure path logs and returns; nothing here
// propagates back to the caller.
func (h *NotificationHandler) dispatch(ctx context.Context, key string, kind messaging.TemplateKind, phone string, fields messaging.Fields) {
	claimed, err := h.idempotency.Claim(ctx, key)
	if err != nil {
		h.logger.Error("failed to claim notification key",
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}
	if !claimed {
		h.logger.Debug("notification already sent", zap.String("key", key))
		return
	}

	template, err := h.templates.FindByKind(ctx, kind)
	if err != nil {
		h.logger.Error("failed to load message template",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return
	}

	text := template.Render(fields)
	if text == "" {
		h.logger.Debug("message template is blank, skipping",
			zap.String("kind", string(kind)),
		)
		return
	}

	if err := h.sender.Send(ctx, phone, text); err != nil {
		h.logger.Error("failed to send notification",
			zap.String("key", key),
			zap.String("phone", phone),
			zap.Error(err),
		)
		return
	}

	h.logger.Info("notification sent",
		zap.String("key", key),
		zap.String("kind", string(kind)),
	)
}

// Ensure NotificationHandler implements shared.EventHandler
var _ shared.EventHandler = (*NotificationHandler)(nil)
