package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"greenpro_billing/internal/domain/entities"
	"greenpro_billing/internal/usecase/interfaces"
	"greenpro_billing/pkg"
)

// WebhookResult describes what happened to a verified event.
type WebhookResult struct {
	EventID   string
	Type      entities.PaymentEventType
	Duplicate bool
	Ignored   bool
}

// IWebhookUseCase verifies and dispatches payment processor webhooks.
//
// Delivery is at-least-once: a repeated event id is acknowledged without running its
// handler again.
type IWebhookUseCase interface {
	Handle(ctx context.Context, payload []byte, signatureHeader string) (WebhookResult, error)
}

type WebhookUseCase struct {
	processor interfaces.IPaymentProcessor
	events    interfaces.IWebhookEventRepository
	intents   interfaces.IPaymentIntentRepository
	notifier  interfaces.IFulfillmentNotifier
	logger    *zap.Logger
	now       func() time.Time
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

// NewWebhookUseCase wires the use case. A nil events repository falls back to an
// in-process log, which only deduplicates within one process.
func NewWebhookUseCase(processor interfaces.IPaymentProcessor, events interfaces.IWebhookEventRepository, intents interfaces.IPaymentIntentRepository, notifier interfaces.IFulfillmentNotifier, logger *zap.Logger) *WebhookUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if events == nil {
		events = newMemoryEventLog()
	}
	return &WebhookUseCase{
		processor: processor,
		events:    events,
		intents:   intents,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

func (u *WebhookUseCase) Handle(ctx context.Context, payload []byte, signatureHeader string) (WebhookResult, error) {
	if u.processor == nil {
		return WebhookResult{}, ErrPaymentGatewayMissing
	}
	ev, err := u.processor.ConstructEvent(payload, signatureHeader)
	if err != nil {
		u.logger.Warn("[webhook][usecase] signature verification failed", zap.Error(err))
		if !errors.Is(err, pkg.ErrSignatureVerification) {
			err = fmt.Errorf("%w: %v", pkg.ErrSignatureVerification, err)
		}
		return WebhookResult{}, err
	}

	res := WebhookResult{EventID: ev.ID, Type: ev.Type}
	handler := u.handlerFor(ev.Type)
	if handler == nil {
		u.logger.Info("[webhook][usecase] unhandled event type", zap.String("event_id", ev.ID), zap.String("type", string(ev.Type)))
		res.Ignored = true
		return res, nil
	}

	first, err := u.events.MarkProcessed(ctx, entities.ProcessedEvent{EventID: ev.ID, Type: ev.Type, ProcessedAt: u.now().UTC()})
	if err != nil {
		return res, fmt.Errorf("record webhook event %s: %w", ev.ID, err)
	}
	if !first {
		u.logger.Info("[webhook][usecase] duplicate event skipped", zap.String("event_id", ev.ID), zap.String("type", string(ev.Type)))
		res.Duplicate = true
		return res, nil
	}

	if err := handler(ctx, ev); err != nil {
		if relErr := u.events.Release(ctx, ev.ID); relErr != nil {
			u.logger.Error("[webhook][usecase] failed releasing event", zap.String("event_id", ev.ID), zap.Error(relErr))
		}
		return res, err
	}
	return res, nil
}

func (u *WebhookUseCase) handlerFor(t entities.PaymentEventType) func(context.Context, entities.PaymentEvent) error {
	switch t {
	case entities.EventPaymentIntentSucceeded:
		return u.handleSucceeded
	case entities.EventPaymentIntentPaymentFailed:
		return u.handlePaymentFailed
	case entities.EventPaymentIntentCanceled:
		return u.handleCanceled
	default:
		return nil
	}
}

func (u *WebhookUseCase) handleSucceeded(ctx context.Context, ev entities.PaymentEvent) error {
	pi := ev.Intent
	u.logger.Info("[webhook][usecase] payment succeeded",
		zap.String("payment_intent_id", pi.ID), zap.Int64("amount", pi.Amount), zap.String("currency", pi.Currency))

	u.record(ctx, pi, entities.PaymentIntentSucceeded, "")
	if u.notifier == nil {
		return nil
	}
	if err := u.notifier.NotifyDepositReceived(ctx, pi); err != nil {
		return fmt.Errorf("notify deposit %s: %w", pi.ID, err)
	}
	return nil
}

func (u *WebhookUseCase) handlePaymentFailed(ctx context.Context, ev entities.PaymentEvent) error {
	pi := ev.Intent
	u.logger.Warn("[webhook][usecase] payment failed",
		zap.String("payment_intent_id", pi.ID), zap.String("last_error", pi.LastError))
	u.record(ctx, pi, entities.PaymentIntentPaymentFailed, pi.LastError)
	return nil
}

func (u *WebhookUseCase) handleCanceled(ctx context.Context, ev entities.PaymentEvent) error {
	pi := ev.Intent
	u.logger.Info("[webhook][usecase] payment canceled", zap.String("payment_intent_id", pi.ID))
	u.record(ctx, pi, entities.PaymentIntentCanceled, "")
	return nil
}

// record stores the reported status. Bookkeeping failures are logged only; the event
// itself was handled.
func (u *WebhookUseCase) record(ctx context.Context, pi entities.PaymentIntentRecord, status entities.PaymentIntentStatus, lastError string) {
	if u.intents == nil || pi.ID == "" {
		return
	}
	pi.Status = status
	pi.LastError = lastError
	pi.ClientSecret = ""
	pi.UpdatedAt = u.now().UTC()
	if _, err := u.intents.Save(ctx, pi); err != nil {
		u.logger.Warn("[webhook][usecase] failed recording payment intent status",
			zap.String("payment_intent_id", pi.ID), zap.String("status", string(status)), zap.Error(err))
	}
}

type memoryEventLog struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func newMemoryEventLog() *memoryEventLog {
	return &memoryEventLog{seen: map[string]struct{}{}}
}

func (m *memoryEventLog) MarkProcessed(_ context.Context, ev entities.ProcessedEvent) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.seen[ev.EventID]; ok {
		return false, nil
	}
	m.seen[ev.EventID] = struct{}{}
	return true, nil
}

func (m *memoryEventLog) Release(_ context.Context, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.seen, eventID)
	return nil
}
