package interfaces

import (
	"context"

	"greenpro_billing/internal/domain/entities"
)

// IWebhookEventRepository remembers which webhook event ids were handled.
//
// MarkProcessed returns false when the id was already recorded. Release forgets an id
// so that a redelivery of an event whose handler failed is processed again.
type IWebhookEventRepository interface {
	MarkProcessed(ctx context.Context, ev entities.ProcessedEvent) (bool, error)
	Release(ctx context.Context, eventID string) error
}
