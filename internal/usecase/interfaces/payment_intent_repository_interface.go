package interfaces

import (
	"context"

	"greenpro_billing/internal/domain/entities"
)

// IPaymentIntentRepository keeps the local copy of payment intents the service created
// and the last status reported for them by webhooks.
type IPaymentIntentRepository interface {
	Save(ctx context.Context, rec entities.PaymentIntentRecord) (entities.PaymentIntentRecord, error)
	GetByID(ctx context.Context, id string) (entities.PaymentIntentRecord, error)
	UpdateStatus(ctx context.Context, id string, status entities.PaymentIntentStatus, lastError string) (entities.PaymentIntentRecord, error)
}
