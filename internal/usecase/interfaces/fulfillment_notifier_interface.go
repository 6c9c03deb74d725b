package interfaces

import (
	"context"

	"greenpro_billing/internal/domain/entities"
)

// IFulfillmentNotifier tells the business that a deposit was received.
type IFulfillmentNotifier interface {
	NotifyDepositReceived(ctx context.Context, rec entities.PaymentIntentRecord) error
}
