package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"greenpro_billing/internal/domain/entities"
	"greenpro_billing/internal/usecase/interfaces"
	"greenpro_billing/pkg"
)

var (
	ErrPaymentIntentNotFound  = errors.New("payment intent not found")
	ErrInvalidPaymentIntentID = errors.New("invalid payment intent id")
	ErrPaymentGatewayMissing  = errors.New("payment gateway not configured")
)

// DefaultPaymentDescription is used when the caller sends no description.
const DefaultPaymentDescription = "Deposit for Greenpro Environmental Services"

// IPaymentIntentUseCase creates deposit payment intents and reports their status.
type IPaymentIntentUseCase interface {
	Create(ctx context.Context, req entities.PaymentIntentRequest) (entities.PaymentIntentRecord, error)
	GetByID(ctx context.Context, id string) (entities.PaymentIntentRecord, error)
}

type PaymentIntentUseCase struct {
	processor       interfaces.IPaymentProcessor
	repo            interfaces.IPaymentIntentRepository
	defaultCurrency string
	logger          *zap.Logger
	now             func() time.Time
}

var _ IPaymentIntentUseCase = (*PaymentIntentUseCase)(nil)

// NewPaymentIntentUseCase wires the use case. repo may be nil, in which case intents are
// not recorded locally.
func NewPaymentIntentUseCase(processor interfaces.IPaymentProcessor, repo interfaces.IPaymentIntentRepository, defaultCurrency string, logger *zap.Logger) *PaymentIntentUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	currency := strings.ToLower(strings.TrimSpace(defaultCurrency))
	if currency == "" {
		currency = "cad"
	}
	return &PaymentIntentUseCase{
		processor:       processor,
		repo:            repo,
		defaultCurrency: currency,
		logger:          logger,
		now:             time.Now,
	}
}

func (u *PaymentIntentUseCase) Create(ctx context.Context, req entities.PaymentIntentRequest) (entities.PaymentIntentRecord, error) {
	u.logger.Info("[payment][usecase] create payment intent start", zap.Int64("amount", req.Amount), zap.String("currency", req.Currency))
	if req.Amount < pkg.MinimumChargeMinorUnits {
		u.logger.Info("[payment][usecase] invalid amount", zap.Int64("amount", req.Amount))
		return entities.PaymentIntentRecord{}, pkg.ErrInvalidAmount
	}
	if u.processor == nil {
		return entities.PaymentIntentRecord{}, ErrPaymentGatewayMissing
	}

	req.Currency = strings.ToLower(strings.TrimSpace(req.Currency))
	if req.Currency == "" {
		req.Currency = u.defaultCurrency
	}
	req.ReceiptEmail = strings.TrimSpace(req.ReceiptEmail)
	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		req.Description = DefaultPaymentDescription
	}
	req.Metadata = u.metadata(req)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.NewString()
	}

	rec, err := u.processor.CreatePaymentIntent(ctx, req)
	if err != nil {
		u.logger.Warn("[payment][usecase] processor rejected payment intent", zap.Error(err))
		return entities.PaymentIntentRecord{}, err
	}
	u.logger.Info("[payment][usecase] payment intent created",
		zap.String("payment_intent_id", rec.ID), zap.String("status", string(rec.Status)))

	if u.repo != nil {
		stored := rec
		stored.ClientSecret = ""
		if _, err := u.repo.Save(ctx, stored); err != nil {
			u.logger.Warn("[payment][usecase] failed recording payment intent",
				zap.String("payment_intent_id", rec.ID), zap.Error(err))
		}
	}
	return rec, nil
}

func (u *PaymentIntentUseCase) metadata(req entities.PaymentIntentRequest) map[string]string {
	md := make(map[string]string, len(req.Metadata)+4)
	for k, v := range req.Metadata {
		md[k] = v
	}
	if req.ReceiptEmail != "" {
		md["customer_email"] = req.ReceiptEmail
	}
	if _, ok := md["service"]; !ok {
		md["service"] = "Deposit Payment"
	}
	md["company"] = entities.CompanyName
	md["timestamp"] = u.now().UTC().Format(time.RFC3339)
	return md
}

func (u *PaymentIntentUseCase) GetByID(ctx context.Context, id string) (entities.PaymentIntentRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.PaymentIntentRecord{}, ErrInvalidPaymentIntentID
	}
	if u.processor == nil {
		return entities.PaymentIntentRecord{}, ErrPaymentGatewayMissing
	}

	rec, err := u.processor.GetPaymentIntent(ctx, id)
	if err != nil {
		var upstream *pkg.UpstreamPaymentError
		if errors.As(err, &upstream) && upstream.HTTPStatus == http.StatusNotFound {
			return entities.PaymentIntentRecord{}, ErrPaymentIntentNotFound
		}
		return entities.PaymentIntentRecord{}, err
	}

	if u.repo != nil && rec.LastError == "" {
		local, err := u.repo.GetByID(ctx, id)
		if err != nil {
			u.logger.Warn("[payment][usecase] failed loading local payment intent", zap.String("payment_intent_id", id), zap.Error(err))
		} else if local.ID != "" {
			rec.LastError = local.LastError
		}
	}
	return rec, nil
}
