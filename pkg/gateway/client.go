// Package gateway is the HTTP client for the payment intent endpoint.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"greenpro_billing/internal/domain/entities"
	"greenpro_billing/pkg"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

type createIntentRequest struct {
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency,omitempty"`
	CustomerEmail string            `json:"customer_email,omitempty"`
	Description   string            `json:"description,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

type createIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// CreatePaymentIntent posts to /create-payment-intent. Amounts below the processor minimum
// are rejected locally without a request.
func (c *Client) CreatePaymentIntent(ctx context.Context, req entities.PaymentIntentRequest) (entities.PaymentIntentRecord, error) {
	if req.Amount < pkg.MinimumChargeMinorUnits {
		return entities.PaymentIntentRecord{}, pkg.ErrInvalidAmount
	}

	body, err := json.Marshal(createIntentRequest{
		Amount:        req.Amount,
		Currency:      req.Currency,
		CustomerEmail: req.ReceiptEmail,
		Description:   req.Description,
		Metadata:      req.Metadata,
	})
	if err != nil {
		return entities.PaymentIntentRecord{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/create-payment-intent", bytes.NewReader(body))
	if err != nil {
		return entities.PaymentIntentRecord{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if req.IdempotencyKey != "" {
		httpReq.Header.Set(IdempotencyKeyHeader, req.IdempotencyKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return entities.PaymentIntentRecord{}, &pkg.NetworkError{Op: "create payment intent", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return entities.PaymentIntentRecord{}, &pkg.NetworkError{Op: "read payment intent response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return entities.PaymentIntentRecord{}, c.decodeError(resp.StatusCode, raw)
	}

	var out createIntentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return entities.PaymentIntentRecord{}, fmt.Errorf("decode response: %w", err)
	}
	if out.ClientSecret == "" {
		return entities.PaymentIntentRecord{}, errors.New("no client secret received from server")
	}

	c.logger.Info("[gateway][client] payment intent created",
		zap.String("payment_intent_id", out.PaymentIntentID), zap.Int64("amount", req.Amount))

	return entities.PaymentIntentRecord{
		ID:           out.PaymentIntentID,
		ClientSecret: out.ClientSecret,
		Amount:       req.Amount,
		Currency:     req.Currency,
		Status:       entities.PaymentIntentRequiresPaymentMethod,
		ReceiptEmail: req.ReceiptEmail,
		Description:  req.Description,
		Metadata:     req.Metadata,
	}, nil
}

func (c *Client) decodeError(status int, raw []byte) error {
	var body errorResponse
	_ = json.Unmarshal(raw, &body)

	c.logger.Warn("[gateway][client] payment intent rejected",
		zap.Int("status", status), zap.String("error", body.Error), zap.String("code", body.Code))

	if status == http.StatusBadRequest && body.Error == "Invalid amount" {
		return pkg.ErrInvalidAmount
	}

	msg := body.Error
	if msg == "" {
		msg = body.Message
	}
	if msg == "" {
		msg = fmt.Sprintf("Payment failed (status %d)", status)
	}
	return &pkg.UpstreamPaymentError{Message: msg, Code: body.Code, HTTPStatus: status}
}
