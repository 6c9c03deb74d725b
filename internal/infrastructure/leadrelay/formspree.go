// Package leadrelay posts leads to a form-to-email relay (Formspree compatible).
package leadrelay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"greenpro_billing/internal/domain/entities"
	"greenpro_billing/internal/domain/pricing"
	"greenpro_billing/pkg"
)

var ErrRelayNotConfigured = errors.New("lead relay endpoint not configured")

// Payload is the relay body. _subject and _replyto are interpreted by the relay itself.
type Payload struct {
	Subject            string `json:"_subject"`
	ReplyTo            string `json:"_replyto"`
	FormType           string `json:"formType"`
	Name               string `json:"name"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
	Service            string `json:"service"`
	Area               string `json:"area,omitempty"`
	Rooms              string `json:"rooms,omitempty"`
	Description        string `json:"description,omitempty"`
	Date               string `json:"date"`
	Time               string `json:"time,omitempty"`
	Estimate           string `json:"estimate"`
	DiscountedEstimate string `json:"discountedEstimate"`
	DepositPaid        string `json:"depositPaid"`
	DepositAmount      string `json:"depositAmount"`
	PaymentID          string `json:"paymentId"`
	Timestamp          string `json:"timestamp"`
	EstimateCount      string `json:"estimateCount,omitempty"`
}

// BuildPayload flattens a lead into the relay's field names.
func BuildPayload(lead entities.LeadSubmission) Payload {
	p := Payload{
		Subject:       lead.Subject(),
		ReplyTo:       lead.Email,
		FormType:      string(lead.FormType),
		Name:          lead.Name,
		Phone:         lead.Phone,
		Email:         lead.Email,
		Service:       string(lead.Service),
		Area:          lead.Area,
		Rooms:         lead.Rooms,
		Description:   lead.Description,
		Time:          lead.Time,
		DepositPaid:   "No",
		DepositAmount: "0",
		PaymentID:     "None",
		Timestamp:     lead.SubmittedAt.UTC().Format(time.RFC3339),
	}
	if !lead.Date.IsZero() {
		p.Date = lead.Date.Format("2006-01-02")
	}
	if lead.Estimate != nil {
		p.Estimate = pricing.FormatAmount(lead.Estimate.TotalEstimate)
	}
	if lead.Deposit != nil {
		p.DiscountedEstimate = pricing.FormatAmount(lead.Deposit.DiscountedTotal)
	}
	if lead.Payment != nil {
		p.DepositPaid = "Yes"
		p.DepositAmount = pricing.FormatAmount(pricing.FromMinorUnits(lead.Payment.AmountMinor))
		p.PaymentID = lead.Payment.PaymentIntentID
	}
	if lead.EstimateCount > 0 {
		p.EstimateCount = strconv.FormatInt(lead.EstimateCount, 10)
	}
	return p
}

type Client struct {
	endpoint   string
	httpClient *http.Client
	maxRetries uint64
	logger     *zap.Logger
}

func NewClient(endpoint string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: 3,
		logger:     logger,
	}
}

// Submit posts the lead. 5xx responses and transport errors are retried with exponential
// backoff; 4xx responses are not.
func (c *Client) Submit(ctx context.Context, lead entities.LeadSubmission) error {
	if c.endpoint == "" {
		return ErrRelayNotConfigured
	}
	body, err := json.Marshal(BuildPayload(lead))
	if err != nil {
		return fmt.Errorf("marshal lead: %w", err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxInterval = 2 * time.Second
	policy.MaxElapsedTime = 10 * time.Second

	err = backoff.RetryNotify(
		func() error { return c.post(ctx, body) },
		backoff.WithContext(backoff.WithMaxRetries(policy, c.maxRetries), ctx),
		func(err error, next time.Duration) {
			c.logger.Warn("[leadrelay] submit failed, retrying",
				zap.String("form_type", string(lead.FormType)), zap.Error(err), zap.Duration("next_attempt_in", next))
		},
	)
	if err != nil {
		return err
	}
	c.logger.Info("[leadrelay] lead submitted", zap.String("form_type", string(lead.FormType)), zap.String("service", string(lead.Service)))
	return nil
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &pkg.NetworkError{Op: "submit lead", Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("lead relay unavailable: status %d", resp.StatusCode)
	default:
		return backoff.Permanent(fmt.Errorf("lead relay rejected submission: status %d", resp.StatusCode))
	}
}
