package leadrelay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"greenpro_billing/internal/domain/entities"
	"greenpro_billing/internal/domain/pricing"
)

func paidLead() entities.LeadSubmission {
	est := pricing.ComputeEstimate(entities.ServiceInteriorDemolition, decimal.NewFromInt(1000), 3)
	dep := pricing.ComputeDeposit(est)
	q := entities.QuoteRequest{Name: "Jane Doe", Phone: "+16045550199", Email: "jane@example.com", Service: entities.ServiceInteriorDemolition, Area: "1000", Rooms: "3"}
	lead := entities.LeadFromQuote(q, &est, &dep, &entities.PaymentReceipt{PaymentIntentID: "pi_1", AmountMinor: 140125, Currency: "cad"})
	lead.SubmittedAt = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	lead.EstimateCount = 42
	return lead
}

func TestBuildPayload(t *testing.T) {
	t.Run("paid quote", func(t *testing.T) {
		p := BuildPayload(paidLead())
		if p.Subject != "quote - Interior Demolition - Greenpro Environmental Ltd." || p.ReplyTo != "jane@example.com" {
			t.Fatalf("unexpected envelope: %+v", p)
		}
		if p.Estimate != "2950.00" || p.DiscountedEstimate != "2802.50" {
			t.Fatalf("unexpected estimate fields: %+v", p)
		}
		if p.DepositPaid != "Yes" || p.DepositAmount != "1401.25" || p.PaymentID != "pi_1" {
			t.Fatalf("unexpected payment fields: %+v", p)
		}
		if p.Timestamp != "2026-03-10T12:00:00Z" || p.EstimateCount != "42" {
			t.Fatalf("unexpected metadata: %+v", p)
		}
	})

	t.Run("booking without payment", func(t *testing.T) {
		lead := entities.LeadFromBooking(entities.BookingRequest{
			Name: "Sam", Email: "sam@example.com", Service: entities.ServiceSiteCleanUp,
			Date: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), Time: "09:00",
		})
		p := BuildPayload(lead)
		if p.DepositPaid != "No" || p.DepositAmount != "0" || p.PaymentID != "None" || p.Estimate != "" {
			t.Fatalf("unexpected payment fields: %+v", p)
		}
		if p.Date != "2026-04-01" || p.Time != "09:00" || p.FormType != "booking" {
			t.Fatalf("unexpected booking fields: %+v", p)
		}
	})
}

func TestClient_Submit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var got map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		if err := NewClient(srv.URL, time.Second, nil).Submit(context.Background(), paidLead()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got["_subject"] != "quote - Interior Demolition - Greenpro Environmental Ltd." || got["depositPaid"] != "Yes" {
			t.Fatalf("unexpected body: %v", got)
		}
	})

	t.Run("retries server errors", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		if err := NewClient(srv.URL, time.Second, nil).Submit(context.Background(), paidLead()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls.Load() != 3 {
			t.Fatalf("expected 3 attempts, got %d", calls.Load())
		}
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer srv.Close()

		if err := NewClient(srv.URL, time.Second, nil).Submit(context.Background(), paidLead()); err == nil {
			t.Fatalf("expected error")
		}
		if calls.Load() != 1 {
			t.Fatalf("expected a single attempt, got %d", calls.Load())
		}
	})

	t.Run("not configured", func(t *testing.T) {
		if err := NewClient("", time.Second, nil).Submit(context.Background(), paidLead()); !errors.Is(err, ErrRelayNotConfigured) {
			t.Fatalf("expected ErrRelayNotConfigured, got %v", err)
		}
	})
}
