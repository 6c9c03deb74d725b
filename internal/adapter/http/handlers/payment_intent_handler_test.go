package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"greenpro_billing/internal/adapter/http/handlers/mocks"
	"greenpro_billing/internal/domain/entities"
	"greenpro_billing/internal/usecase"
	"greenpro_billing/pkg"
)

func newPaymentIntentRouter(uc *mocks.MockIPaymentIntentUseCase) *gin.Engine {
	h := NewPaymentIntentHandler(uc, nil)
	r := gin.New()
	r.POST("/create-payment-intent", h.CreatePaymentIntent)
	r.GET("/payment-intent/:id", h.GetPaymentIntent)
	return r
}

func TestPaymentIntentHandler_CreatePaymentIntent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("malformed body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentIntentUseCase(ctrl)
		r := newPaymentIntentRouter(uc)

		req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentIntentUseCase(ctrl)
		r := newPaymentIntentRouter(uc)

		req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", bytes.NewBufferString(`{"currency":"cad"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest || strings.TrimSpace(w.Body.String()) != `{"error":"Invalid amount"}` {
			t.Fatalf("expected invalid amount, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("invalid amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentIntentUseCase(ctrl)
		r := newPaymentIntentRouter(uc)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, req entities.PaymentIntentRequest) (entities.PaymentIntentRecord, error) {
			if req.Amount != 49 {
				t.Fatalf("unexpected amount %d", req.Amount)
			}
			return entities.PaymentIntentRecord{}, pkg.ErrInvalidAmount
		})

		req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", bytes.NewBufferString(`{"amount":49}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 1 || body["error"] != "Invalid amount" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("upstream error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentIntentUseCase(ctrl)
		r := newPaymentIntentRouter(uc)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.PaymentIntentRecord{},
			&pkg.UpstreamPaymentError{Message: "Invalid API Key provided", Code: "api_key_invalid", HTTPStatus: 401})

		req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", bytes.NewBufferString(`{"amount":5000}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["error"] != "Invalid API Key provided" || body["message"] != "Payment processing unavailable" || body["code"] != "api_key_invalid" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("network error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentIntentUseCase(ctrl)
		r := newPaymentIntentRouter(uc)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.PaymentIntentRecord{}, &pkg.NetworkError{Op: "create", Err: errors.New("eof")})

		req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", bytes.NewBufferString(`{"amount":5000}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if strings.Contains(w.Body.String(), "eof") {
			t.Fatalf("internal error detail leaked: %s", w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentIntentUseCase(ctrl)
		r := newPaymentIntentRouter(uc)

		uc.EXPECT().Create(gomock.Any(), entities.PaymentIntentRequest{
			Amount:         140125,
			Currency:       "cad",
			ReceiptEmail:   "jane@example.com",
			Description:    "Deposit for Interior Demolition",
			IdempotencyKey: "key-1",
		}).Return(entities.PaymentIntentRecord{ID: "pi_1", ClientSecret: "pi_1_secret_x"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/create-payment-intent",
			bytes.NewBufferString(`{"amount":140125,"currency":"cad","customer_email":"jane@example.com","description":"Deposit for Interior Demolition"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["clientSecret"] != "pi_1_secret_x" || body["paymentIntentId"] != "pi_1" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestPaymentIntentHandler_GetPaymentIntent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentIntentUseCase(ctrl)
		r := newPaymentIntentRouter(uc)

		uc.EXPECT().GetByID(gomock.Any(), "pi_missing").Return(entities.PaymentIntentRecord{}, usecase.ErrPaymentIntentNotFound)

		req := httptest.NewRequest(http.MethodGet, "/payment-intent/pi_missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success without secret", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIPaymentIntentUseCase(ctrl)
		r := newPaymentIntentRouter(uc)

		uc.EXPECT().GetByID(gomock.Any(), "pi_1").Return(entities.PaymentIntentRecord{
			ID: "pi_1", ClientSecret: "pi_1_secret_x", Amount: 140125, Currency: "cad", Status: entities.PaymentIntentSucceeded,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/payment-intent/pi_1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if strings.Contains(w.Body.String(), "secret") {
			t.Fatalf("client secret leaked: %s", w.Body.String())
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["status"] != "succeeded" || body["amount"] != float64(140125) {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}
