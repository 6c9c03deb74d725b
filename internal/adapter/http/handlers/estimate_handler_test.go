package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"greenpro_billing/internal/adapter/http/handlers/mocks"
	"greenpro_billing/internal/domain/entities"
	"greenpro_billing/internal/domain/pricing"
	"greenpro_billing/internal/usecase"
)

func TestEstimateHandler_CreateEstimate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/estimates", h.CreateEstimate)

		req := httptest.NewRequest(http.MethodPost, "/estimates", bytes.NewBufferString(`{"area":{}}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("deposit out of range", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/estimates", h.CreateEstimate)

		uc.EXPECT().Calculate(gomock.Any(), entities.ServiceName(""), "1e17", "").Return(usecase.EstimateQuote{}, pricing.ErrAmountOutOfRange)

		req := httptest.NewRequest(http.MethodPost, "/estimates", bytes.NewBufferString(`{"area":"1e17"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest || strings.TrimSpace(w.Body.String()) != `{"error":"Invalid amount"}` {
			t.Fatalf("expected invalid amount, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/estimates", h.CreateEstimate)

		est := pricing.ComputeEstimate(entities.ServiceInteriorDemolition, decimal.NewFromInt(1000), 3)
		dep := pricing.ComputeDeposit(est)
		uc.EXPECT().Calculate(gomock.Any(), entities.ServiceInteriorDemolition, "1000", "3").Return(usecase.EstimateQuote{
			Estimate:     est,
			Deposit:      dep,
			DepositMinor: 140125,
			Currency:     "cad",
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/estimates", bytes.NewBufferString(`{"service":"Interior Demolition","area":1000,"rooms":"3"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["total_estimate"] != "2950.00" || body["deposit_amount"] != "1401.25" || body["deposit_amount_minor"] != float64(140125) {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestEstimateHandler_ListServices(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIEstimateUseCase(ctrl)
	h := NewEstimateHandler(uc)

	r := gin.New()
	r.GET("/services", h.ListServices)

	uc.EXPECT().ListServices(gomock.Any()).Return(entities.ServiceCatalog())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/services", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Services []map[string]string `json:"services"`
		RoomFee  string              `json:"room_fee"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(body.Services) != 4 || body.RoomFee != "50.00" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
