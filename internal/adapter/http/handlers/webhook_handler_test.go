package handlers

import (
	"bytes"
	"errors"
	"fmt"
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

func TestWebhookHandler_HandleWebhook(t *testing.T) {
	gin.SetMode(gin.TestMode)
	payload := `{"id":"evt_1","type":"payment_intent.succeeded"}`

	newRouter := func(uc *mocks.MockIWebhookUseCase) *gin.Engine {
		h := NewWebhookHandler(uc, nil)
		r := gin.New()
		r.POST("/webhook", h.HandleWebhook)
		return r
	}

	t.Run("signature failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIWebhookUseCase(ctrl)
		r := newRouter(uc)

		uc.EXPECT().Handle(gomock.Any(), []byte(payload), "").
			Return(usecase.WebhookResult{}, fmt.Errorf("%w: no signatures found", pkg.ErrSignatureVerification))

		req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(payload))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if !strings.HasPrefix(w.Body.String(), "Webhook Error: ") {
			t.Fatalf("unexpected body: %q", w.Body.String())
		}
		if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain") {
			t.Fatalf("expected text body, got %q", w.Header().Get("Content-Type"))
		}
	})

	t.Run("handler failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIWebhookUseCase(ctrl)
		r := newRouter(uc)

		uc.EXPECT().Handle(gomock.Any(), gomock.Any(), "t=1,v1=abc").
			Return(usecase.WebhookResult{EventID: "evt_1"}, errors.New("smtp down"))

		req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(payload))
		req.Header.Set(SignatureHeader, "t=1,v1=abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})

	t.Run("acknowledged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIWebhookUseCase(ctrl)
		r := newRouter(uc)

		uc.EXPECT().Handle(gomock.Any(), []byte(payload), "t=1,v1=abc").
			Return(usecase.WebhookResult{EventID: "evt_1", Type: entities.EventPaymentIntentSucceeded}, nil)

		req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(payload))
		req.Header.Set(SignatureHeader, "t=1,v1=abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Body.String() != `{"received":true}` {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK || w.Body.String() != `{"status":"ok"}` {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
}
