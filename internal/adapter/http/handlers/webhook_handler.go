package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	response "greenpro_billing/internal/adapter/http/dto/response"
	"greenpro_billing/internal/usecase"
	"greenpro_billing/pkg"
)

// SignatureHeader carries the processor's webhook signature.
const SignatureHeader = "Stripe-Signature"

type WebhookHandler struct {
	usecase usecase.IWebhookUseCase
	logger  *zap.Logger
}

func NewWebhookHandler(uc usecase.IWebhookUseCase, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{usecase: uc, logger: logger}
}

// HandleWebhook godoc
// @Summary      Receive payment processor events
// @Description  The raw body is verified against the Stripe-Signature header before it is trusted.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature  header    string  true  "Webhook signature"
// @Success      200               {object}  response.WebhookAckResponse
// @Failure      400               {string}  string  "Webhook Error: <message>"
// @Router       /webhook [post]
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "Webhook Error: %s", err.Error())
		return
	}

	res, err := h.usecase.Handle(c.Request.Context(), payload, c.GetHeader(SignatureHeader))
	if err != nil {
		if errors.Is(err, pkg.ErrSignatureVerification) {
			c.String(http.StatusBadRequest, "Webhook Error: %s", err.Error())
			return
		}
		h.logger.Error("[webhook][handler] event handling failed",
			zap.String("event_id", res.EventID), zap.String("type", string(res.Type)), zap.Error(err))
		appErr := pkg.NewDomainError("WEBHOOK_HANDLER_FAILED", "Webhook handling failed", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	h.logger.Info("[webhook][handler] event acknowledged",
		zap.String("event_id", res.EventID), zap.String("type", string(res.Type)),
		zap.Bool("duplicate", res.Duplicate), zap.Bool("ignored", res.Ignored))
	c.JSON(http.StatusOK, response.WebhookAckResponse{Received: true})
}
