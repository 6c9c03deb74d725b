package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	request "greenpro_billing/internal/adapter/http/dto/request"
	response "greenpro_billing/internal/adapter/http/dto/response"
	"greenpro_billing/internal/usecase"
	"greenpro_billing/pkg"
)

// IdempotencyKeyHeader lets a client retry a create without charging twice.
const IdempotencyKeyHeader = "Idempotency-Key"

const paymentUnavailableDetail = "Payment processing unavailable"

// errInvalidAmount has no code: the body is exactly {"error":"Invalid amount"}.
var errInvalidAmount = pkg.NewDomainErrorSimple("", pkg.UserMessage(pkg.ErrInvalidAmount), http.StatusBadRequest)

// PaymentIntentHandler serves the Payment Intent Gateway endpoints.
type PaymentIntentHandler struct {
	usecase usecase.IPaymentIntentUseCase
	logger  *zap.Logger
}

func NewPaymentIntentHandler(uc usecase.IPaymentIntentUseCase, logger *zap.Logger) *PaymentIntentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentIntentHandler{usecase: uc, logger: logger}
}

// CreatePaymentIntent godoc
// @Summary      Create a deposit payment intent
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                              false  "Idempotency key"
// @Param        body             body      request.CreatePaymentIntentRequest  true   "Amount in minor units"
// @Success      200              {object}  response.CreatePaymentIntentResponse
// @Failure      400              {object}  pkg.HTTPError
// @Failure      500              {object}  pkg.HTTPError
// @Router       /create-payment-intent [post]
func (h *PaymentIntentHandler) CreatePaymentIntent(c *gin.Context) {
	var payload request.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Info("[payment][handler] invalid payload", zap.Error(err))
		c.JSON(errInvalidAmount.HTTPStatus, errInvalidAmount.ToHTTPError())
		return
	}

	created, err := h.usecase.Create(c.Request.Context(), payload.ToEntity(c.GetHeader(IdempotencyKeyHeader)))
	if err != nil {
		h.logger.Warn("[payment][handler] create failed", zap.Error(err))
		appErr := mapPaymentIntentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	h.logger.Info("[payment][handler] create success", zap.String("payment_intent_id", created.ID))

	c.JSON(http.StatusOK, response.FromCreatedPaymentIntent(created))
}

// GetPaymentIntent godoc
// @Summary      Get a payment intent's status
// @Tags         payments
// @Produce      json
// @Param        id   path      string  true  "Payment intent id"
// @Success      200  {object}  response.PaymentIntentResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /payment-intent/{id} [get]
func (h *PaymentIntentHandler) GetPaymentIntent(c *gin.Context) {
	id := c.Param("id")

	rec, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Warn("[payment][handler] get failed", zap.String("payment_intent_id", id), zap.Error(err))
		appErr := mapPaymentIntentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPaymentIntentRecord(rec))
}

func mapPaymentIntentError(err error) *pkg.AppError {
	var upstream *pkg.UpstreamPaymentError
	switch {
	case errors.Is(err, pkg.ErrInvalidAmount):
		return errInvalidAmount
	case errors.Is(err, usecase.ErrInvalidPaymentIntentID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid payment intent id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentIntentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_INTENT_NOT_FOUND", "Payment intent not found", http.StatusNotFound)
	case errors.As(err, &upstream):
		code := upstream.Code
		if code == "" {
			code = "PAYMENT_PROVIDER_ERROR"
		}
		return pkg.NewDomainError(code, pkg.UserMessage(err), err, http.StatusInternalServerError).
			WithDetail(paymentUnavailableDetail)
	case errors.Is(err, usecase.ErrPaymentGatewayMissing), errors.Is(err, pkg.ErrNetwork):
		return pkg.NewDomainError("PAYMENT_PROVIDER_UNAVAILABLE", "Payment processor unreachable", err, http.StatusInternalServerError).
			WithDetail(paymentUnavailableDetail)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError).
			WithDetail(paymentUnavailableDetail)
	}
}
