package routes

import (
	"github.com/gin-gonic/gin"

	"greenpro_billing/internal/adapter/http/handlers"
	"greenpro_billing/internal/adapter/http/middleware"
)

const (
	PathHealth              = "/health"
	PathServices            = "/services"
	PathEstimates           = "/estimates"
	PathCreatePaymentIntent = "/create-payment-intent"
	PathPaymentIntent       = "/payment-intent/:id"
	PathWebhook             = "/webhook"
)

func addBillingRoutes(rg *gin.RouterGroup, h Handlers, limiter *middleware.IPRateLimiter) {
	rg.GET(PathHealth, handlers.Health)

	rg.GET(PathServices, h.Estimate.ListServices)
	rg.POST(PathEstimates, h.Estimate.CreateEstimate)

	rg.POST(PathCreatePaymentIntent, limiter.RateLimit(), h.PaymentIntent.CreatePaymentIntent)
	rg.GET(PathPaymentIntent, h.PaymentIntent.GetPaymentIntent)

	rg.POST(PathWebhook, h.Webhook.HandleWebhook)
}
