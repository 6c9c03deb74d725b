package routes

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "greenpro_billing/docs"
	"greenpro_billing/internal/adapter/http/handlers"
	"greenpro_billing/internal/adapter/http/middleware"
	"greenpro_billing/internal/adapter/persistence/repository"
	"greenpro_billing/internal/config"
	"greenpro_billing/internal/domain/pricing"
	"greenpro_billing/internal/infrastructure/cache"
	"greenpro_billing/internal/infrastructure/database"
	"greenpro_billing/internal/infrastructure/notify"
	"greenpro_billing/internal/infrastructure/payments"
	"greenpro_billing/internal/usecase"
	"greenpro_billing/internal/usecase/interfaces"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Estimate      *handlers.EstimateHandler
	PaymentIntent *handlers.PaymentIntentHandler
	Webhook       *handlers.WebhookHandler
}

// Run wires the service from cfg and serves it until the listener fails.
func Run(cfg *config.Config, logger *zap.Logger) error {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	h, cleanup, err := BuildHandlers(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	router := NewRouter(cfg, h, logger)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTPRequestTimeout,
	}
	logger.Info("[http] listening", zap.Int("port", cfg.Port), zap.String("env", cfg.Environment))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to startup the application: %w", err)
	}
	return nil
}

// NewRouter mounts every route both at the root and under /api, the two paths the
// site has been deployed with.
func NewRouter(cfg *config.Config, h Handlers, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, cfg, logger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitPerMinute, logger)
	addBillingRoutes(&router.RouterGroup, h, limiter)
	addBillingRoutes(router.Group("/api"), h, limiter)
	return router
}

func setMiddlewares(router *gin.Engine, cfg *config.Config, logger *zap.Logger) {
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(cfg.CORSOrigins))
}

// BuildHandlers creates the use cases and their infrastructure. The returned cleanup
// closes whatever connections were opened.
func BuildHandlers(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Handlers, func(), error) {
	cleanup := func() {}

	policy, err := pricing.NewDepositPolicy(cfg.PromoDiscountRate, cfg.DepositRate)
	if err != nil {
		return Handlers{}, cleanup, err
	}

	gateway, err := payments.NewStripeGateway(payments.StripeGatewayConfig{
		SecretKey:     cfg.StripeSecretKey,
		WebhookSecret: cfg.StripeWebhookSecret,
		MockMode:      cfg.PaymentGatewayMock,
	}, logger)
	if err != nil {
		return Handlers{}, cleanup, err
	}

	var (
		events  interfaces.IWebhookEventRepository
		intents interfaces.IPaymentIntentRepository
	)
	if cfg.DynamoDBEnabled {
		ddb, err := database.ConnectDynamoDB(ctx, database.DynamoDBConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Endpoint:        cfg.DynamoDBEndpoint,
		})
		if err != nil {
			return Handlers{}, cleanup, fmt.Errorf("failed to create dynamodb client: %w", err)
		}
		events = repository.NewWebhookEventDynamoRepository(ddb, cfg.WebhookEventsTable)
		intents = repository.NewPaymentIntentDynamoRepository(ddb, cfg.PaymentIntentsTable)
	} else {
		logger.Warn("[http] DynamoDB disabled, webhook deduplication is per process")
	}

	var counter interfaces.IEstimateCounter
	if cfg.RedisEnabled() {
		c := cache.NewEstimateCounter(cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB))
		counter = c
		cleanup = func() {
			if err := c.Close(); err != nil {
				logger.Warn("[http] failed closing redis", zap.Error(err))
			}
		}
	}

	var notifier interfaces.IFulfillmentNotifier = notify.NewLogNotifier(logger)
	if cfg.SMTPEnabled() {
		smtp, err := notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.NotifyFromEmail,
			To:       cfg.NotifyToEmail,
		}, logger)
		if err != nil {
			return Handlers{}, cleanup, err
		}
		notifier = smtp
	}

	paymentIntentUseCase := usecase.NewPaymentIntentUseCase(gateway, intents, cfg.DefaultCurrency, logger)
	webhookUseCase := usecase.NewWebhookUseCase(gateway, events, intents, notifier, logger)
	estimateUseCase := usecase.NewEstimateUseCase(policy, cfg.DefaultCurrency, counter, logger)

	return Handlers{
		Estimate:      handlers.NewEstimateHandler(estimateUseCase),
		PaymentIntent: handlers.NewPaymentIntentHandler(paymentIntentUseCase, logger),
		Webhook:       handlers.NewWebhookHandler(webhookUseCase, logger),
	}, cleanup, nil
}
