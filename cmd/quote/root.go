package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"greenpro_billing/internal/config"
	"greenpro_billing/internal/domain/pricing"
	"greenpro_billing/internal/infrastructure/cache"
	"greenpro_billing/internal/infrastructure/leadrelay"
	"greenpro_billing/internal/infrastructure/payments"
	"greenpro_billing/internal/session"
	"greenpro_billing/pkg/gateway"
	"greenpro_billing/pkg/logger"
)

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "quote",
	Short:         "Price a Greenpro quote, pay its deposit or book a visit",
	Long:          "Runs the quote, deposit and booking forms of the Greenpro site from a terminal against the billing API.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadClient()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		log = logger.NewOrNop(cfg.Environment)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// newSession wires a session to the billing API, the client side confirmer and the lead relay.
func newSession() (*session.Session, func(), error) {
	policy, err := pricing.NewDepositPolicy(cfg.PromoDiscountRate, cfg.DepositRate)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	var counter session.EstimateCounter
	if cfg.RedisEnabled() {
		c := cache.NewEstimateCounter(cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB))
		counter = c
		cleanup = func() { _ = c.Close() }
	}

	s := session.New(
		gateway.NewClient(cfg.APIBaseURL, cfg.HTTPRequestTimeout, log),
		payments.NewStripeConfirmer(cfg.StripePublishableKey, nil, cfg.PaymentGatewayMock, log),
		leadrelay.NewClient(cfg.LeadRelayURL, cfg.HTTPRequestTimeout, log),
		counter,
		session.WithDepositPolicy(policy),
		session.WithCurrency(cfg.DefaultCurrency),
		session.WithLogger(log),
	)
	return s, cleanup, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
