package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"greenpro_billing/internal/adapter/http/routes"
	"greenpro_billing/internal/config"
	"greenpro_billing/pkg/logger"
)

// @title           Greenpro Billing API
// @version         1.0
// @description     Deposit estimates and the payment intent gateway for Greenpro Environmental.

// @host      localhost:3001
// @BasePath  /

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	l := logger.NewOrNop(cfg.Environment)
	defer func() { _ = l.Sync() }()
	l.Info("[http] starting", zap.Any("config", cfg.Redacted()))

	if err := routes.Run(cfg, l); err != nil {
		l.Fatal("[http] server stopped", zap.Error(err))
	}
}
