package main

import (
	"context"
	"time"

	_ "checkout_service/docs"
	"checkout_service/internal/adapter/http/routes"
	"checkout_service/internal/config"
	"checkout_service/internal/infrastructure/database"
	"checkout_service/internal/infrastructure/secrets"
	"checkout_service/pkg/logger"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           Checkout Service API
// @version         1.0
// @description     Checkout service: WayForPay invoices, signed webhooks and order status, backed by DynamoDB.

// @host localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.Env)
	defer func() { _ = logger.Log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	awsCfg, err := database.NewAWSConfig(ctx, cfg.AWS)
	if err != nil {
		logger.Log.Fatal("failed to load AWS config", zap.Error(err))
	}

	if cfg.Merchant.SecretKey == "" && cfg.Merchant.SecretKeyID != "" {
		if err := cfg.ResolveSecrets(ctx, secrets.NewSecretsClient(awsCfg)); err != nil {
			logger.Log.Fatal("failed to resolve secrets", zap.Error(err))
		}
	}
	if err := cfg.Validate(); err != nil {
		logger.Log.Fatal("invalid configuration", zap.Error(err))
	}

	if err := routes.Run(cfg, awsCfg); err != nil {
		logger.Log.Fatal("failed to start the application", zap.Error(err))
	}
}
