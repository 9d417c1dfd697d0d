package routes

import (
	"fmt"
	"net/http"

	_ "checkout_service/docs" // swag generated
	"checkout_service/internal/adapter/http/handlers"
	"checkout_service/internal/adapter/http/middleware"
	"checkout_service/internal/adapter/persistence/repository"
	"checkout_service/internal/config"
	"checkout_service/internal/domain/catalog"
	"checkout_service/internal/infrastructure/database"
	"checkout_service/internal/infrastructure/messaging"
	"checkout_service/internal/infrastructure/metrics"
	"checkout_service/internal/infrastructure/payments"
	"checkout_service/internal/usecase"
	"checkout_service/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Public checkout endpoints are limited per client IP.
const (
	publicRequestsPerMinute = 30
	publicRequestsBurst     = 10
)

// Handlers groups every HTTP handler served by the router.
type Handlers struct {
	Checkout *handlers.CheckoutHandler
	Webhook  *handlers.WebhookHandler
	Return   *handlers.ReturnHandler
	Order    *handlers.OrderHandler
}

// Run wires the application and serves HTTP. It returns only when the
// server stops.
func Run(cfg *config.Config, awsCfg aws.Config) error {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	h, err := buildHandlers(cfg, awsCfg)
	if err != nil {
		return err
	}
	router := setupRouter(cfg, h)

	logger.Log.Info("checkout service listening",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
		zap.Bool("gateway_mock", cfg.GatewayMock),
	)
	return router.Run(":" + cfg.Port)
}

func buildHandlers(cfg *config.Config, awsCfg aws.Config) (Handlers, error) {
	cat, err := catalog.New(catalog.ApplyURLOverrides(catalog.DefaultProducts(), cfg.URLOverrides), cfg.DefaultProduct)
	if err != nil {
		return Handlers{}, fmt.Errorf("build catalog: %w", err)
	}

	ddb := database.ConnectDynamoDB(awsCfg)
	orderRepo := repository.NewOrderDynamoRepository(ddb, cfg.Tables.Orders)
	paymentRepo := repository.NewPaymentRecordDynamoRepository(ddb, cfg.Tables.Payments)

	gateway := payments.NewWayForPayGateway(cfg.Merchant.APIURL, cfg.GatewayTimeout, cfg.GatewayMock)
	events := messaging.NewPaymentEventPublisher(awsCfg, cfg.PaymentEventsTopicARN)
	alerts := metrics.NewCloudWatchAlerts(awsCfg, cfg.CloudWatchNamespace, cfg.CloudWatchEnabled)

	invoiceUseCase := usecase.NewInvoiceUseCase(orderRepo, gateway, alerts, cat, usecase.MerchantSettings{
		Account:    cfg.Merchant.Account,
		Domain:     cfg.Merchant.Domain,
		SecretKey:  cfg.Merchant.SecretKey,
		AppBaseURL: cfg.AppBaseURL,
	})
	webhookUseCase := usecase.NewWebhookUseCase(orderRepo, paymentRepo, events, alerts, cfg.Merchant.SecretKey)
	returnUseCase := usecase.NewReturnUseCase(orderRepo, cat, usecase.WithRefreshAfter(cfg.ReturnRefresh))
	orderUseCase := usecase.NewOrderUseCase(orderRepo, paymentRepo)

	return Handlers{
		Checkout: handlers.NewCheckoutHandler(invoiceUseCase, cat),
		Webhook:  handlers.NewWebhookHandler(webhookUseCase),
		Return:   handlers.NewReturnHandler(returnUseCase),
		Order:    handlers.NewOrderHandler(orderUseCase),
	}, nil
}

func setupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(logger.RequestLogger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error(c.Request.Context(), "recovered from panic", fmt.Errorf("%v", recovered))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addOrderRoutes(v1, h.Order)

	limiter := middleware.NewPerMinuteRateLimiter(publicRequestsPerMinute, publicRequestsBurst)
	api := router.Group("/api")
	addCheckoutRoutes(api, h.Checkout, middleware.PublicCORS(cfg.CORSAllowOrigins), limiter.Middleware())
	addWebhookRoutes(api, h.Webhook)

	addReturnRoutes(router, h.Return)
	return router
}
