package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"checkout_service/internal/domain/catalog"
	"checkout_service/internal/domain/entities"
)

// ErrConfigMissing is returned when a required setting is absent.
var ErrConfigMissing = errors.New("required configuration missing")

const (
	defaultPort            = "8080"
	defaultWayForPayAPIURL = "https://api.wayforpay.com/api"
	defaultGatewayTimeout  = 15 * time.Second
	defaultRefreshSeconds  = 3
)

// Merchant holds the gateway identity and secret.
type Merchant struct {
	Account     string
	Domain      string
	SecretKey   string
	SecretKeyID string // Secrets Manager id used when SecretKey is empty
	APIURL      string
}

type AWS struct {
	Region           string
	AccessKeyID      string
	SecretAccessKey  string
	Endpoint         string
	DynamoDBEndpoint string
}

type Tables struct {
	Orders   string
	Payments string
}

type Config struct {
	Env        string
	Port       string
	AppBaseURL string

	Merchant       Merchant
	GatewayTimeout time.Duration
	GatewayMock    bool

	DefaultProduct entities.ProductCode
	URLOverrides   catalog.URLOverrides
	ReturnRefresh  time.Duration

	AWS                   AWS
	Tables                Tables
	PaymentEventsTopicARN string
	CloudWatchEnabled     bool
	CloudWatchNamespace   string

	CORSAllowOrigins []string
}

// Load reads the process environment. It does not validate; call Validate
// once secrets have been resolved.
func Load() *Config {
	return &Config{
		Env:        getenvDefault("APP_ENV", "development"),
		Port:       getenvDefault("PORT", defaultPort),
		AppBaseURL: strings.TrimRight(strings.TrimSpace(os.Getenv("APP_BASE_URL")), "/"),
		Merchant: Merchant{
			Account:     strings.TrimSpace(os.Getenv("WFP_MERCHANT_ACCOUNT")),
			Domain:      strings.TrimSpace(os.Getenv("WFP_MERCHANT_DOMAIN")),
			SecretKey:   os.Getenv("WFP_SECRET_KEY"),
			SecretKeyID: strings.TrimSpace(os.Getenv("WFP_SECRET_KEY_SECRET_ID")),
			APIURL:      getenvDefault("WFP_API_URL", defaultWayForPayAPIURL),
		},
		GatewayTimeout: getenvDuration("GATEWAY_TIMEOUT", defaultGatewayTimeout),
		GatewayMock:    getenvBool("PAYMENT_GATEWAY_MOCK"),
		DefaultProduct: entities.ProductCode(strings.ToLower(getenvDefault("DEFAULT_PRODUCT", string(entities.ProductShort)))),
		URLOverrides: catalog.URLOverrides{
			entities.ProductShort: {
				ApprovedURL: os.Getenv("SHORT_APPROVED_URL"),
				DeclinedURL: os.Getenv("SHORT_DECLINED_URL"),
			},
			entities.ProductIrem: {
				ApprovedURL: os.Getenv("IREM_APPROVED_URL"),
				DeclinedURL: os.Getenv("IREM_DECLINED_URL"),
			},
		},
		ReturnRefresh: time.Duration(getenvInt("RETURN_REFRESH_SECONDS", defaultRefreshSeconds)) * time.Second,
		AWS: AWS{
			Region:           getenvDefault("AWS_REGION", "us-east-1"),
			AccessKeyID:      os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey:  os.Getenv("AWS_SECRET_ACCESS_KEY"),
			Endpoint:         os.Getenv("AWS_ENDPOINT"),
			DynamoDBEndpoint: os.Getenv("DYNAMODB_ENDPOINT"),
		},
		Tables: Tables{
			Orders:   getenvDefault("ORDERS_TABLE", "orders"),
			Payments: getenvDefault("PAYMENTS_TABLE", "payments"),
		},
		PaymentEventsTopicARN: os.Getenv("PAYMENT_EVENTS_TOPIC_ARN"),
		CloudWatchEnabled:     getenvBool("CLOUDWATCH_ENABLED"),
		CloudWatchNamespace:   getenvDefault("CLOUDWATCH_NAMESPACE", "Checkout"),
		CORSAllowOrigins:      splitList(getenvDefault("CORS_ALLOW_ORIGINS", "*")),
	}
}

// SecretGetter fetches a secret string by id (AWS Secrets Manager).
type SecretGetter interface {
	GetSecret(ctx context.Context, id string) (string, error)
}

// ResolveSecrets fills Merchant.SecretKey from the secret store when only
// its id is configured.
func (c *Config) ResolveSecrets(ctx context.Context, secrets SecretGetter) error {
	if c.Merchant.SecretKey != "" || c.Merchant.SecretKeyID == "" {
		return nil
	}
	if secrets == nil {
		return fmt.Errorf("%w: WFP_SECRET_KEY_SECRET_ID set but no secret store available", ErrConfigMissing)
	}
	v, err := secrets.GetSecret(ctx, c.Merchant.SecretKeyID)
	if err != nil {
		return fmt.Errorf("resolve WFP_SECRET_KEY: %w", err)
	}
	c.Merchant.SecretKey = strings.TrimSpace(v)
	return nil
}

// Validate lists every missing required key at once.
func (c *Config) Validate() error {
	var missing []string
	if c.Merchant.Account == "" {
		missing = append(missing, "WFP_MERCHANT_ACCOUNT")
	}
	if c.Merchant.SecretKey == "" {
		missing = append(missing, "WFP_SECRET_KEY")
	}
	if c.Merchant.Domain == "" {
		missing = append(missing, "WFP_MERCHANT_DOMAIN")
	}
	if c.AppBaseURL == "" {
		missing = append(missing, "APP_BASE_URL")
	}
	if c.Merchant.APIURL == "" {
		missing = append(missing, "WFP_API_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigMissing, strings.Join(missing, ","))
	}
	if c.GatewayTimeout <= 0 {
		return fmt.Errorf("GATEWAY_TIMEOUT must be positive, got %s", c.GatewayTimeout)
	}
	if c.ReturnRefresh <= 0 {
		return fmt.Errorf("RETURN_REFRESH_SECONDS must be positive, got %s", c.ReturnRefresh)
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// getenvDuration accepts Go durations ("15s") or plain seconds ("15").
func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
