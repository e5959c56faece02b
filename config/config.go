package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderYooKassa = "yookassa"
	ProviderStripe   = "stripe"
)

type Config struct {
	Port       string
	DBURL      string
	JWTSecret  string
	AppURL     string
	CORSOrigin string
	LogLevel   string
	UploadDir  string
	RedisAddr  string

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	Payment PaymentConfig
	Google  GoogleConfig
}

type PaymentConfig struct {
	Provider string
	Currency string

	// YooKassa
	ShopID        string
	SecretKey     string
	WebhookSecret string

	// Stripe
	StripeSecretKey     string
	StripeWebhookSecret string
}

type GoogleConfig struct {
	ClientID         string
	ClientSecret     string
	RedirectURL      string
	FrontendRedirect string
}

// Enabled reports whether Google sign-in routes should be registered.
func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != "" && g.RedirectURL != ""
}

// Load reads .env (if any) and the process environment. All missing
// required variables are reported in a single error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	var missing []string
	mustEnv := func(key string) string {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		DBURL:      mustEnv("DB_URL"),
		JWTSecret:  mustEnv("JWT_SECRET"),
		AppURL:     strings.TrimRight(getEnv("APP_URL", "http://localhost:3000"), "/"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		UploadDir:  getEnv("UPLOAD_DIR", "uploads"),
		RedisAddr:  getEnv("REDIS_ADDR", ""),

		Google: GoogleConfig{
			ClientID:         getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret:     getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:      getEnv("GOOGLE_REDIRECT_URL", ""),
			FrontendRedirect: getEnv("GOOGLE_FRONTEND_REDIRECT", ""),
		},
	}

	var err error
	if cfg.AccessTokenTTL, err = getDuration("ACCESS_TOKEN_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.RefreshTokenTTL, err = getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}

	cfg.Payment = PaymentConfig{
		Provider: strings.ToLower(getEnv("PAYMENT_PROVIDER", ProviderYooKassa)),
		Currency: strings.ToUpper(getEnv("PAYMENT_CURRENCY", "RUB")),
	}
	switch cfg.Payment.Provider {
	case ProviderYooKassa:
		cfg.Payment.ShopID = mustEnv("SHOP_ID")
		// PEYMENT_TOKEN is the variable name older deployments use.
		cfg.Payment.SecretKey = getEnv("PAYMENT_TOKEN", os.Getenv("PEYMENT_TOKEN"))
		if cfg.Payment.SecretKey == "" {
			missing = append(missing, "PAYMENT_TOKEN")
		}
		cfg.Payment.WebhookSecret = mustEnv("WEBHOOK_SECRET")
	case ProviderStripe:
		cfg.Payment.StripeSecretKey = mustEnv("STRIPE_SECRET_KEY")
		cfg.Payment.StripeWebhookSecret = mustEnv("STRIPE_WEBHOOK_SECRET")
	default:
		return nil, fmt.Errorf("unknown PAYMENT_PROVIDER %q", cfg.Payment.Provider)
	}

	if len(missing) > 0 {
		return nil, errors.New("missing required environment variables: " + strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
