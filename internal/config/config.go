package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	WayForPay WayForPayConfig
	Telegram  TelegramConfig
	Cron      CronConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	SiteURL     string // public site URL, used for return/callback links
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// WayForPayConfig holds the merchant credentials for the payment gateway.
// MerchantAccount and SecretKey sign every outbound request and verify every
// callback, so the service refuses to start without them.
type WayForPayConfig struct {
	MerchantAccount string
	SecretKey       string
	APIURL          string
	ReturnPath      string // appended to SiteURL for the hosted-checkout return
	CallbackPath    string // appended to SiteURL for the service (callback) URL
}

type TelegramConfig struct {
	WebhookURL string // order notification webhook, optional
}

type CronConfig struct {
	Secret string // bearer token guarding the cleanup endpoint, optional
}

// Load reads config from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Funpark API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			SiteURL:     getEnv("SITE_URL", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "funpark"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		WayForPay: WayForPayConfig{
			MerchantAccount: getEnv("MERCHANT_ACCOUNT", ""),
			SecretKey:       getEnv("MERCHANT_SECRET_KEY", ""),
			APIURL:          getEnv("WAYFORPAY_API_URL", "https://secure.wayforpay.com"),
			ReturnPath:      getEnv("WAYFORPAY_RETURN_PATH", "/confirmation"),
			CallbackPath:    getEnv("WAYFORPAY_CALLBACK_PATH", "/api/v1/payments/callback"),
		},
		Telegram: TelegramConfig{
			WebhookURL: getEnv("TELEGRAM_WEBHOOK_URL", ""),
		},
		Cron: CronConfig{
			Secret: getEnv("CRON_SECRET", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations the service cannot safely run with.
func (c *Config) Validate() error {
	// The gateway rejects unsigned requests, so starting without credentials
	// would only fail later and noisier. Fail fast here.
	if c.WayForPay.MerchantAccount == "" {
		return fmt.Errorf("MERCHANT_ACCOUNT must be set")
	}
	if c.WayForPay.SecretKey == "" {
		return fmt.Errorf("MERCHANT_SECRET_KEY must be set")
	}

	if c.App.Environment == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.Cron.Secret == "" {
			fmt.Println("WARNING: CRON_SECRET not set - cleanup endpoint is unprotected")
		}
	}

	return nil
}

// MerchantDomainName derives the gateway's merchantDomainName field from the
// site URL (scheme stripped, as the gateway expects).
func (c *Config) MerchantDomainName() string {
	domain := c.App.SiteURL
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	return strings.TrimSuffix(domain, "/")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
