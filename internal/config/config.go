package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/wichananm65/soko-storefront/internal/pricing"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr                  string
	DatabaseURL           string
	JWTSecret             string
	AMQPURL               string
	FreeDeliveryThreshold decimal.Decimal
	DeliveryFee           decimal.Decimal
	Currency              string
	PaymentTimeout        time.Duration
	PaymentConfirmDelay   time.Duration
	DeclinePhones         []string
	SettingsFile          string
	AllowResetProducts    bool
	LogLevel              slog.Level
}

// Policy builds the delivery-fee policy from the configured values.
func (c Config) Policy() pricing.Policy {
	return pricing.NewPolicy(c.FreeDeliveryThreshold, c.DeliveryFee, c.Currency)
}

// Load reads a .env file when one is present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults for unset keys.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Addr:                  ":8080",
		DatabaseURL:           getenv("DATABASE_URL"),
		JWTSecret:             getenv("JWT_SECRET"),
		AMQPURL:               getenv("AMQP_URL"),
		FreeDeliveryThreshold: pricing.DefaultFreeDeliveryThreshold,
		DeliveryFee:           pricing.DefaultDeliveryFee,
		Currency:              pricing.DefaultCurrency,
		PaymentTimeout:        60 * time.Second,
		PaymentConfirmDelay:   3 * time.Second,
		SettingsFile:          getenv("SETTINGS_FILE"),
		AllowResetProducts:    getenv("ALLOW_RESET_PRODUCTS") == "1",
		LogLevel:              slog.LevelInfo,
	}
	if v := getenv("SOKO_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := getenv("CURRENCY"); v != "" {
		cfg.Currency = v
	}

	var err error
	if cfg.FreeDeliveryThreshold, err = decimalVar(getenv, "FREE_DELIVERY_THRESHOLD", cfg.FreeDeliveryThreshold); err != nil {
		return Config{}, err
	}
	if cfg.DeliveryFee, err = decimalVar(getenv, "DELIVERY_FEE", cfg.DeliveryFee); err != nil {
		return Config{}, err
	}
	if cfg.PaymentTimeout, err = durationVar(getenv, "PAYMENT_TIMEOUT", cfg.PaymentTimeout); err != nil {
		return Config{}, err
	}
	if cfg.PaymentConfirmDelay, err = durationVar(getenv, "PAYMENT_CONFIRM_DELAY", cfg.PaymentConfirmDelay); err != nil {
		return Config{}, err
	}
	if v := getenv("PAYMENT_DECLINE_PHONES"); v != "" {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.DeclinePhones = append(cfg.DeclinePhones, p)
			}
		}
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}
	return cfg, nil
}

func decimalVar(getenv func(string) string, key string, def decimal.Decimal) (decimal.Decimal, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", key, err)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}

// durationVar accepts Go durations ("90s") or a bare number of seconds.
func durationVar(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
