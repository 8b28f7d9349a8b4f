package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joanie-store/storefront/database"
	awspkg "github.com/joanie-store/storefront/pkg/aws"

	"github.com/joho/godotenv"
)

// Config holds everything main needs to wire the storefront API.
type Config struct {
	Port string
	Env  string

	Postgres database.PostgresConfig

	// RedisURL enables the product cache when set.
	RedisURL        string
	ProductCacheTTL time.Duration

	JWTSecret    string
	JWTTTL       time.Duration
	SecureCookie bool

	AllowedOrigins []string
	AuthRateLimit  float64
	AuthRateBurst  int

	AWS                awspkg.Settings
	UseSecrets         bool
	SNSTopicARN        string
	CloudWatchEnabled  bool
	CloudWatchLogGroup string
	MetricsNamespace   string
}

// secretReader is the part of the Secrets Manager client LoadConfig needs.
type secretReader interface {
	GetJSON(ctx context.Context, name string, dst interface{}) error
}

const (
	dbSecretName  = "storefront/DB_CREDENTIALS"
	jwtSecretName = "storefront/JWT_SECRET"
)

// LoadConfig reads .env (when present) and the environment. With
// AWS_USE_SECRETS=true, database credentials and the JWT secret come from
// Secrets Manager instead.
func LoadConfig(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := configFromEnv()
	if err != nil {
		return nil, err
	}

	if cfg.UseSecrets {
		awsCfg, err := awspkg.LoadAWSConfig(ctx, cfg.AWS)
		if err != nil {
			return nil, err
		}
		applySecrets(ctx, cfg, awspkg.NewSecretsClient(awsCfg))
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configFromEnv() (*Config, error) {
	var err error
	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("APP_ENV", "development"),
		Postgres: database.PostgresConfig{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Name:     os.Getenv("POSTGRES_DB"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		RedisURL:           os.Getenv("REDIS_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AWS:                awspkg.Settings{Region: os.Getenv("AWS_REGION"), Endpoint: os.Getenv("AWS_ENDPOINT")},
		SNSTopicARN:        os.Getenv("STOREFRONT_SNS_TOPIC_ARN"),
		CloudWatchLogGroup: getEnv("CLOUDWATCH_LOG_GROUP", "/storefront/api"),
		MetricsNamespace:   getEnv("CLOUDWATCH_NAMESPACE", "Storefront"),
		AllowedOrigins:     splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	if cfg.Postgres.MaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "0")); err != nil {
		return nil, fmt.Errorf("invalid POSTGRES_MAX_OPEN_CONNS: %w", err)
	}
	if cfg.ProductCacheTTL, err = time.ParseDuration(getEnv("PRODUCT_CACHE_TTL", "10m")); err != nil {
		return nil, fmt.Errorf("invalid PRODUCT_CACHE_TTL: %w", err)
	}
	if cfg.JWTTTL, err = time.ParseDuration(getEnv("JWT_TTL", "720h")); err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	if cfg.AuthRateLimit, err = strconv.ParseFloat(getEnv("AUTH_RATE_LIMIT", "1"), 64); err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_LIMIT: %w", err)
	}
	if cfg.AuthRateBurst, err = strconv.Atoi(getEnv("AUTH_RATE_BURST", "5")); err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_BURST: %w", err)
	}
	cfg.UseSecrets = os.Getenv("AWS_USE_SECRETS") == "true"
	cfg.CloudWatchEnabled = os.Getenv("CLOUDWATCH_ENABLED") == "true"
	cfg.SecureCookie = getEnv("SECURE_COOKIE", strconv.FormatBool(cfg.Env == "production")) == "true"
	return cfg, nil
}

// applySecrets overrides credentials with whatever the secrets hold. Missing
// secrets leave the environment values in place.
func applySecrets(ctx context.Context, cfg *Config, sm secretReader) {
	var db map[string]string
	if err := sm.GetJSON(ctx, dbSecretName, &db); err == nil {
		override(&cfg.Postgres.User, db["POSTGRES_USER"])
		override(&cfg.Postgres.Password, db["POSTGRES_PASSWORD"])
		override(&cfg.Postgres.Name, db["POSTGRES_DB"])
		override(&cfg.Postgres.Host, db["POSTGRES_HOST"])
		override(&cfg.Postgres.Port, db["POSTGRES_PORT"])
	}

	var jwt map[string]string
	if err := sm.GetJSON(ctx, jwtSecretName, &jwt); err == nil {
		override(&cfg.JWTSecret, jwt["JWT_SECRET"])
	}
}

func (c *Config) validate() error {
	p := c.Postgres
	if p.User == "" || p.Password == "" || p.Name == "" || p.Host == "" {
		return errors.New("database config incomplete")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
