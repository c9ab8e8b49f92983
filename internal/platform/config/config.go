package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures process-level configuration.
type Config struct {
	// APIAddr serves the account endpoints.
	APIAddr string
	// OpsAddr serves /healthz and /metrics.
	OpsAddr  string
	LogLevel string

	Redis    RedisConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig

	Tokens   TokenConfig
	OTP      OTPConfig
	Password PasswordConfig
}

// RedisConfig holds connection settings for the shared Redis instance.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig holds the user directory database settings. An empty URL
// selects the in-memory directory store.
type PostgresConfig struct {
	URL string
}

// KafkaConfig holds the signed-in event stream settings. Empty brokers
// select the in-memory publisher.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// TokenConfig holds signing and lifetime settings for issued tokens.
type TokenConfig struct {
	SigningKey string
	Issuer     string
	Lifetime   time.Duration
}

// OTPConfig bounds one-time passwords.
type OTPConfig struct {
	Lifetime    time.Duration
	MaxAttempts int
}

// PasswordConfig bounds user-chosen passwords.
type PasswordConfig struct {
	MinLength int
}

// FromEnv builds the config from environment variables so main stays lean.
func FromEnv() Config {
	signingKey := os.Getenv("WORLDSMITH_TOKEN_SIGNING_KEY")
	if signingKey == "" {
		// Development default; override in production.
		signingKey = "dev-secret-key-change-in-production"
	}

	var brokers []string
	if raw := os.Getenv("WORLDSMITH_KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	return Config{
		APIAddr:  envOr("WORLDSMITH_HTTP_ADDR", ":8080"),
		OpsAddr:  envOr("WORLDSMITH_OPS_ADDR", ":8081"),
		LogLevel: envOr("WORLDSMITH_LOG_LEVEL", "info"),
		Redis: RedisConfig{
			URL:          os.Getenv("WORLDSMITH_REDIS_URL"),
			PoolSize:     envInt("WORLDSMITH_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("WORLDSMITH_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("WORLDSMITH_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("WORLDSMITH_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("WORLDSMITH_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			URL: os.Getenv("WORLDSMITH_POSTGRES_URL"),
		},
		Kafka: KafkaConfig{
			Brokers: brokers,
			Topic:   envOr("WORLDSMITH_KAFKA_TOPIC", "worldsmith.account.signed-in"),
		},
		Tokens: TokenConfig{
			SigningKey: signingKey,
			Issuer:     envOr("WORLDSMITH_TOKEN_ISSUER", "worldsmith"),
			Lifetime:   envDuration("WORLDSMITH_TOKEN_LIFETIME", time.Hour),
		},
		OTP: OTPConfig{
			Lifetime:    envDuration("WORLDSMITH_OTP_LIFETIME", 10*time.Minute),
			MaxAttempts: envInt("WORLDSMITH_OTP_MAX_ATTEMPTS", 5),
		},
		Password: PasswordConfig{
			MinLength: envInt("WORLDSMITH_PASSWORD_MIN_LENGTH", 8),
		},
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
