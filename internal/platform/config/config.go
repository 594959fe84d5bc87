package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	MetricsAddr   string
	DatabaseURL   string
	JWTSigningKey string
	// TrustUserHeader enables resolving the user id from X-User-ID. Only safe
	// when the service sits behind a gateway that strips the header from
	// untrusted traffic.
	TrustUserHeader bool
	Redis           RedisConfig
}

// RedisConfig captures connection settings for the optional Redis client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RecencyTTL bounds how long the per-user last-practiced marker is retained.
var RecencyTTL = 48 * time.Hour

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first if present.
func FromEnv() Server {
	_ = godotenv.Load()

	addr := os.Getenv("PARLO_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	metricsAddr := os.Getenv("PARLO_METRICS_ADDR")
	if metricsAddr == "" {
		metricsAddr = ":9090"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:            addr,
		MetricsAddr:     metricsAddr,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSigningKey:   jwtSigningKey,
		TrustUserHeader: os.Getenv("TRUST_USER_HEADER") == "true",
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
