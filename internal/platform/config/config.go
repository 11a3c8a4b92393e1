// Package config builds runtime configuration from the environment so main
// stays lean.
package config

import (
	"os"
	"strconv"
	"time"
)

// SnapshotCacheTTL bounds how long a cached registry snapshot may serve
// reads. Admin writes invalidate affected wallets before the TTL expires.
var SnapshotCacheTTL = 30 * time.Second

// Server captures the full service configuration.
type Server struct {
	Addr string

	// NodeURL is the chain-node base URL. Empty selects the in-process
	// memory client for local development.
	NodeURL string

	// DevAdminWallet owns the in-process registry when NodeURL is empty.
	// Against a real node the owner comes from the contract itself.
	DevAdminWallet string

	// Single eligible values for the compliance checks.
	EligibleNationality  string
	EligibleTaxResidency string

	// PostgresDSN selects the postgres stores; empty falls back to memory.
	PostgresDSN string

	Redis Redis

	// KafkaBrokers enables the kafka audit sink; empty keeps audit in memory.
	KafkaBrokers string
	AuditTopic   string

	SnapshotCacheTTL time.Duration
	RequestTimeout   time.Duration
}

// Redis captures redis connection settings. An empty URL disables redis.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	return Server{
		Addr:                 envOr("BRICKGATE_ADDR", ":8080"),
		NodeURL:              os.Getenv("BRICKGATE_NODE_URL"),
		DevAdminWallet:       envOr("BRICKGATE_DEV_ADMIN_WALLET", "0x00000000000000000000000000000000000000ad"),
		EligibleNationality:  envOr("BRICKGATE_ELIGIBLE_NATIONALITY", "FR"),
		EligibleTaxResidency: envOr("BRICKGATE_ELIGIBLE_TAX_RESIDENCY", "FR"),
		PostgresDSN:          os.Getenv("BRICKGATE_POSTGRES_DSN"),
		KafkaBrokers:         os.Getenv("BRICKGATE_KAFKA_BROKERS"),
		AuditTopic:           envOr("BRICKGATE_AUDIT_TOPIC", "brickgate.audit"),
		SnapshotCacheTTL:     envDuration("BRICKGATE_SNAPSHOT_CACHE_TTL", SnapshotCacheTTL),
		RequestTimeout:       envDuration("BRICKGATE_REQUEST_TIMEOUT", 30*time.Second),
		Redis: Redis{
			URL:          os.Getenv("BRICKGATE_REDIS_URL"),
			PoolSize:     envInt("BRICKGATE_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("BRICKGATE_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("BRICKGATE_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("BRICKGATE_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("BRICKGATE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			return parsed
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			return parsed
		}
	}
	return fallback
}
