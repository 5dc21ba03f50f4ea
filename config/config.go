package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Port            string
	UpstreamBaseURL string
	UpstreamTimeout time.Duration
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	PriceCacheTTL   time.Duration
	RefreshDebounce time.Duration
	SessionTTL      time.Duration
	JWTSecret       string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            getenv("PORT", "8080"),
		UpstreamBaseURL: os.Getenv("UPSTREAM_BASE_URL"),
		UpstreamTimeout: parseDur(getenv("UPSTREAM_TIMEOUT", "10s")),
		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         atoi(getenv("REDIS_DB", "0")),
		PriceCacheTTL:   parseDur(getenv("PRICE_CACHE_TTL", "5m")),
		RefreshDebounce: parseDur(getenv("REFRESH_DEBOUNCE", "500ms")),
		SessionTTL:      parseDur(getenv("SESSION_TTL", "24h")),
		JWTSecret:       os.Getenv("JWT_SECRET"),
	}

	if cfg.UpstreamBaseURL == "" {
		return nil, fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

// NewRedisClient connects to Redis for the price cache and session store.
// Returns nil when the server is unreachable; callers degrade to in-memory
// behaviour instead of failing startup.
func NewRedisClient(cfg *Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
