package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	marketdata "main/internal/domain/entity/marketdata"
)

const (
	defaultEnv             = "development"
	defaultHTTPHost        = "0.0.0.0"
	defaultHTTPPort        = 8080
	defaultRedisAddr       = ""
	defaultRedisDB         = 0
	defaultCacheTTLSeconds = 5
	defaultCandlesExchange = "marketdata.candles"
	defaultTimeframes      = "1m,5m,15m,30m,1h,4h,1d"
	defaultRetention       = 100
	defaultBackfillCount   = 100
	defaultTickMinMs       = 1000
	defaultTickMaxMs       = 5000
)

// Config keeps the runtime configuration for the service.
type Config struct {
	Env         string
	HTTP        HTTPConfig
	Redis       RedisConfig
	Cache       CacheConfig
	RabbitMQ    RabbitMQConfig
	Instruments InstrumentsConfig
	MarketData  MarketDataConfig
	Feed        FeedConfig
}

// HTTPConfig holds HTTP server related settings.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr renders the listen address in host:port form.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// RedisConfig stores Redis connection parameters. An empty Addr disables
// the HTTP response cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CacheConfig stores cache behavior.
type CacheConfig struct {
	TTLSeconds int
}

// RabbitMQConfig stores broker publishing parameters. An empty URL
// disables publishing.
type RabbitMQConfig struct {
	URL             string
	CandlesExchange string
	QueueSize       int
}

// InstrumentsConfig points at the instrument catalog file; empty means
// the embedded defaults.
type InstrumentsConfig struct {
	File string
}

// MarketDataConfig controls the aggregation engine.
type MarketDataConfig struct {
	Timeframes    []marketdata.Timeframe
	Retention     int
	BackfillCount int
}

// FeedConfig bounds the tick scheduler.
type FeedConfig struct {
	MinInterval time.Duration
	MaxInterval time.Duration
	Seed        int64
}

// Load builds Config from environment variables.
func Load() (*Config, error) {
	port, err := getInt("HTTP_PORT", defaultHTTPPort)
	if err != nil {
		return nil, fmt.Errorf("parse HTTP_PORT: %w", err)
	}

	redisDB, err := getInt("REDIS_DB", defaultRedisDB)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_DB: %w", err)
	}
	cacheTTL, err := getInt("CACHE_TTL_SECONDS", defaultCacheTTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("parse CACHE_TTL_SECONDS: %w", err)
	}

	queueSize, err := getInt("RABBITMQ_QUEUE_SIZE", 0)
	if err != nil {
		return nil, fmt.Errorf("parse RABBITMQ_QUEUE_SIZE: %w", err)
	}

	timeframes, err := parseTimeframes(getString("TIMEFRAMES", defaultTimeframes))
	if err != nil {
		return nil, fmt.Errorf("parse TIMEFRAMES: %w", err)
	}
	retention, err := getInt("CANDLE_RETENTION", defaultRetention)
	if err != nil {
		return nil, fmt.Errorf("parse CANDLE_RETENTION: %w", err)
	}
	if retention <= 0 {
		return nil, fmt.Errorf("CANDLE_RETENTION must be positive, got %d", retention)
	}
	backfillCount, err := getInt("BACKFILL_COUNT", defaultBackfillCount)
	if err != nil {
		return nil, fmt.Errorf("parse BACKFILL_COUNT: %w", err)
	}

	tickMinMs, err := getInt("TICK_INTERVAL_MIN_MS", defaultTickMinMs)
	if err != nil {
		return nil, fmt.Errorf("parse TICK_INTERVAL_MIN_MS: %w", err)
	}
	tickMaxMs, err := getInt("TICK_INTERVAL_MAX_MS", defaultTickMaxMs)
	if err != nil {
		return nil, fmt.Errorf("parse TICK_INTERVAL_MAX_MS: %w", err)
	}
	if tickMinMs <= 0 || tickMaxMs < tickMinMs {
		return nil, fmt.Errorf("invalid tick interval bounds: min=%dms max=%dms", tickMinMs, tickMaxMs)
	}
	seed, err := getInt64("FEED_SEED", 0)
	if err != nil {
		return nil, fmt.Errorf("parse FEED_SEED: %w", err)
	}

	return &Config{
		Env: getString("APP_ENV", defaultEnv),
		HTTP: HTTPConfig{
			Host: getString("HTTP_HOST", defaultHTTPHost),
			Port: port,
		},
		Redis: RedisConfig{
			Addr:     getString("REDIS_ADDR", defaultRedisAddr),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Cache: CacheConfig{
			TTLSeconds: cacheTTL,
		},
		RabbitMQ: RabbitMQConfig{
			URL:             os.Getenv("RABBITMQ_URL"),
			CandlesExchange: getString("RABBITMQ_CANDLES_EXCHANGE", defaultCandlesExchange),
			QueueSize:       queueSize,
		},
		Instruments: InstrumentsConfig{
			File: os.Getenv("INSTRUMENTS_FILE"),
		},
		MarketData: MarketDataConfig{
			Timeframes:    timeframes,
			Retention:     retention,
			BackfillCount: backfillCount,
		},
		Feed: FeedConfig{
			MinInterval: time.Duration(tickMinMs) * time.Millisecond,
			MaxInterval: time.Duration(tickMaxMs) * time.Millisecond,
			Seed:        seed,
		},
	}, nil
}

func parseTimeframes(raw string) ([]marketdata.Timeframe, error) {
	parts := strings.Split(raw, ",")
	timeframes := make([]marketdata.Timeframe, 0, len(parts))
	seen := make(map[marketdata.Timeframe]struct{}, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tf, err := marketdata.ParseTimeframe(part)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[tf]; ok {
			continue
		}
		seen[tf] = struct{}{}
		timeframes = append(timeframes, tf)
	}
	if len(timeframes) == 0 {
		return nil, fmt.Errorf("timeframe list is empty")
	}
	return timeframes, nil
}

func getString(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func getInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("convert %s value %q to int: %w", key, value, err)
	}
	return parsed, nil
}

func getInt64(key string, fallback int64) (int64, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("convert %s value %q to int64: %w", key, value, err)
	}
	return parsed, nil
}
