package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Session backends.
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// MaxSimulationDelay keeps the pacing delay well inside the HTTP server's
// 10s write timeout.
const MaxSimulationDelay = 5 * time.Second

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// SimulationDelay is the pause between accepting a run and answering it.
	SimulationDelay time.Duration

	// DatasetSeed seeds the mock satellite series. Zero means time-seeded.
	DatasetSeed uint64

	SessionBackend    string
	SessionTTL        time.Duration
	SessionMaxEntries int
	RedisURL          string
	RedisDialTimeout  time.Duration

	// Simulation event publishing.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	delay, err := parseDuration("SIMULATION_DELAY", "1500ms", true)
	if err != nil {
		return nil, err
	}
	if delay > MaxSimulationDelay {
		return nil, errors.New("invalid SIMULATION_DELAY: must not exceed " + MaxSimulationDelay.String())
	}

	sessionTTL, err := parseDuration("SESSION_TTL", "30m", false)
	if err != nil {
		return nil, err
	}

	dialTimeout, err := parseDuration("REDIS_DIAL_TIMEOUT", "10s", false)
	if err != nil {
		return nil, err
	}

	maxEntries, err := parsePositiveInt("SESSION_MAX_ENTRIES", 10000)
	if err != nil {
		return nil, err
	}

	seed, err := parseSeed()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		SimulationDelay: delay,
		DatasetSeed:     seed,

		SessionBackend:    sharedcfg.EnvOrDefault("SESSION_BACKEND", SessionBackendMemory),
		SessionTTL:        sessionTTL,
		SessionMaxEntries: maxEntries,
		RedisURL:          os.Getenv("REDIS_URL"),
		RedisDialTimeout:  dialTimeout,

		KafkaEnabled: os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers: sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "simulation-events"),
	}

	switch cfg.SessionBackend {
	case SessionBackendMemory:
	case SessionBackendRedis:
		if cfg.RedisURL == "" {
			return nil, errors.New("SESSION_BACKEND is redis but REDIS_URL is not set")
		}
	default:
		return nil, errors.New("invalid SESSION_BACKEND: must be memory or redis")
	}

	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
		}
		if cfg.KafkaTopic == "" {
			return nil, errors.New("KAFKA_TOPIC is required when KAFKA_ENABLED is true")
		}
	}

	return cfg, nil
}

func parseDuration(key, def string, allowZero bool) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d < 0 || (d == 0 && !allowZero) {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid " + key + ": must be a positive integer")
	}
	return n, nil
}

func parseSeed() (uint64, error) {
	s := os.Getenv("DATASET_SEED")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.New("invalid DATASET_SEED")
	}
	return n, nil
}
