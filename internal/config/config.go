package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"taskboard/pkg/logger"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverPostgres  = "postgres"
	DriverMongo     = "mongo"
	DriverFirestore = "firestore"
	DriverMemory    = "memory"
)

// Config holds application configuration from environment.
type Config struct {
	HTTPPort string `env:"PORT" envDefault:"5000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StoreDriver   string `env:"STORE_DRIVER" envDefault:"postgres"`
	DatabaseURL   string `env:"DATABASE_URL"`
	DBPoolSize    int    `env:"DB_POOL_SIZE" envDefault:"20"`
	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"taskboard"`
	GCPProject    string `env:"GOOGLE_CLOUD_PROJECT"`

	JWTSecret          string        `env:"JWT_SECRET"`
	TokenTTL           time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	BcryptCost         int           `env:"BCRYPT_COST" envDefault:"10"`
	RequireOwnerDelete bool          `env:"TASK_DELETE_REQUIRE_OWNER" envDefault:"false"`

	RedisURL      string        `env:"REDIS_URL"`
	RedisPoolSize int           `env:"REDIS_POOL_SIZE" envDefault:"50"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	KafkaBrokers    []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic      string   `env:"KAFKA_TASK_TOPIC" envDefault:"task-events"`
	KafkaPartitions int      `env:"KAFKA_PARTITIONS" envDefault:"8"`
}

var (
	cfg     *Config
	cfgErr  error
	cfgOnce sync.Once
)

// Get returns the application config (loads once from env). Load errors are
// logged; call Load directly to handle them.
func Get() *Config {
	cfgOnce.Do(func() {
		cfg, cfgErr = Load()
		if cfgErr != nil {
			logger.Error(context.Background(), "Config load failed", "error", cfgErr)
		}
	})
	return cfg
}

// Load reads a .env file when present (existing variables win) and parses the
// environment into a new Config.
func Load() (*Config, error) {
	_ = godotenv.Load()
	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	c.KafkaBrokers = compact(c.KafkaBrokers)
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	return c, nil
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is not loaded")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required for the mongo store")
		}
	case DriverFirestore:
		if c.GCPProject == "" {
			return errors.New("GOOGLE_CLOUD_PROJECT is required for the firestore store")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

// CacheEnabled reports whether a Redis URL was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

// EventsEnabled reports whether Kafka brokers were configured.
func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func compact(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
