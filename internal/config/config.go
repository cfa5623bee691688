// Package config loads service settings from defaults, an optional
// puredry.yaml, a .env file and PUREDRY_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Currency  string          `mapstructure:"currency"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Quote     QuoteConfig     `mapstructure:"quote"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

type StorageConfig struct {
	// Backend is one of sqlite, redis, mongo or memory.
	Backend    string      `mapstructure:"backend"`
	SQLitePath string      `mapstructure:"sqlite_path"`
	Redis      RedisConfig `mapstructure:"redis"`
	Mongo      MongoConfig `mapstructure:"mongo"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type QuoteConfig struct {
	// Submitter is one of local, postgres or kafka.
	Submitter string         `mapstructure:"submitter"`
	Timeout   time.Duration  `mapstructure:"timeout"`
	Delay     time.Duration  `mapstructure:"delay"`
	Postgres  PostgresConfig `mapstructure:"postgres"`
	Kafka     KafkaConfig    `mapstructure:"kafka"`
	Breaker   BreakerConfig  `mapstructure:"breaker"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type BreakerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FailureLimit uint32        `mapstructure:"failure_limit"`
}

type TelemetryConfig struct {
	Exporter    string `mapstructure:"exporter"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("currency", "USD")
	v.SetDefault("log.level", "info")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 45*time.Second)
	v.SetDefault("http.request_timeout", 40*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("http.max_body_bytes", 1<<20)

	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.sqlite_path", "./puredry.db")
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.prefix", "puredry")
	v.SetDefault("storage.redis.ttl", time.Duration(0))
	v.SetDefault("storage.mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("storage.mongo.database", "puredry")

	v.SetDefault("quote.submitter", "local")
	v.SetDefault("quote.timeout", 30*time.Second)
	v.SetDefault("quote.delay", time.Second)
	v.SetDefault("quote.postgres.host", "localhost")
	v.SetDefault("quote.postgres.port", 5432)
	v.SetDefault("quote.postgres.user", "postgres")
	v.SetDefault("quote.postgres.password", "postgres")
	v.SetDefault("quote.postgres.dbname", "puredry")
	v.SetDefault("quote.postgres.sslmode", "disable")
	v.SetDefault("quote.kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("quote.kafka.topic", "quote-requests")
	v.SetDefault("quote.breaker.enabled", true)
	v.SetDefault("quote.breaker.max_requests", 1)
	v.SetDefault("quote.breaker.interval", time.Minute)
	v.SetDefault("quote.breaker.timeout", 30*time.Second)
	v.SetDefault("quote.breaker.failure_limit", 5)

	v.SetDefault("telemetry.exporter", "none")
	v.SetDefault("telemetry.endpoint", "localhost:4317")
	v.SetDefault("telemetry.service_name", "puredry")
}

// Load reads the configuration. configFile may be empty, in which case
// puredry.yaml is looked up in the working directory and /etc/puredry and
// is optional.
func Load(configFile string) (*Config, error) {
	// A missing .env is the normal case outside development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("puredry")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/puredry/")
	}

	v.SetEnvPrefix("PUREDRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "sqlite", "redis", "mongo", "memory":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Quote.Submitter {
	case "local", "postgres", "kafka":
	default:
		return fmt.Errorf("unknown quote submitter %q", c.Quote.Submitter)
	}
	if c.Quote.Submitter == "kafka" && len(c.Quote.Kafka.Brokers) == 0 {
		return errors.New("kafka submitter needs at least one broker")
	}
	if c.Currency == "" {
		return errors.New("currency is required")
	}
	return nil
}
