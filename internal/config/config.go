package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
)

const (
	envPrefix     = "BYTEBANK_"
	configFileEnv = "BYTEBANK_CONFIG_FILE"
)

type Config struct {
	Port     string `koanf:"port"`
	LogLevel string `koanf:"log_level"`

	PostgresAddress  string `koanf:"postgres_address"`
	PostgresPort     string `koanf:"postgres_port"`
	PostgresDB       string `koanf:"postgres_db"`
	PostgresUsername string `koanf:"postgres_username"`
	PostgresPassword string `koanf:"postgres_password"`
	MigrateOnStart   bool   `koanf:"migrate_on_start"`

	RedisAddress  string        `koanf:"redis_address"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	SessionTTL    time.Duration `koanf:"session_ttl"`

	GCSBucket          string `koanf:"gcs_bucket"`
	GCSCredentialsFile string `koanf:"gcs_credentials_file"`
	GCSEndpoint        string `koanf:"gcs_endpoint"`

	AMQPURL      string `koanf:"amqp_url"`
	AMQPExchange string `koanf:"amqp_exchange"`
	AMQPQueue    string `koanf:"amqp_queue"`

	OperatorWorkers    int           `koanf:"operator_workers"`
	BreakerMaxFailures int           `koanf:"breaker_max_failures"`
	BreakerOpenTimeout time.Duration `koanf:"breaker_open_timeout"`
}

// defaults match the docker compose setup. Credentials have no default and
// must come from the environment or the config file.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"port":                 "9446",
		"log_level":            "info",
		"postgres_address":     "localhost",
		"postgres_port":        "5433",
		"postgres_db":          "postgres",
		"postgres_username":    "postgres",
		"migrate_on_start":     false,
		"redis_address":        "localhost:6379",
		"redis_db":             0,
		"session_ttl":          "720h",
		"amqp_exchange":        "bytebank",
		"amqp_queue":           "transaction_events",
		"operator_workers":     4,
		"breaker_max_failures": 5,
		"breaker_open_timeout": "30s",
	}
}

// Load reads configuration from defaults, then the YAML file named by
// BYTEBANK_CONFIG_FILE if set, then BYTEBANK_* environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := os.Getenv(configFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %q: %w", path, err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		if s == configFileEnv {
			return ""
		}
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// PostgresURL is the lib/pq connection string for the configured database.
func (c *Config) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUsername, c.PostgresPassword),
		Host:     c.PostgresAddress + ":" + c.PostgresPort,
		Path:     "/" + c.PostgresDB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if c.PostgresAddress == "" || c.PostgresDB == "" || c.PostgresUsername == "" {
		problems = append(problems, "postgres address, db and username are required")
	}
	if c.PostgresPassword == "" {
		problems = append(problems, "postgres password is required (BYTEBANK_POSTGRES_PASSWORD)")
	}

	if c.RedisAddress == "" {
		problems = append(problems, "redis address is required")
	}
	if c.SessionTTL <= 0 {
		problems = append(problems, fmt.Sprintf("invalid session ttl %v: must be positive", c.SessionTTL))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" || c.AMQPQueue == "" {
			problems = append(problems, "AMQP exchange and queue are required when an AMQP URL is set")
		}
	}

	if c.GCSCredentialsFile != "" {
		if _, err := os.Stat(c.GCSCredentialsFile); err != nil {
			problems = append(problems, fmt.Sprintf("GCS credentials file not readable: %s", c.GCSCredentialsFile))
		}
	}

	if c.OperatorWorkers < 1 {
		problems = append(problems, fmt.Sprintf("invalid operator workers %d: must be at least 1", c.OperatorWorkers))
	}
	if c.BreakerMaxFailures < 1 {
		problems = append(problems, fmt.Sprintf("invalid breaker max failures %d: must be at least 1", c.BreakerMaxFailures))
	}
	if c.BreakerOpenTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid breaker open timeout %v: must be positive", c.BreakerOpenTimeout))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
