package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the pizzeria session system
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Session  SessionConfig  `mapstructure:"session"`
	Log      LogConfig      `mapstructure:"log"`
	HTTP     HTTPConfig     `mapstructure:"http"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// RabbitMQConfig holds RabbitMQ connection configuration
type RabbitMQConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// CatalogConfig selects where the menu is loaded from
type CatalogConfig struct {
	// Source is one of builtin, postgres, sqlite.
	Source         string `mapstructure:"source"`
	SQLitePath     string `mapstructure:"sqlite_path"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

// SessionConfig holds per-process session settings
type SessionConfig struct {
	DeliveryFee int64  `mapstructure:"delivery_fee"`
	Timezone    string `mapstructure:"timezone"`
	Currency    string `mapstructure:"currency"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// HTTPConfig holds the recorder HTTP listener settings
type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

// Catalog sources
const (
	SourceBuiltin  = "builtin"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Load reads configuration from a YAML file. A missing file is not an error:
// defaults and PIZZERIA_* environment variables still apply.
func Load(filename string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if filename != "" {
		v.SetConfigFile(filename)
	}

	v.SetEnvPrefix("PIZZERIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if filename != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "pizzeria")
	v.SetDefault("database.password", "pizzeria")
	v.SetDefault("database.database", "pizzeria")

	v.SetDefault("rabbitmq.enabled", false)
	v.SetDefault("rabbitmq.host", "localhost")
	v.SetDefault("rabbitmq.port", 5672)
	v.SetDefault("rabbitmq.user", "guest")
	v.SetDefault("rabbitmq.password", "guest")

	v.SetDefault("catalog.source", SourceBuiltin)
	v.SetDefault("catalog.sqlite_path", filepath.Join(os.TempDir(), "pizzeria", "catalog.db"))
	v.SetDefault("catalog.migrations_path", "migrations")

	v.SetDefault("session.delivery_fee", 15)
	v.SetDefault("session.timezone", "Local")
	v.SetDefault("session.currency", "zł")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "")

	v.SetDefault("http.port", 3000)
}

// Validate checks values that would otherwise fail late at startup
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case SourceBuiltin, SourcePostgres, SourceSQLite:
	default:
		return fmt.Errorf("unknown catalog source: %s", c.Catalog.Source)
	}
	if c.Session.DeliveryFee < 0 {
		return fmt.Errorf("session.delivery_fee must not be negative")
	}
	return nil
}

// DatabaseURL returns a PostgreSQL connection URL
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// RabbitMQURL returns an AMQP connection URL
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}

// MigrationURL returns the golang-migrate database URL for the catalog store
func (c *Config) MigrationURL() string {
	if c.Catalog.Source == SourceSQLite {
		return "sqlite3://" + c.Catalog.SQLitePath
	}
	return c.PostgresMigrationURL()
}

// PostgresMigrationURL returns the golang-migrate URL of the PostgreSQL database
func (c *Config) PostgresMigrationURL() string {
	return fmt.Sprintf("pgx5://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}
