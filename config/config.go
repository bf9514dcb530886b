package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	DataSource DataSourceConfig
	Auth       AuthConfig
	Log        LogConfig
	Redis      RedisConfig
	Notify     NotifyConfig
	List       ListConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `env:"PORT" env-default:"8080"`
	UseHTTPS        bool          `env:"USE_HTTPS" env-default:"false"`
	SessionLifetime int64         `env:"SESSION_LIFETIME_SECONDS" env-default:"3600"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" env-default:"60s"`
}

// DatabaseConfig selects the SQL engine behind the live data source
type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" env-default:"sqlite3"`
	DSN    string `env:"DB_DSN" env-default:"regdesk.db"`
}

// DataSourceConfig selects the data client implementation ("sql" or "memory")
type DataSourceConfig struct {
	Kind string `env:"DATA_SOURCE" env-default:"sql"`
}

// AuthConfig holds the OpenID Connect client settings
type AuthConfig struct {
	Domain       string `env:"OIDC_DOMAIN"`
	ClientID     string `env:"OIDC_CLIENT_ID"`
	ClientSecret string `env:"OIDC_CLIENT_SECRET"`
	CallbackURL  string `env:"OIDC_CALLBACK_URL"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"console"`
}

// RedisConfig holds the report cache connection. An empty address disables caching.
type RedisConfig struct {
	Address   string        `env:"REDIS_ADDRESS"`
	Password  string        `env:"REDIS_PASSWORD"`
	DB        int           `env:"REDIS_DB" env-default:"0"`
	ReportTTL time.Duration `env:"REPORT_CACHE_TTL" env-default:"5m"`
}

// NotifyConfig holds applicant notification settings
type NotifyConfig struct {
	SESEnabled bool   `env:"SES_ENABLED" env-default:"false"`
	Region     string `env:"AWS_REGION" env-default:"us-east-1"`
	FromEmail  string `env:"NOTIFY_FROM_EMAIL" env-default:"no-reply@regdesk.local"`
}

// ListConfig holds list page defaults
type ListConfig struct {
	PageSize   int `env:"LIST_PAGE_SIZE" env-default:"10"`
	FetchLimit int `env:"LIST_FETCH_LIMIT" env-default:"100"`
}

// Load reads the optional .env file and then the environment.
// Priority: process ENV > .env > defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks cross-field constraints cleanenv tags cannot express
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want sqlite3 or postgres)", c.Database.Driver)
	}

	switch c.DataSource.Kind {
	case "sql", "memory":
	default:
		return fmt.Errorf("unsupported DATA_SOURCE %q (want sql or memory)", c.DataSource.Kind)
	}

	if c.List.PageSize <= 0 {
		return errors.New("LIST_PAGE_SIZE must be positive")
	}
	if c.List.FetchLimit <= 0 {
		return errors.New("LIST_FETCH_LIMIT must be positive")
	}

	// Validate required identity provider configuration
	if c.Auth.Domain == "" {
		return errors.New("OIDC_DOMAIN is required")
	}
	if c.Auth.ClientID == "" {
		return errors.New("OIDC_CLIENT_ID is required")
	}
	if c.Auth.ClientSecret == "" {
		return errors.New("OIDC_CLIENT_SECRET is required")
	}
	if c.Auth.CallbackURL == "" {
		return errors.New("OIDC_CALLBACK_URL is required")
	}

	return nil
}
