package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredAuth(t *testing.T) {
	t.Setenv("OIDC_DOMAIN", "login.example.com")
	t.Setenv("OIDC_CLIENT_ID", "client")
	t.Setenv("OIDC_CLIENT_SECRET", "secret")
	t.Setenv("OIDC_CALLBACK_URL", "http://localhost:8080/callback")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredAuth(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "sql", cfg.DataSource.Kind)
	assert.Equal(t, 10, cfg.List.PageSize)
	assert.Equal(t, 100, cfg.List.FetchLimit)
	assert.Equal(t, 5*time.Minute, cfg.Redis.ReportTTL)
	assert.False(t, cfg.Notify.SESEnabled)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredAuth(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "postgres://localhost/regdesk")
	t.Setenv("LIST_PAGE_SIZE", "25")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 25, cfg.List.PageSize)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Database:   DatabaseConfig{Driver: "sqlite3"},
			DataSource: DataSourceConfig{Kind: "memory"},
			List:       ListConfig{PageSize: 10, FetchLimit: 100},
			Auth: AuthConfig{
				Domain:       "login.example.com",
				ClientID:     "id",
				ClientSecret: "secret",
				CallbackURL:  "http://localhost/callback",
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad driver", func(c *Config) { c.Database.Driver = "mysql" }, "DB_DRIVER"},
		{"bad data source", func(c *Config) { c.DataSource.Kind = "rest" }, "DATA_SOURCE"},
		{"zero page size", func(c *Config) { c.List.PageSize = 0 }, "LIST_PAGE_SIZE"},
		{"zero fetch limit", func(c *Config) { c.List.FetchLimit = 0 }, "LIST_FETCH_LIMIT"},
		{"missing domain", func(c *Config) { c.Auth.Domain = "" }, "OIDC_DOMAIN"},
		{"missing callback", func(c *Config) { c.Auth.CallbackURL = "" }, "OIDC_CALLBACK_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
