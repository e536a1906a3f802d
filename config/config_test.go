package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, int64(1<<20), cfg.Server.BodyLimitBytes)
	assert.Equal(t, "product_release_control", cfg.Database.Name)
	assert.Equal(t, "UTC", cfg.Database.Timezone)
	assert.False(t, cfg.Database.Echo)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_LegacyEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "product_manager")
	t.Setenv("DB_PASS", "secret")
	t.Setenv("DB_NAME", "shifts")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "product_manager", cfg.Database.User)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "shifts", cfg.Database.Name)
}

func TestLoad_PrefixedEnvWinsOverLegacy(t *testing.T) {
	t.Setenv("DB_HOST", "legacy")
	t.Setenv("PRC_DB_HOST", "prefixed")
	t.Setenv("PRC_DB_ECHO", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "prefixed", cfg.Database.Host)
	assert.True(t, cfg.Database.Echo)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
redis:
  enabled: true
  addr: redis:6379
rate_limit:
  requests: 5
  window: 10s
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: 8000},
			Database:  DatabaseConfig{Name: "prc"},
			RateLimit: RateLimitConfig{Requests: 1, Window: time.Second},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"端口为 0", func(c *Config) { c.Server.Port = 0 }},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }},
		{"库名为空", func(c *Config) { c.Database.Name = "" }},
		{"限流次数为 0", func(c *Config) { c.RateLimit.Requests = 0 }},
		{"限流窗口为 0", func(c *Config) { c.RateLimit.Window = 0 }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "u", Password: "p",
		Name: "prc", SSLMode: "disable", Timezone: "UTC",
	}
	assert.Equal(t, "host=localhost port=5432 user=u password=p dbname=prc sslmode=disable TimeZone=UTC", c.DSN())
}
