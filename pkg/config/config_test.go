package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadWithPath(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "erstiwoche-api", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "erstiwoche", cfg.Database.DBName)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.SMTP.Enabled)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.TokenTTL)
	assert.Equal(t, 5, cfg.RateLimit.MaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.True(t, cfg.Reminder.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Reminder.CheckInterval)
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `SERVER_PORT=9090
DB_NAME=erstiwoche_test
SMTP_ENABLED=true
SMTP_HOST=mail.hs-niederrhein.de
LOGIN_RATE_LIMIT_MAX_ATTEMPTS=3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadWithPath(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "erstiwoche_test", cfg.Database.DBName)
	assert.True(t, cfg.SMTP.Enabled)
	assert.Equal(t, "mail.hs-niederrhein.de:587", cfg.SMTP.Addr())
	assert.Equal(t, 3, cfg.RateLimit.MaxAttempts)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			App:       AppConfig{Environment: "development"},
			Server:    ServerConfig{Port: 8080},
			JWT:       JWTConfig{Secret: "secret", TokenTTL: time.Hour},
			RateLimit: RateLimitConfig{MaxAttempts: 5, Window: 15 * time.Minute},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("bad port", func(t *testing.T) {
		cfg := base()
		cfg.Server.Port = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.JWT.Secret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("default secret rejected in production", func(t *testing.T) {
		cfg := base()
		cfg.App.Environment = "production"
		cfg.JWT.Secret = "change-me-in-production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero rate limit window", func(t *testing.T) {
		cfg := base()
		cfg.RateLimit.Window = 0
		assert.Error(t, cfg.Validate())
	})
}
