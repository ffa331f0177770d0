package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg := Load()

	assert.Empty(t, cfg.TrustedProxies)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 24, cfg.JWTTTL)
	assert.Equal(t, "media", cfg.MediaRoot)
	assert.Equal(t, "/media", cfg.MediaURL)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/recipes")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("RATE_LIMIT_AUTH_RPS", "0.5")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 192.168.0.0/16,")

	cfg := Load()

	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, cfg.TrustedProxies)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/recipes", cfg.DatabaseURL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 0.5, cfg.RateLimitAuthRPS)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("RATE_LIMIT_RPS", "fast")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
}

func TestValidate(t *testing.T) {
	cfg := &Config{JWTTTL: 24}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")

	cfg.DatabaseURL = "postgres://localhost/recipes"
	cfg.JWTSecret = "s3cret"
	assert.NoError(t, cfg.Validate())
}
