package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:3000", cfg.Server.Addr())
	assert.Equal(t, "synagogue_manager", cfg.Mongo.DatabaseName)
	assert.Equal(t, "synagogue-manager", cfg.JWT.Issuer)
	assert.Equal(t, 15*time.Minute, cfg.JWT.TokenTTL)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_RejectsShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "too-short")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RedisEnabledByAddr(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_CACHE_TTL", "90s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 90*time.Second, cfg.Redis.CacheTTL)
}
