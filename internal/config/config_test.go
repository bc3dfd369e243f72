package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.App.Env)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, DriverMemory, cfg.Cache.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Cache.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.Cache.PaymentTTL)
	assert.Equal(t, 3*time.Second, cfg.Booking.RedirectDelay)
	assert.Equal(t, 500.0, cfg.Booking.HospitalFee)
	assert.False(t, cfg.Booking.ExclusiveSlots)
	assert.True(t, cfg.IsLocal())
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestNewConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "PRODUCTION")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("CACHE_DRIVER", "redis")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("BOOKING_EXCLUSIVE_SLOTS", "true")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.App.Env)
	assert.True(t, cfg.IsNotLocal())
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, DriverRedis, cfg.Cache.Driver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.True(t, cfg.Booking.ExclusiveSlots)
}

func TestNewConfigRejectsInvalid(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "postgres")
}
