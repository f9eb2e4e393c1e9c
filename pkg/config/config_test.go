package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg := Load()

	assert.Equal(t, DriverMongo, cfg.Driver)
	assert.Equal(t, "products", cfg.Mongo.ProductsCollection)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30, cfg.Seed.Rows)
	assert.Equal(t, int64(42), cfg.Seed.Seed)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", DriverMemory)
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "not-a-number")

	cfg := Load()

	assert.Equal(t, DriverMemory, cfg.Driver)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 90*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, 5, cfg.LoginLimit.MaxAttempts)
}

func TestValidateRejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ENVIRONMENT", "production")

	cfg := Load()
	require.Equal(t, DefaultJWTSecret, cfg.JWT.Secret)
	assert.Error(t, cfg.Validate())

	cfg.JWT.Secret = "s3cret"
	assert.NoError(t, cfg.Validate())

	cfg.JWT.Secret = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateAllowsDefaultSecretInDevelopment(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ENVIRONMENT", "development")

	assert.NoError(t, Load().Validate())
}
