package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"SOBITAS_APP_NAME":                       os.Getenv("SOBITAS_APP_NAME"),
		"SOBITAS_APP_ENV":                        os.Getenv("SOBITAS_APP_ENV"),
		"SOBITAS_APP_PORT":                       os.Getenv("SOBITAS_APP_PORT"),
		"SOBITAS_DATABASE_HOST":                  os.Getenv("SOBITAS_DATABASE_HOST"),
		"SOBITAS_DATABASE_PORT":                  os.Getenv("SOBITAS_DATABASE_PORT"),
		"SOBITAS_DATABASE_PASSWORD":              os.Getenv("SOBITAS_DATABASE_PASSWORD"),
		"SOBITAS_DATABASE_SSLMODE":               os.Getenv("SOBITAS_DATABASE_SSLMODE"),
		"SOBITAS_INVENTORY_ALLOW_NEGATIVE_STOCK": os.Getenv("SOBITAS_INVENTORY_ALLOW_NEGATIVE_STOCK"),
		"SOBITAS_PRICING_TVA_RATE_PERCENT":       os.Getenv("SOBITAS_PRICING_TVA_RATE_PERCENT"),
		"SOBITAS_PRICING_VAT_BASE":               os.Getenv("SOBITAS_PRICING_VAT_BASE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "sobitas-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "sobitas", cfg.Database.DBName)
		assert.True(t, cfg.Inventory.AllowNegativeStock)
		assert.Equal(t, 19.0, cfg.Pricing.TVARatePercent)
		assert.Equal(t, "net", cfg.Pricing.VATBase)
	})

	t.Run("loads values from environment variables with SOBITAS prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("SOBITAS_APP_PORT", "9000")
		os.Setenv("SOBITAS_DATABASE_HOST", "testdb.local")
		os.Setenv("SOBITAS_INVENTORY_ALLOW_NEGATIVE_STOCK", "false")
		os.Setenv("SOBITAS_PRICING_VAT_BASE", "gross")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.False(t, cfg.Inventory.AllowNegativeStock)
		assert.Equal(t, "gross", cfg.Pricing.VATBase)
	})

	t.Run("rejects unknown vat base", func(t *testing.T) {
		clearEnv()
		os.Setenv("SOBITAS_PRICING_VAT_BASE", "brut")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production requires database password", func(t *testing.T) {
		clearEnv()
		os.Setenv("SOBITAS_APP_ENV", "production")
		os.Setenv("SOBITAS_DATABASE_SSLMODE", "require")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.local",
		Port:     5432,
		User:     "app",
		Password: "p@ss/word",
		DBName:   "sobitas",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.local:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters must be escaped, not passed through raw.
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisConfigAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
