package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ledgerEnv = []string{
	"LEDGER_APP_ENV",
	"LEDGER_APP_PORT",
	"LEDGER_LOG_LEVEL",
	"LEDGER_STORE_DRIVER",
	"LEDGER_STORE_MAX_RETRIES",
	"LEDGER_DATABASE_URL",
	"LEDGER_DATABASE_MAX_OPEN_CONNS",
	"LEDGER_DATABASE_MAX_IDLE_CONNS",
	"LEDGER_REDIS_PORT",
	"LEDGER_JWT_SECRET",
	"LEDGER_JWT_EXPIRATION",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range ledgerEnv {
		// t.Setenv restores the original value after the test
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "store-ledger", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "3000", cfg.App.Port)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, DriverBolt, cfg.Store.Driver)
		assert.Equal(t, "data/ledger.db", cfg.Store.BoltPath)
		assert.Equal(t, 3, cfg.Store.MaxRetries)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
		assert.Equal(t, "ledger:", cfg.Redis.KeyPrefix)
		assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("environment overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LEDGER_APP_PORT", "8080")
		t.Setenv("LEDGER_STORE_DRIVER", "Redis")
		t.Setenv("LEDGER_STORE_MAX_RETRIES", "5")
		t.Setenv("LEDGER_REDIS_PORT", "6380")
		t.Setenv("LEDGER_JWT_EXPIRATION", "2h")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, DriverRedis, cfg.Store.Driver)
		assert.Equal(t, 5, cfg.Store.MaxRetries)
		assert.Equal(t, "localhost:6380", cfg.Redis.Addr())
		assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LEDGER_STORE_DRIVER", "mongo")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store.driver")
	})

	t.Run("production requires a real secret", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LEDGER_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")

		t.Setenv("LEDGER_JWT_SECRET", "a-very-long-production-secret-value-123")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.True(t, cfg.IsProduction())
	})
}

func TestValidatePool(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	require.NoError(t, cfg.validate())

	cfg.Database.MaxIdleConns = 100
	assert.Error(t, cfg.validate())
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "ledger", SSLMode: "disable", TimeZone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=ledger port=5432 sslmode=disable TimeZone=UTC", d.DSN())

	d.URL = "postgres://u:p@db/ledger"
	assert.Equal(t, "postgres://u:p@db/ledger", d.DSN())
}
