package config_test

import (
	"testing"
	"time"

	"github.com/jhoicas/inventario-produccion/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Vacías equivalen a no definidas (viper no permite env vacías por defecto).
	for _, k := range []string{"STORE_DRIVER", "RECONCILE_LOCK_TIMEOUT", "RECONCILE_MAX_RETRIES",
		"RECONCILE_RETRY_BACKOFF", "HTTP_PORT", "DB_AUTO_MIGRATE"} {
		t.Setenv(k, "")
	}
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 5*time.Second, cfg.Reconcile.LockTimeout)
	assert.Equal(t, 3, cfg.Reconcile.MaxRetries)
	assert.Equal(t, 50*time.Millisecond, cfg.Reconcile.RetryBackoff)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("RECONCILE_LOCK_TIMEOUT", "250ms")
	t.Setenv("RECONCILE_MAX_RETRIES", "5")
	t.Setenv("RECONCILE_RETRY_BACKOFF", "20")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("DB_MAX_CONNS", "7")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, 250*time.Millisecond, cfg.Reconcile.LockTimeout)
	assert.Equal(t, 5, cfg.Reconcile.MaxRetries)
	assert.Equal(t, 20*time.Millisecond, cfg.Reconcile.RetryBackoff)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 7, cfg.DB.MaxConns)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapesPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/inv?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
