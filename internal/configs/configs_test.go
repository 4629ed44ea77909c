package config

import (
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_HOST", "APP_PORT", "DEBUG", "LOG_LEVEL", "DATABASE_DRIVER", "DATABASE_DSN",
		"CORS_ORIGINS", "DEFAULT_PAGE_SIZE", "MAX_PAGE_SIZE", "REDIS_ADDR",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.AppURL)
	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "tasks.db", cfg.DatabaseDSN)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 100, cfg.DefaultPageSize)
	assert.Equal(t, 1000, cfg.MaxPageSize)
	assert.False(t, cfg.EventsEnabled())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DEBUG", "true")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("DATABASE_DRIVER", "POSTGRES")
	t.Setenv("DATABASE_DSN", "host=db user=tasks dbname=tasks")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.AppURL)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "WARN", cfg.LogLevel)
	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.True(t, cfg.EventsEnabled())
	assert.Equal(t, "task_events", cfg.RedisStreamKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"driver", "DATABASE_DRIVER", "mysql"},
		{"int", "DEFAULT_PAGE_SIZE", "ten"},
		{"bool", "DEBUG", "maybe"},
		{"level", "LOG_LEVEL", "TRACE"},
		{"page size", "MAX_PAGE_SIZE", "5"},
		{"shutdown", "SHUTDOWN_TIMEOUT_SECONDS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}

func TestNewDatabase_SQLiteMemory(t *testing.T) {
	db, err := NewDatabase(Config{DatabaseDriver: DriverSQLite, DatabaseDSN: ":memory:", DBMaxOpenConns: 5})
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDatabase(db) })

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable("tasks"))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestNewLogger_Level(t *testing.T) {
	assert.Equal(t, log.WARN, NewLogger(Config{AppName: "t", LogLevel: "WARN"}).Level())
	assert.Equal(t, log.DEBUG, NewLogger(Config{AppName: "t", LogLevel: "ERROR", Debug: true}).Level())
}
