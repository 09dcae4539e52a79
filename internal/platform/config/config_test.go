package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_DefaultValues tests that hardcoded defaults are applied correctly.
// This test doesn't depend on YAML files - it only tests the defaults() function.
func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "quotelib", cfg.App.Name)
	assert.Equal(t, "dev", cfg.App.Version)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, DefaultClientRetryMaxAttempts, cfg.Client.Retry.MaxAttempts)
	assert.Equal(t, DefaultClientRetryMultiplier, cfg.Client.Retry.Multiplier)
	assert.Equal(t, DefaultClientCircuitMaxFailures, cfg.Client.CircuitBreaker.MaxFailures)
}

// TestLoad_EnvVarOverrides tests that environment variables override defaults.
func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

// TestLoad_DurationParsing tests that duration strings are parsed correctly.
func TestLoad_DurationParsing(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 100*time.Millisecond, cfg.Client.Retry.InitialInterval)
	assert.Equal(t, 5*time.Second, cfg.Client.Retry.MaxInterval)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
}

// TestLoad_NonExistentProfile tests that a missing profile file doesn't cause errors.
func TestLoad_NonExistentProfile(t *testing.T) {
	cfg, err := Load("nonexistent")
	require.NoError(t, err)

	assert.Equal(t, "quotelib", cfg.App.Name)
}

// TestLoad_BoolEnvVar tests that boolean environment variables are parsed correctly.
func TestLoad_BoolEnvVar(t *testing.T) {
	t.Setenv("APP_TELEMETRY_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Telemetry.Enabled)
}

// TestLoad_AuthDefaults tests that the identity header default is set.
func TestLoad_AuthDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "X-User-ID", cfg.Auth.UserHeader)
}

// TestLoad_DatabaseDefaults tests that store defaults suit local development.
func TestLoad_DatabaseDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Empty(t, cfg.Database.DSN)
	assert.Equal(t, DefaultDatabaseMaxOpenConns, cfg.Database.MaxOpenConns)
	assert.Equal(t, DefaultDatabaseMaxIdleConns, cfg.Database.MaxIdleConns)
	assert.Equal(t, DefaultStorePageSize, cfg.Store.PageSize)
}

// TestLoad_QuoteServiceDefaults tests the provider endpoint defaults.
func TestLoad_QuoteServiceDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.quotable.io", cfg.Services.Quote.BaseURL)
	assert.Equal(t, "quotable", cfg.Services.Quote.Name)
}

// TestLoad_LogFileDefaults tests that log file defaults are set correctly.
func TestLoad_LogFileDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Log.File.Enabled)
	assert.Equal(t, "./logs/app.log", cfg.Log.File.Path)
	assert.Equal(t, DefaultLogFileMaxSizeMB, cfg.Log.File.MaxSizeMB)
	assert.Equal(t, DefaultLogFileMaxBackups, cfg.Log.File.MaxBackups)
	assert.Equal(t, DefaultLogFileMaxAgeDays, cfg.Log.File.MaxAgeDays)
	assert.True(t, cfg.Log.File.Compress)
}

// TestValidate_Defaults tests that the default configuration is valid.
func TestValidate_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.NoError(t, cfg.Validate())
}

// TestValidate_PostgresRequiresDSN tests that the postgres driver demands a DSN.
func TestValidate_PostgresRequiresDSN(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Database.Driver = "postgres"
	cfg.Database.DSN = ""

	verr := cfg.Validate()
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "database.dsn")
}

// TestValidate_RejectsUnknownDriver tests the database driver whitelist.
func TestValidate_RejectsUnknownDriver(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Database.Driver = "sqlite"

	verr := cfg.Validate()
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "database.driver")
}

// TestDefaults tests that the defaults map contains expected values.
func TestDefaults(t *testing.T) {
	d := defaults()

	assert.Equal(t, "quotelib", d["app.name"])
	assert.Equal(t, "dev", d["app.version"])
	assert.Equal(t, "local", d["app.environment"])
	assert.Equal(t, DefaultServerPort, d["server.port"])
	assert.Equal(t, DefaultStorePageSize, d["store.page_size"])
	assert.Equal(t, "memory", d["database.driver"])
	assert.Equal(t, DefaultClientRetryMaxAttempts, d["client.retry.max_attempts"])
}
