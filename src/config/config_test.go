package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cryptoportfolio/src/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseSettings = `
service:
  type: API
  port: "9000"
databases:
  sql:
    host: db
    port: "5432"
    username: user
    password: pass
    database: portfolio
externalClients:
  timeout: 5s
  coingecko:
    baseUrl: http://coingecko.local
`

const testingSettings = `
databases:
  sql:
    driver: memory
logging:
  level: debug
`

func writeSettings(t *testing.T, files map[string]string) string {
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeSettings(t, map[string]string{
		"appsettings.yaml":         baseSettings,
		"appsettings.TESTING.yaml": testingSettings,
	})

	t.Run("base settings with defaults", func(t *testing.T) {
		cfg, err := config.LoadConfig(dir, "")
		require.NoError(t, err)

		assert.Equal(t, config.API, cfg.Service.Type)
		assert.Equal(t, "9000", cfg.Service.Port)
		assert.Equal(t, []string{"*"}, cfg.Service.AllowedOrigins)
		assert.Equal(t, config.DriverPostgres, cfg.Databases.SQL.Driver)
		assert.Equal(t, 5*time.Second, cfg.ExternalClients.Timeout)
		assert.Equal(t, "http://coingecko.local", cfg.ExternalClients.CoinGecko.BaseURL)
		assert.Equal(t, []string{"usd", "eur"}, cfg.ExternalClients.CoinGecko.VsCurrencies)
		assert.Equal(t, "https://query1.finance.yahoo.com", cfg.ExternalClients.Yahoo.BaseURL)
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("environment file is merged on top", func(t *testing.T) {
		cfg, err := config.LoadConfig(dir, "TESTING")
		require.NoError(t, err)

		assert.Equal(t, config.DriverMemory, cfg.Databases.SQL.Driver)
		assert.Equal(t, "db", cfg.Databases.SQL.Host)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("missing environment file is ignored", func(t *testing.T) {
		cfg, err := config.LoadConfig(dir, "STAGING")
		require.NoError(t, err)
		assert.Equal(t, config.DriverPostgres, cfg.Databases.SQL.Driver)
	})

	t.Run("api key from CRYPTO_API", func(t *testing.T) {
		t.Setenv("CRYPTO_API", "secret-key")
		cfg, err := config.LoadConfig(dir, "")
		require.NoError(t, err)
		assert.Equal(t, "secret-key", cfg.ExternalClients.CoinGecko.APIKey)
	})

	t.Run("missing settings directory", func(t *testing.T) {
		_, err := config.LoadConfig(filepath.Join(dir, "nope"), "")
		assert.Error(t, err)
	})
}

func TestSQLConfigDSN(t *testing.T) {
	c := config.SQLConfig{Host: "db", Port: "5432", Username: "u", Password: "p", Database: "d"}
	assert.Equal(t, "host=db user=u password=p dbname=d port=5432 sslmode=disable", c.DSN())

	c.ConnectionString = "postgres://u:p@db:5432/d"
	assert.Equal(t, "postgres://u:p@db:5432/d", c.DSN())
}
