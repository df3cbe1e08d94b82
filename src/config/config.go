package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Secrets         SecretsConfig        `mapstructure:"secrets"`
	Logging         LoggingConfig        `mapstructure:"logging"`
	Worker          WorkerConfig         `mapstructure:"worker"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type           ServiceType `mapstructure:"type"`
	Port           string      `mapstructure:"port"`
	AllowedOrigins []string    `mapstructure:"allowedOrigins"`
}

type DatabasesConfig struct {
	SQL SQLConfig `mapstructure:"sql"`
}

// Driver values accepted in databases.sql.driver.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Driver           string `mapstructure:"driver"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

// DSN returns the connection string, building it from the individual fields when
// no explicit connection_string is configured.
func (c SQLConfig) DSN() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host,
		c.Username,
		c.Password,
		c.Database,
		c.Port)
}

type ExternalClientConfig struct {
	Timeout   time.Duration   `mapstructure:"timeout"`
	CoinGecko CoinGeckoConfig `mapstructure:"coingecko"`
	Yahoo     YahooConfig     `mapstructure:"yahoo"`
}

type CoinGeckoConfig struct {
	BaseURL        string   `mapstructure:"baseUrl"`
	APIKey         string   `mapstructure:"apiKey"`
	APIKeySecretID string   `mapstructure:"apiKeySecretId"`
	VsCurrencies   []string `mapstructure:"vsCurrencies"`
}

type YahooConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
}

type SecretsConfig struct {
	AWSRegion string `mapstructure:"awsRegion"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	ToFile   bool   `mapstructure:"toFile"`
	FilePath string `mapstructure:"filePath"`
}

type WorkerConfig struct {
	SnapshotCron string `mapstructure:"snapshotCron"`
}

// LoadConfig reads appsettings.yaml from path and, when env is not empty, merges
// appsettings.<env>.yaml on top of it. Values from a .env file and the process
// environment override both.
func LoadConfig(path string, env string) (*Config, error) {
	var cfg Config

	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("appsettings")
	v.SetConfigType("yaml")
	setDefaults(v)

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	if env != "" {
		v.SetConfigName("appsettings." + env)
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("externalClients.coingecko.apiKey", "CRYPTO_API")
	_ = v.BindEnv("databases.sql.connection_string", "DATABASE_URL")

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.type", string(API))
	v.SetDefault("service.port", "8000")
	v.SetDefault("service.allowedOrigins", []string{"*"})
	v.SetDefault("databases.sql.driver", DriverPostgres)
	v.SetDefault("externalClients.timeout", 10*time.Second)
	v.SetDefault("externalClients.coingecko.baseUrl", "https://api.coingecko.com/api/v3")
	v.SetDefault("externalClients.coingecko.vsCurrencies", []string{"usd", "eur"})
	v.SetDefault("externalClients.yahoo.baseUrl", "https://query1.finance.yahoo.com")
	v.SetDefault("logging.level", "info")
	v.SetDefault("worker.snapshotCron", "0 0 * * *")
}
