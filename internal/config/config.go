package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string      `mapstructure:"env"`       // current application environment (local, dev, production etc)
	LogLevel         string      `mapstructure:"log_level"` // zap level name; empty keeps the environment default
	TelegramAPIToken string      `mapstructure:"-"`         // Telegram API token loaded from environment, optional
	HTTP             HTTP        `mapstructure:"http"`
	Quran            Quran       `mapstructure:"quran"`
	Auth             Auth        `mapstructure:"auth"`
	Maintenance      Maintenance `mapstructure:"maintenance"`
	DB               DB          `mapstructure:"database"` // database configuration section
}

// HTTP configures the API server.
type HTTP struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// TrustedProxies lists proxy addresses or CIDRs whose forwarding headers
	// are believed. Empty trusts none.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// Quran configures the content API client.
type Quran struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	DefaultReciter string        `mapstructure:"default_reciter"`
	DefaultEdition string        `mapstructure:"default_edition"`
}

// Auth configures sessions and password resets.
type Auth struct {
	SessionTTL       time.Duration `mapstructure:"session_ttl"`
	ResetTTL         time.Duration `mapstructure:"reset_ttl"`
	ResetRedirectURL string        `mapstructure:"reset_redirect_url"`
}

// Maintenance configures the background sweeper.
type Maintenance struct {
	Schedule string `mapstructure:"schedule"` // cron spec
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// TelegramEnabled reports whether the chat front-end should be started.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramAPIToken != ""
}

// Load reads configuration from the .env file, config files and environment variables.
func Load() (*Config, error) {
	return LoadFrom("./config", ".env")
}

// LoadFrom is Load with explicit config directory and dotenv file.
func LoadFrom(configDir, envFile string) (*Config, error) {
	// Values already present in the environment win over the dotenv file.
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "30s")
	v.SetDefault("http.trusted_proxies", []string{})
	v.SetDefault("quran.base_url", "https://api.alquran.cloud/v1")
	v.SetDefault("quran.timeout", "10s")
	v.SetDefault("quran.default_reciter", "ar.alafasy")
	v.SetDefault("quran.default_edition", "quran-uthmani")
	v.SetDefault("auth.session_ttl", "720h")
	v.SetDefault("auth.reset_ttl", "1h")
	v.SetDefault("auth.reset_redirect_url", "http://localhost:5173/reset-password")
	v.SetDefault("maintenance.schedule", "@hourly")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("http.addr", "HTTP_ADDR")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return &cfg, nil
}
