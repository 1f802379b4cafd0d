package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Dataset   DatasetConfig   `mapstructure:"dataset"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Export    ExportConfig    `mapstructure:"export"`
	Security  SecurityConfig  `mapstructure:"security"`
	WebSocket WebSocketConfig `mapstructure:"websocket"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
	Mode string `mapstructure:"mode"`
}

// DatasetConfig points at the static JSON order file and controls the
// optional scheduled reload.
type DatasetConfig struct {
	Path       string `mapstructure:"path"`
	ReloadCron string `mapstructure:"reload_cron"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ExportConfig struct {
	// BaseFilename is the download name without extension.
	BaseFilename string `mapstructure:"base_filename"`
}

type SecurityConfig struct {
	RateLimit      int  `mapstructure:"rate_limit"`
	RateLimitBurst int  `mapstructure:"rate_limit_burst"`
	EnableCORS     bool `mapstructure:"enable_cors"`
}

type WebSocketConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	HeartbeatInterval int  `mapstructure:"heartbeat_interval"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Prefix  string `mapstructure:"prefix"`
}

// Load reads configuration from ./configs/config.yaml with environment
// overrides and defaults.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()

	// Override specific values from env
	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("server.mode", "SERVER_MODE")
	viper.BindEnv("dataset.path", "DATASET_PATH")
	viper.BindEnv("logging.level", "LOG_LEVEL")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 3001)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.mode", "development")

	viper.SetDefault("dataset.path", "./data/data.json")
	viper.SetDefault("dataset.reload_cron", "")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	viper.SetDefault("export.base_filename", "walmart_sales_data")

	viper.SetDefault("security.rate_limit", 100)
	viper.SetDefault("security.rate_limit_burst", 200)
	viper.SetDefault("security.enable_cors", true)

	viper.SetDefault("websocket.enabled", true)
	viper.SetDefault("websocket.heartbeat_interval", 30)

	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.prefix", "salesdash")
}

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset path must not be empty")
	}
	if c.Export.BaseFilename == "" {
		return fmt.Errorf("export base filename must not be empty")
	}
	if c.Security.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive, got %d", c.Security.RateLimit)
	}
	return nil
}
