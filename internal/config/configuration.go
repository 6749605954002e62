package config

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key when read from the
// environment.
const EnvPrefix = "PHOTOTUNER"

type Config struct {
	// Preview viewport
	PreviewWidth  int `mapstructure:"PREVIEW_WIDTH" validate:"gt=0"`
	PreviewHeight int `mapstructure:"PREVIEW_HEIGHT" validate:"gt=0"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL" validate:"oneof=DEBUG INFO WARN ERROR"`
	LogFile  string `mapstructure:"LOG_FILE"`

	// Output
	JPEGQuality int `mapstructure:"JPEG_QUALITY" validate:"min=1,max=100"`
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	typ := reflect.TypeOf(c)
	for i := 0; i < typ.NumField(); i++ {
		if tag := typ.Field(i).Tag.Get("mapstructure"); tag != "" {
			viper.BindEnv(tag)
		}
	}
}

// LoadConfig reads the configuration from the environment and, when one
// was set with viper.SetConfigFile, from a config file. Environment
// variables take precedence over the file.
func LoadConfig(ctx context.Context) (*Config, error) {
	if path := viper.ConfigFileUsed(); path != "" {
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}
	viper.SetEnvPrefix(EnvPrefix)
	bindEnv(Config{})
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("PREVIEW_WIDTH", 600)
	viper.SetDefault("PREVIEW_HEIGHT", 400)
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("JPEG_QUALITY", 95)

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.LogLevel = strings.ToUpper(strings.TrimSpace(cfg.LogLevel))

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	slog.DebugContext(ctx, "Loaded configuration", "config", cfg)
	return &cfg, nil
}
