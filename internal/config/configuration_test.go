package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Success_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, 600, cfg.PreviewWidth)
	require.Equal(t, 400, cfg.PreviewHeight)
	require.Equal(t, "INFO", cfg.LogLevel)
	require.Empty(t, cfg.LogFile)
	require.Equal(t, 95, cfg.JPEGQuality)
	require.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoadConfig_Overrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("PHOTOTUNER_PREVIEW_WIDTH", "800")
	t.Setenv("PHOTOTUNER_PREVIEW_HEIGHT", "600")
	t.Setenv("PHOTOTUNER_LOG_LEVEL", "debug")
	t.Setenv("PHOTOTUNER_LOG_FILE", "/tmp/phototuner.log")
	t.Setenv("PHOTOTUNER_JPEG_QUALITY", "80")

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	require.Equal(t, 800, cfg.PreviewWidth)
	require.Equal(t, 600, cfg.PreviewHeight)
	require.Equal(t, "DEBUG", cfg.LogLevel)
	require.Equal(t, slog.LevelDebug, cfg.Level())
	require.Equal(t, "/tmp/phototuner.log", cfg.LogFile)
	require.Equal(t, 80, cfg.JPEGQuality)
}

func TestLoadConfig_ValidationError(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"zero preview width", "PHOTOTUNER_PREVIEW_WIDTH", "0"},
		{"negative preview height", "PHOTOTUNER_PREVIEW_HEIGHT", "-5"},
		{"unknown log level", "PHOTOTUNER_LOG_LEVEL", "TRACE"},
		{"quality too high", "PHOTOTUNER_JPEG_QUALITY", "101"},
		{"quality too low", "PHOTOTUNER_JPEG_QUALITY", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			t.Setenv(tt.key, tt.value)

			cfg, err := LoadConfig(context.Background())
			require.Error(t, err)
			require.Nil(t, cfg)
		})
	}
}

func TestLoadConfig_File(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "phototuner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preview_width: 1024\njpeg_quality: 70\n"), 0o600))
	t.Setenv("PHOTOTUNER_JPEG_QUALITY", "85")

	viper.SetConfigFile(path)
	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1024, cfg.PreviewWidth)
	require.Equal(t, 400, cfg.PreviewHeight)
	require.Equal(t, 85, cfg.JPEGQuality) // environment wins
}

func TestLoadConfig_MissingFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.SetConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	cfg, err := LoadConfig(context.Background())
	require.Error(t, err)
	require.Nil(t, cfg)
}
