package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server ServerConfig
	Upload UploadConfig
	UI     UIConfig
	Log    LogConfig
}

// ServerConfig locates the analysis service.
type ServerConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// UploadConfig bounds what can be submitted.
type UploadConfig struct {
	MaxBytes int64
}

// UIConfig holds presentation settings.
type UIConfig struct {
	NotificationSeconds int
	ThumbnailWidth      int
	BrowseDir           string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Path  string
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix PIXLENS_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("server.base_url", "http://localhost:5000")
	v.SetDefault("server.timeout_seconds", 60)
	v.SetDefault("upload.max_bytes", int64(10*1024*1024))
	v.SetDefault("ui.notification_seconds", 3)
	v.SetDefault("ui.thumbnail_width", 40)
	v.SetDefault("ui.browse_dir", ".")
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "pixlens", "pixlens.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PIXLENS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "pixlens"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PIXLENS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return normalize(c), nil
}

func normalize(c Config) Config {
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:5000"
	}
	if c.Server.TimeoutSeconds <= 0 {
		c.Server.TimeoutSeconds = 60
	}
	if c.Upload.MaxBytes <= 0 {
		c.Upload.MaxBytes = 10 * 1024 * 1024
	}
	if c.UI.NotificationSeconds <= 0 {
		c.UI.NotificationSeconds = 3
	}
	if c.UI.ThumbnailWidth < 10 || c.UI.ThumbnailWidth > 120 {
		c.UI.ThumbnailWidth = 40
	}
	if c.UI.BrowseDir == "" {
		c.UI.BrowseDir = "."
	}
	return c
}
