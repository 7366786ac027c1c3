// Package config loads application configuration from file, environment and
// defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Export  ExportConfig  `mapstructure:"export"`
	Budget  BudgetConfig  `mapstructure:"budget"`
	Planner PlannerConfig `mapstructure:"planner"`
	Debug   bool          `mapstructure:"debug"`
}

// StorageConfig selects where project assets are read from.
type StorageConfig struct {
	Provider    string `mapstructure:"provider"` // local or s3
	LocalPath   string `mapstructure:"local_path"`
	S3Endpoint  string `mapstructure:"s3_endpoint"`
	S3AccessKey string `mapstructure:"s3_access_key"`
	S3SecretKey string `mapstructure:"s3_secret_key"`
	S3Bucket    string `mapstructure:"s3_bucket"`
	S3Region    string `mapstructure:"s3_region"`
	S3UseSSL    bool   `mapstructure:"s3_use_ssl"`
}

// ExportConfig contains export pass settings.
type ExportConfig struct {
	OutDir        string `mapstructure:"out_dir"`
	DisableResize bool   `mapstructure:"disable_resize"`
}

// BudgetConfig overrides the performance budget thresholds (bytes). Zero
// keeps the default.
type BudgetConfig struct {
	JSGzipBytes         int64 `mapstructure:"js_gzip_bytes"`
	CSSGzipBytes        int64 `mapstructure:"css_gzip_bytes"`
	FirstViewImageBytes int64 `mapstructure:"first_view_image_bytes"`
}

// PlannerConfig sets the startup planner blocking limits.
type PlannerConfig struct {
	BlockingBackgroundLimit int `mapstructure:"blocking_background_limit"`
	BlockingItemLimit       int `mapstructure:"blocking_item_limit"`
}

// Load reads configuration from .env, menuforge.yaml and MENUFORGE_*
// environment variables, in increasing precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Debug().Err(err).Msg("No .env file loaded")
	}

	v := viper.New()
	v.SetConfigName("menuforge")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.menuforge")

	v.SetEnvPrefix("MENUFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.local_path", ".")
	v.SetDefault("storage.s3_region", "us-east-1")
	v.SetDefault("storage.s3_use_ssl", true)
	v.SetDefault("export.out_dir", ".")
	v.SetDefault("export.disable_resize", false)
	v.SetDefault("planner.blocking_background_limit", 1)
	v.SetDefault("planner.blocking_item_limit", 4)
	v.SetDefault("debug", false)
}
