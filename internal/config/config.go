// Package config loads palgen configuration from file, environment and
// flags via viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all recognized palgen options.
type Config struct {
	// PMix is the fraction of pure reference color blended into each
	// palette-matched hue. Best results between 0.0 and 0.5; higher
	// values suit visually homogeneous images.
	PMix float64 `mapstructure:"p_mix"`

	// NColors is how many colors to quantize an image down to.
	NColors int `mapstructure:"n_colors"`

	// HistFile is the default histogram path.
	HistFile string `mapstructure:"hist_file"`

	// ColorFile is the default theme output path. A ".json" extension
	// selects the JSON object form, anything else the line form.
	ColorFile string `mapstructure:"color_file"`

	// PaletteFile is the default swatch-sheet output path.
	PaletteFile string `mapstructure:"palette_file"`

	// DBPath is the run-cache database location.
	DBPath string `mapstructure:"db_path"`

	// LogLevel is the zerolog level name.
	LogLevel string `mapstructure:"log_level"`
}

// Defaults mirror the original tool's defaults.
func defaults() map[string]any {
	return map[string]any{
		"p_mix":        0.25,
		"n_colors":     512,
		"hist_file":    "color_hist.txt",
		"color_file":   "colors.json",
		"palette_file": "palette.png",
		"db_path":      defaultDBPath(),
		"log_level":    "info",
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "palgen", "palgen.db")
}

// DefaultConfigDir returns the directory searched for config.yaml.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "palgen")
}

// Load reads configuration. An explicit path must exist; the default
// config file is optional.
func Load(path string) (*Config, *viper.Viper, error) {
	v := viper.New()
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("PALGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.PMix < 0 || cfg.PMix > 1 {
		return nil, nil, fmt.Errorf("p_mix must be in [0, 1], got %g", cfg.PMix)
	}
	return &cfg, v, nil
}
