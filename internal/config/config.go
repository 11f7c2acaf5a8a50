package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration settings
type Config struct {
	// Logging configuration
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`

	// Reference detector tuning
	Detector DetectorConfig `yaml:"detector" mapstructure:"detector"`

	// Suite store configuration
	Store StoreConfig `yaml:"store" mapstructure:"store"`

	// Report rendering options
	Report ReportConfig `yaml:"report" mapstructure:"report"`
}

type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // "debug", "info", "warn", "error"
}

type DetectorConfig struct {
	// PairWindow is how far apart a remove/create pair may be and still be
	// treated as one rename/move/copy operation.
	PairWindow time.Duration `yaml:"pair_window" mapstructure:"pair_window"`

	// MinConfidence suppresses detections below this score.
	MinConfidence float64 `yaml:"min_confidence" mapstructure:"min_confidence"`
}

type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

type ReportConfig struct {
	Color bool `yaml:"color" mapstructure:"color"`
}

// Default returns the default configuration
func Default() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Detector: DetectorConfig{
			PairWindow:    2 * time.Second,
			MinConfidence: 0.5,
		},
		Store: StoreConfig{
			Path: filepath.Join(home, ".opqa", "suites.db"),
		},
		Report: ReportConfig{
			Color: true,
		},
	}
}

// Load reads configuration from file and environment.
// Precedence: environment variables > config file > defaults.
func Load(configPath string) (*Config, error) {
	// Pick up a local .env if present (ignore if missing)
	_ = godotenv.Load()

	v := viper.New()

	// Register defaults so every key is known to viper and can be
	// overridden from the environment.
	defaults := Default()
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("detector.pair_window", defaults.Detector.PairWindow)
	v.SetDefault("detector.min_confidence", defaults.Detector.MinConfidence)
	v.SetDefault("store.path", defaults.Store.Path)
	v.SetDefault("report.color", defaults.Report.Color)

	// Environment variables: OPQA_STORE_PATH, OPQA_DETECTOR_MIN_CONFIDENCE, ...
	v.SetEnvPrefix("OPQA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName("opqa")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".opqa"))
		}
		// A missing default config file is fine; defaults apply.
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
