package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Rotation RotationConfig `mapstructure:"rotation"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// CatalogConfig describes where product documents are fetched from
type CatalogConfig struct {
	URL       string   `mapstructure:"url"`       // Base URL serving the static JSON documents
	Countries []string `mapstructure:"countries"` // Per-country documents (products_<country>.json)
}

// RotationConfig is the public configuration surface of the image gallery
type RotationConfig struct {
	Enabled    bool `mapstructure:"enabled"`     // Global on/off switch
	IntervalMS int  `mapstructure:"interval_ms"` // Advance period in milliseconds
	ModalOnly  bool `mapstructure:"modal_only"`  // Rotate only inside the detail modal
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme           string `mapstructure:"theme"`
	RevealStaggerMS int    `mapstructure:"reveal_stagger_ms"` // Per-card reveal delay
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			URL:       "",
			Countries: []string{"serbia", "china"},
		},
		Rotation: RotationConfig{
			Enabled:    true,
			IntervalMS: 3000,
			ModalOnly:  true,
		},
		UI: UIConfig{
			Theme:           "default",
			RevealStaggerMS: 40,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "vitrina", "vitrina.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "vitrina", "vitrina.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "vitrina")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "vitrina")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("VITRINA")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("catalog.url", cfg.Catalog.URL)
	viper.Set("catalog.countries", cfg.Catalog.Countries)

	viper.Set("rotation.enabled", cfg.Rotation.Enabled)
	viper.Set("rotation.interval_ms", cfg.Rotation.IntervalMS)
	viper.Set("rotation.modal_only", cfg.Rotation.ModalOnly)

	viper.Set("ui.theme", cfg.UI.Theme)
	viper.Set("ui.reveal_stagger_ms", cfg.UI.RevealStaggerMS)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "vitrina", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "vitrina", "cache")
	}
}

// GetCachePath returns the cache directory path
func GetCachePath() string {
	return defaultCachePath()
}

// ConfigFilePath returns the path of the config file SaveConfig writes
func ConfigFilePath() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}
