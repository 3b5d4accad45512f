// ABOUTME: Configuration for the notebook: storage, undo window, calendar layout.
// ABOUTME: Loaded with viper from XDG config paths with NOTEBOOK_ env overrides.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Backend    string        `mapstructure:"backend" validate:"oneof=badger sqlite charm"`
	DataDir    string        `mapstructure:"data_dir" validate:"required"`
	Codec      string        `mapstructure:"codec" validate:"oneof=json cbor"`
	StorageKey string        `mapstructure:"storage_key" validate:"required"`
	UndoWindow time.Duration `mapstructure:"undo_window" validate:"gt=0"`
	WeekStart  string        `mapstructure:"week_start" validate:"oneof=sunday monday"`
	LogLevel   string        `mapstructure:"log_level" validate:"oneof=trace debug info warn error disabled"`
	Charm      CharmConfig   `mapstructure:"charm"`
}

// CharmConfig configures the charm backend. An empty Host uses the charm
// default server. A zero StaleThreshold disables sync-before-read.
type CharmConfig struct {
	Host           string        `mapstructure:"host"`
	DB             string        `mapstructure:"db" validate:"required"`
	AutoSync       bool          `mapstructure:"auto_sync"`
	StaleThreshold time.Duration `mapstructure:"stale_threshold" validate:"gte=0"`
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "notebook")
}

// DataDir returns the default data directory path.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "notebook")
}

// ConfigPath returns the path of the default config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend", "badger")
	v.SetDefault("data_dir", DataDir())
	v.SetDefault("codec", "json")
	v.SetDefault("storage_key", "pages")
	v.SetDefault("undo_window", "5s")
	v.SetDefault("week_start", "sunday")
	v.SetDefault("log_level", "warn")
	v.SetDefault("charm.host", "")
	v.SetDefault("charm.db", "notebook")
	v.SetDefault("charm.auto_sync", true)
	v.SetDefault("charm.stale_threshold", "0s")
}

// Load reads configFile, or config.yaml from the working directory and the
// XDG config directory when configFile is empty. A missing file is not an
// error; defaults and environment variables still apply.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir())
	}

	setDefaults(v)

	v.SetEnvPrefix("NOTEBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.Codec = strings.ToLower(strings.TrimSpace(cfg.Codec))
	cfg.WeekStart = strings.ToLower(strings.TrimSpace(cfg.WeekStart))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg as YAML to path, creating the directory.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("backend", cfg.Backend)
	v.Set("data_dir", cfg.DataDir)
	v.Set("codec", cfg.Codec)
	v.Set("storage_key", cfg.StorageKey)
	v.Set("undo_window", cfg.UndoWindow.String())
	v.Set("week_start", cfg.WeekStart)
	v.Set("log_level", cfg.LogLevel)
	v.Set("charm.host", cfg.Charm.Host)
	v.Set("charm.db", cfg.Charm.DB)
	v.Set("charm.auto_sync", cfg.Charm.AutoSync)
	v.Set("charm.stale_threshold", cfg.Charm.StaleThreshold.String())

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Chmod(path, 0600)
}
