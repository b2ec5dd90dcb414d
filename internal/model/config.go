package model

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// SMTPConfig holds outbound mail settings for the email channel.
// The account password lives in the system keyring, not the config file.
type SMTPConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	From     string `mapstructure:"from" yaml:"from"`
	To       string `mapstructure:"to" yaml:"to"`
}

// WebhookConfig holds the endpoints the push and SMS adapters POST to.
// Bearer tokens live in the system keyring.
type WebhookConfig struct {
	PushURL string `mapstructure:"push_url" yaml:"push_url"`
	SMSURL  string `mapstructure:"sms_url" yaml:"sms_url"`
}

// AdvisoryConfig points at an external advisory feed that is imported
// as auto-generated warnings. Disabled when the URL is empty.
type AdvisoryConfig struct {
	URL    string `mapstructure:"url" yaml:"url"`
	Region string `mapstructure:"region" yaml:"region"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme              string `mapstructure:"theme" yaml:"theme"`
	RefreshIntervalSec int    `mapstructure:"refresh_interval_sec" yaml:"refresh_interval_sec"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// DBPath is the SQLite database location.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	// Timezone is the IANA zone name used for due-date evaluation
	// ("Local" when empty).
	Timezone string `mapstructure:"timezone" yaml:"timezone"`

	// Actor is the name written to history records for user actions.
	Actor string `mapstructure:"actor" yaml:"actor"`

	Display    DisplayConfig  `mapstructure:"display" yaml:"display"`
	SMTP       SMTPConfig     `mapstructure:"smtp" yaml:"smtp"`
	Webhooks   WebhookConfig  `mapstructure:"webhooks" yaml:"webhooks"`
	Advisories AdvisoryConfig `mapstructure:"advisories" yaml:"advisories"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/farmdash/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "farmdash", "config.yaml")
}

// DefaultDBPath returns the default SQLite database path,
// located at ~/.local/share/farmdash/farmdash.db.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "farmdash.db")
	}
	return filepath.Join(home, ".local", "share", "farmdash", "farmdash.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		DBPath:   DefaultDBPath(),
		Timezone: "Local",
		Actor:    "farm manager",
		Display: DisplayConfig{
			Theme:              "default",
			RefreshIntervalSec: 60,
		},
		SMTP: SMTPConfig{Port: 587},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("db_path", DefaultDBPath())
	v.SetDefault("timezone", "Local")
	v.SetDefault("actor", "farm manager")
	v.SetDefault("display.theme", "default")
	v.SetDefault("display.refresh_interval_sec", 60)
	v.SetDefault("smtp.port", 587)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("db_path", cfg.DBPath)
	v.Set("timezone", cfg.Timezone)
	v.Set("actor", cfg.Actor)
	v.Set("display", cfg.Display)
	v.Set("smtp", cfg.SMTP)
	v.Set("webhooks", cfg.Webhooks)
	v.Set("advisories", cfg.Advisories)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

// Location resolves the configured timezone, falling back to time.Local
// when the zone is empty, "Local", or unparseable.
func (c *AppConfig) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
