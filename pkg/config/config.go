// Package config provides configuration management for the library system.
package config

import (
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/Vishu-0105/Library-Testing-System/pkg/errors"
)

// Config holds the runtime configuration for the library service
type Config struct {
	ServerPort int    `json:"server_port" yaml:"server_port" mapstructure:"server_port" validate:"required,min=1,max=65535"`
	LogLevel   string `json:"log_level" yaml:"log_level" mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// DatabasePath is the SQLite file backing the directory, catalog and
	// inquiry stores. ":memory:" keeps everything volatile.
	DatabasePath string `json:"database_path" yaml:"database_path" mapstructure:"database_path" validate:"required"`

	// Session token signing and lifetime
	JWTSecret          string        `json:"jwt_secret" yaml:"jwt_secret" mapstructure:"jwt_secret" validate:"required,min=16"`
	SessionTTL         time.Duration `json:"session_ttl" yaml:"session_ttl" mapstructure:"session_ttl" validate:"required"`
	ExtendedSessionTTL time.Duration `json:"extended_session_ttl" yaml:"extended_session_ttl" mapstructure:"extended_session_ttl" validate:"required"`

	// FailedLoginDelay is imposed on every failed credential check
	FailedLoginDelay time.Duration `json:"failed_login_delay" yaml:"failed_login_delay" mapstructure:"failed_login_delay"`

	// ActivityCapacity bounds the in-memory activity ring
	ActivityCapacity int `json:"activity_capacity" yaml:"activity_capacity" mapstructure:"activity_capacity" validate:"required,min=1"`
}

// DefaultConfig returns a configuration suitable for local runs
func DefaultConfig() *Config {
	return &Config{
		ServerPort:         5000,
		LogLevel:           "info",
		DatabasePath:       "./data/library.db",
		JWTSecret:          "",
		SessionTTL:         8 * time.Hour,
		ExtendedSessionTTL: 30 * 24 * time.Hour,
		FailedLoginDelay:   2 * time.Second,
		ActivityCapacity:   1024,
	}
}

// Validate checks the configuration against its constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.NewConfigError(err.Error())
	}
	if c.ExtendedSessionTTL < c.SessionTTL {
		return errors.NewConfigError("extended_session_ttl must not be shorter than session_ttl")
	}
	return nil
}

// Manager loads configuration from files and the environment and can watch
// the backing file for changes.
type Manager struct {
	mu    sync.RWMutex
	viper *viper.Viper
	cfg   *Config
}

// NewManager creates a configuration manager seeded with defaults
func NewManager() *Manager {
	v := viper.New()
	v.SetEnvPrefix("LIBRARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("server_port", defaults.ServerPort)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("database_path", defaults.DatabasePath)
	v.SetDefault("session_ttl", defaults.SessionTTL)
	v.SetDefault("extended_session_ttl", defaults.ExtendedSessionTTL)
	v.SetDefault("failed_login_delay", defaults.FailedLoginDelay)
	v.SetDefault("activity_capacity", defaults.ActivityCapacity)

	return &Manager{viper: v, cfg: defaults}
}

// Load reads the optional config file, merges environment overrides and
// validates the result. Path may be empty.
func (m *Manager) Load(path string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if path != "" {
		m.viper.SetConfigFile(path)
		if err := m.viper.ReadInConfig(); err != nil {
			return nil, errors.NewWithCause(errors.ErrCodeConfigError, "failed to read config file", err)
		}
	}

	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return nil, errors.NewWithCause(errors.ErrCodeConfigError, "failed to unmarshal config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m.cfg = cfg
	return cfg, nil
}

// Current returns the most recently loaded configuration
func (m *Manager) Current() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Watch re-reads the config file on change and invokes the callback with
// the new configuration. Invalid updates are dropped and the previous
// configuration stays in effect.
func (m *Manager) Watch(callback func(*Config)) {
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		m.mu.Lock()
		defer m.mu.Unlock()

		cfg := &Config{}
		if err := m.viper.Unmarshal(cfg); err != nil {
			return
		}
		if err := cfg.Validate(); err != nil {
			return
		}

		m.cfg = cfg
		if callback != nil {
			callback(cfg)
		}
	})
	m.viper.WatchConfig()
}
