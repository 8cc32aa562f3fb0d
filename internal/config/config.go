package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Config holds the application configuration
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Phone    PhoneConfig    `toml:"phone"`
	Audio    AudioConfig    `toml:"audio"`
	Log      LogConfig      `toml:"log"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string `toml:"path" validate:"required"`
}

// PhoneConfig selects the simulated handset
type PhoneConfig struct {
	Style          string `toml:"style" default:"android" validate:"oneof=android iphone"`
	RingTimeoutSec int    `toml:"ring_timeout_sec" validate:"gte=0,lte=600"`
	NoVibrate      bool   `toml:"no_vibrate"`
}

// AudioConfig selects the output backend and optional ringtone files
type AudioConfig struct {
	Backend         string  `toml:"backend" validate:"omitempty,oneof=pulse command noop"`
	Mute            bool    `toml:"mute"`
	Volume          float64 `toml:"volume" default:"0.5" validate:"gte=0,lte=1"` // 0 silences the ringtone
	AndroidRingtone string  `toml:"android_ringtone"`
	IPhoneRingtone  string  `toml:"iphone_ringtone"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `toml:"level" default:"info" validate:"oneof=debug info warn warning error"`
	Path  string `toml:"path"`
}

// MetricsConfig holds the optional Prometheus endpoint
type MetricsConfig struct {
	Addr string `toml:"addr" validate:"omitempty,hostname_port"`
}

// Dir returns the directory holding config, database and log files
func Dir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "callsim")
}

// Default returns the default configuration
func Default() *Config {
	cfg := &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(Dir(), "callsim.db"),
		},
		Log: LogConfig{
			Path: filepath.Join(Dir(), "callsim.log"),
		},
	}
	// Only static tag values here, cannot fail
	_ = defaults.Set(cfg)
	return cfg
}

// Load loads configuration from the standard location
func Load() (*Config, error) {
	return LoadFrom(filepath.Join(Dir(), "config.toml"))
}

// LoadFrom loads configuration from a specific path
func LoadFrom(configPath string) (*Config, error) {
	// Defaults are in place before decoding, so keys the file sets win,
	// zero values included.
	cfg := Default()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg.overrideFromEnv()
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}

	cfg.overrideFromEnv()

	cfg.Database.Path = expandPath(cfg.Database.Path)
	cfg.Log.Path = expandPath(cfg.Log.Path)
	cfg.Audio.AndroidRingtone = expandPath(cfg.Audio.AndroidRingtone)
	cfg.Audio.IPhoneRingtone = expandPath(cfg.Audio.IPhoneRingtone)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overrideFromEnv overrides config values with environment variables
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("CALLSIM_DB"); v != "" {
		c.Database.Path = expandPath(v)
	}
	if v := os.Getenv("CALLSIM_STYLE"); v != "" {
		c.Phone.Style = v
	}
	if v := os.Getenv("CALLSIM_AUDIO_BACKEND"); v != "" {
		c.Audio.Backend = v
	}
	if v := os.Getenv("CALLSIM_METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "config validation failed")
	}
	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// Save saves the configuration to the standard location
func (c *Config) Save() error {
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	return c.SaveTo(filepath.Join(Dir(), "config.toml"))
}

// SaveTo saves the configuration to a specific path
func (c *Config) SaveTo(configPath string) error {
	f, err := os.Create(configPath)
	if err != nil {
		return errors.Wrap(err, "creating config file")
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return errors.Wrap(err, "encoding config")
	}

	return nil
}
