// Package config loads the scenarist process settings.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// SCENARIST_* environment variables. Command flags are applied last by cmd/scenarist.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the YAML file loaded when no path is passed explicitly.
const EnvConfigFile = "SCENARIST_CONFIG"

// Config holds every setting shared by the serve, mcp and CLI commands.
type Config struct {
	Listen        string        `yaml:"listen" env:"SCENARIST_LISTEN"`
	StepsEndpoint string        `yaml:"steps_endpoint" env:"SCENARIST_STEPS_ENDPOINT"`
	Timeout       time.Duration `yaml:"timeout" env:"SCENARIST_TIMEOUT"`
	CatalogFile   string        `yaml:"catalog" env:"SCENARIST_CATALOG"`
	LogLevel      string        `yaml:"log_level" env:"SCENARIST_LOG_LEVEL"`
	Metrics       bool          `yaml:"metrics" env:"SCENARIST_METRICS"`

	Redis         Redis         `yaml:"redis" envPrefix:"SCENARIST_REDIS_"`
	Notifications Notifications `yaml:"notifications" envPrefix:"SCENARIST_NOTIFY_"`
}

// Redis configures the shared step index. An empty Addr keeps the index in memory.
type Redis struct {
	Addr     string        `yaml:"addr" env:"ADDR"`
	Password string        `yaml:"password" env:"PASSWORD"`
	DB       int           `yaml:"db" env:"DB"`
	Prefix   string        `yaml:"prefix" env:"PREFIX"`
	TTL      time.Duration `yaml:"ttl" env:"TTL"`
}

// Notifications configures the notification board.
type Notifications struct {
	TTL  time.Duration `yaml:"ttl" env:"TTL"`
	Fade time.Duration `yaml:"fade" env:"FADE"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Listen:        ":8080",
		StepsEndpoint: "",
		Timeout:       5 * time.Second,
		LogLevel:      "info",
		Metrics:       true,
		Redis: Redis{
			Prefix: "scenarist:",
		},
		Notifications: Notifications{
			TTL:  3 * time.Second,
			Fade: 300 * time.Millisecond,
		},
	}
}

// Load builds the configuration. An empty path falls back to $SCENARIST_CONFIG;
// a missing file is only an error when the path was given explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	var errs []error
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.Redis.DB < 0 {
		errs = append(errs, fmt.Errorf("redis db must not be negative, got %d", c.Redis.DB))
	}
	if c.Notifications.TTL <= 0 {
		errs = append(errs, fmt.Errorf("notification ttl must be positive, got %s", c.Notifications.TTL))
	}
	if c.Notifications.Fade < 0 {
		errs = append(errs, fmt.Errorf("notification fade must not be negative, got %s", c.Notifications.Fade))
	}
	return errors.Join(errs...)
}
