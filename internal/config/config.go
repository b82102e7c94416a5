// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/codr1/themesmith/internal/harmony"
)

const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

type GeneratorConfig struct {
	DefaultHarmony  string `yaml:"default_harmony"`
	DefaultIndustry string `yaml:"default_industry"`
}

type BackupConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Schedule  string `yaml:"schedule"`
	Directory string `yaml:"directory"`
}

type RateLimitConfig struct {
	Enabled         bool `yaml:"enabled"`
	RequestsPerHour int  `yaml:"requests_per_hour"`
	TrustProxy      bool `yaml:"trust_proxy"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`

	Features struct {
		EnableMetrics bool `yaml:"enable_metrics"`
		EnableDebug   bool `yaml:"enable_debug"`
	} `yaml:"features"`

	Generator GeneratorConfig `yaml:"generator"`

	Backup BackupConfig `yaml:"backup"`

	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// Load loads both .env and yaml configuration. An empty configPath uses the
// defaults and a .env in the working directory.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := ".env"
	if configPath != "" {
		envPath = filepath.Join(filepath.Dir(configPath), ".env")
	}
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := Default()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if cfg, err = Parse(data); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML on top of the defaults without validating.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

// Default returns a development configuration backed by an in-memory store.
func Default() *Config {
	cfg := &Config{}
	cfg.App.Name = "themesmith"
	cfg.App.Environment = "development"
	cfg.App.Port = 8080
	cfg.Database.Driver = DriverMemory
	cfg.Generator.DefaultHarmony = string(harmony.Complementary)
	cfg.Generator.DefaultIndustry = "Custom"
	cfg.Backup.Schedule = "0 3 * * *"
	cfg.Backup.Directory = "backups"
	cfg.RateLimit.RequestsPerHour = 120
	return cfg
}

func (c *Config) applyEnv() error {
	if port := os.Getenv("THEMESMITH_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid THEMESMITH_PORT %q: %w", port, err)
		}
		c.App.Port = p
	}
	if filename := os.Getenv("DATABASE_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "" || c.App.Environment == "development"
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("app port must be between 1 and 65535")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if _, ok := harmony.ParseKind(c.Generator.DefaultHarmony); !ok {
		return fmt.Errorf("unknown default harmony: %s", c.Generator.DefaultHarmony)
	}

	if c.RateLimit.Enabled && c.RateLimit.RequestsPerHour <= 0 {
		return fmt.Errorf("rate limit requests_per_hour must be positive")
	}

	if c.Backup.Enabled {
		if strings.TrimSpace(c.Backup.Directory) == "" {
			return fmt.Errorf("backup directory is required when backups are enabled")
		}
		if _, err := cron.ParseStandard(c.Backup.Schedule); err != nil {
			return fmt.Errorf("invalid backup schedule %q: %w", c.Backup.Schedule, err)
		}
		if c.Database.Driver == DriverMemory {
			return fmt.Errorf("backups require a persistent database driver")
		}
	}

	return nil
}
