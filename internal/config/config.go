package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 2330
	defaultEnv        = "development"
	defaultDSN        = "root:password@tcp(127.0.0.1:3306)/ai_summary?charset=utf8mb4&parseTime=True&loc=Local"
	defaultRedisURL   = "redis://localhost:6379/0"
)

// AppConfig holds runtime startup configuration loaded from YAML.
// Everything an administrator can change at runtime (provider, API key, model,
// language, …) lives in the settings module instead.
type AppConfig struct {
	Port           int      `yaml:"port"`
	DSN            string   `yaml:"dsn"` // MySQL DSN
	RedisURL       string   `yaml:"redis_url"`
	Env            string   `yaml:"env"` // "development" | "production"
	AllowedOrigins []string `yaml:"allowed_origins"`
	JWTSecret      string   `yaml:"jwt_secret"`
	AdminKey       string   `yaml:"admin_key"`
}

// Load reads and validates the YAML config file.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg := defaultAppConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d in %q, expected 1-65535", cfg.Port, path)
	}
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("dsn is required in %q", path)
	}
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return nil, fmt.Errorf("redis_url is required in %q", path)
	}
	if strings.TrimSpace(cfg.AdminKey) == "" {
		return nil, fmt.Errorf("admin_key is required in %q", path)
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port:     defaultPort,
		Env:      defaultEnv,
		DSN:      defaultDSN,
		RedisURL: defaultRedisURL,
	}
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development")
}
