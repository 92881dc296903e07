package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config carries everything the arbiter binary needs. Values come from an
// optional YAML file, then environment variables override field by field.
type Config struct {
	ListenAddr  string `yaml:"listen_addr"`
	RedisURL    string `yaml:"redis_url"`
	DatabaseURL string `yaml:"database_url"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogFile   string `yaml:"log_file"`
}

// Load reads the config file at path (skipped when path is empty) and applies
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ListenAddr: ":8090",
		LogLevel:   "info",
		LogFormat:  "console",
	}

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	override(&cfg.ListenAddr, "ARBITER_LISTEN_ADDR")
	override(&cfg.RedisURL, "ARBITER_REDIS_URL")
	override(&cfg.DatabaseURL, "ARBITER_DATABASE_URL")
	override(&cfg.LogLevel, "LOG_LEVEL")
	override(&cfg.LogFormat, "LOG_FORMAT")
	override(&cfg.LogFile, "LOG_FILE")

	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return nil, errors.New("listen_addr is required")
	}
	return cfg, nil
}

func override(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
