package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the admin console configuration. Values come from the
// yaml file first, then environment variables override.
type Config struct {
	API struct {
		BaseURL              string `yaml:"base_url"`
		TimeoutSeconds       int    `yaml:"timeout_seconds"`
		ProbeIntervalSeconds int    `yaml:"probe_interval_seconds"`
	} `yaml:"api"`
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.API.BaseURL = "http://localhost:8080"
	cfg.API.TimeoutSeconds = 30
	cfg.API.ProbeIntervalSeconds = 2
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.API.BaseURL = getEnv("NB_API_BASE_URL", cfg.API.BaseURL)
	cfg.API.TimeoutSeconds = getEnvAsInt("NB_API_TIMEOUT_SECONDS", cfg.API.TimeoutSeconds)
	cfg.API.ProbeIntervalSeconds = getEnvAsInt("NB_API_PROBE_INTERVAL_SECONDS", cfg.API.ProbeIntervalSeconds)

	return cfg, nil
}

func (c *Config) timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

func (c *Config) probeInterval() time.Duration {
	return time.Duration(c.API.ProbeIntervalSeconds) * time.Second
}
