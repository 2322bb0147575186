package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config mirrors gloudx-ues-lite/datastore/api/api.go's server Config
// struct: a flat, tag-decoded options bag with sane zero-value defaults,
// here loaded from YAML instead of constructed in Go and serialized to
// JSON for a query string.
type Config struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	ReadTimeout        time.Duration `yaml:"read_timeout"`
	WriteTimeout       time.Duration `yaml:"write_timeout"`
	IdleTimeout        time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
	RateLimitPerSecond float64       `yaml:"rate_limit_per_second"`
	RateLimitBurst     int           `yaml:"rate_limit_burst"`
	MaxBlockSize       int64         `yaml:"max_block_size"`
	EnableMetrics      bool          `yaml:"enable_metrics"`
}

func defaultConfig() Config {
	return Config{
		Host:               "127.0.0.1",
		Port:               8080,
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       10 * time.Second,
		IdleTimeout:        60 * time.Second,
		ShutdownTimeout:    5 * time.Second,
		RateLimitPerSecond: 200,
		RateLimitBurst:     50,
		MaxBlockSize:       1 << 20, // 1 MiB
		EnableMetrics:      true,
	}
}

// loadConfig reads a YAML file at path, falling back to defaultConfig for
// every field the file doesn't set. An empty path returns the defaults
// unchanged.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
