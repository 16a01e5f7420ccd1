// Package config loads the application configuration: built-in defaults,
// overlaid by an optional YAML file, overlaid by environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file consulted when --config is not given.
const DefaultPath = "ordna.yaml"

// Redis configures the optional journal backend. An empty Addr selects the
// in-memory store.
type Redis struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// Backend configures how the filesystem tool server is launched. The
// working root is always appended as the final argument.
type Backend struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// Config is the merged application configuration.
type Config struct {
	// Root is the top-level allowed path; no action may target anything
	// outside it.
	Root string `yaml:"root"`

	// Target optionally pre-selects the directory to organize. When empty
	// the operator is prompted.
	Target string `yaml:"target"`

	Model    string        `yaml:"model"`
	BaseURL  string        `yaml:"base_url"`
	Cooldown time.Duration `yaml:"cooldown"`
	Listen   string        `yaml:"listen"`
	Debug    bool          `yaml:"debug"`

	Redis   Redis   `yaml:"redis"`
	Backend Backend `yaml:"backend"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Root:     "~",
		Model:    "llama3.2",
		BaseURL:  "http://127.0.0.1:11434",
		Cooldown: 65 * time.Second,
		Backend: Backend{
			Command: "npx",
			Args:    []string{"-y", "@modelcontextprotocol/server-filesystem"},
		},
	}
}

// Load merges defaults, the YAML file at path (if it exists), and the
// environment. A missing file at the default path is not an error; a file
// explicitly requested but unreadable is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file; defaults plus environment apply.
	default:
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment variables on the loaded values.
func (c *Config) applyEnv() {
	setString(&c.Root, "ORDNA_ROOT")
	setString(&c.Target, "ORDNA_TARGET")
	setString(&c.Model, "OLLAMA_MODEL")
	setString(&c.BaseURL, "OLLAMA_BASE_URL")
	setString(&c.Listen, "ORDNA_LISTEN")
	setString(&c.Redis.Addr, "ORDNA_REDIS_ADDR")
	setString(&c.Redis.Password, "ORDNA_REDIS_PASSWORD")

	if v, ok := os.LookupEnv("ORDNA_COOLDOWN"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.Cooldown = d
		}
	}
	if v, ok := os.LookupEnv("ORDNA_DEBUG"); ok {
		c.Debug = parseBool(v)
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// parseBool accepts the loose truthy spellings commonly found in .env files.
func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "yes":
		return true
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
