// Package config loads the service configuration from a JSON file with
// environment variable substitution.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

// Config is the top-level configuration structure.
type Config struct {
	Server    ServerConfig    `json:"server"`
	Embedding EmbeddingConfig `json:"embedding"`
	Catalog   CatalogConfig   `json:"catalog"`
	Fetch     FetchConfig     `json:"fetch"`
}

type ServerConfig struct {
	Port     int    `json:"port"`
	LogLevel string `json:"log_level"`
}

type EmbeddingConfig struct {
	Provider  string `json:"provider"`
	Endpoint  string `json:"endpoint"`
	Model     string `json:"model"`
	APIKey    string `json:"api_key"`
	Dimension int    `json:"dimension"`
	TimeoutMS int    `json:"timeout_ms"`
}

type CatalogConfig struct {
	// Path points at an optional JSON catalog file. Empty means the
	// compiled-in catalog.
	Path string `json:"path"`
}

type FetchConfig struct {
	TimeoutSeconds int `json:"timeout_seconds"`
	MaxParagraphs  int `json:"max_paragraphs"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, LogLevel: "info"},
		Embedding: EmbeddingConfig{
			Provider: "local",
			Endpoint: "http://localhost:11434",
			Model:    "all-minilm",
		},
		Fetch: FetchConfig{TimeoutSeconds: 5, MaxParagraphs: 5},
	}
}

// envVarRe matches ${VAR} and ${VAR:default} patterns.
var envVarRe = regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

// Load reads a JSON config file and substitutes environment variable
// references. An empty path returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	// Substitute ${VAR} and ${VAR:default} with environment values.
	resolved := envVarRe.ReplaceAllStringFunc(string(data), func(match string) string {
		parts := envVarRe.FindStringSubmatch(match)
		name := parts[1]
		defaultVal := parts[2]
		if v := os.Getenv(name); v != "" {
			return v
		}
		return defaultVal
	})

	cfg := Default()
	if err := json.Unmarshal([]byte(resolved), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
