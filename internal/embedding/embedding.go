// Package embedding turns text into fixed-length vectors via an external
// embedding model reached over HTTP.
package embedding

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Provider generates vector embeddings from text.
//
// Implementations must be safe for concurrent use; the server shares a
// single Provider across all in-flight requests.
type Provider interface {
	// Embed returns one vector per input text, index-aligned with texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	// Dimension returns the vector dimensionality, once known.
	Dimension() int
}

// Config selects and configures a Provider.
type Config struct {
	Provider  string `json:"provider"` // "api" or "local"
	Endpoint  string `json:"endpoint"`
	Model     string `json:"model"`
	APIKey    string `json:"api_key"`
	Dimension int    `json:"dimension"`
	TimeoutMS int    `json:"timeout_ms"`
}

const defaultTimeout = 30 * time.Second

// New builds a Provider from cfg.
func New(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "api", "":
		return NewAPIProvider(cfg), nil
	case "local":
		return NewLocalProvider(cfg), nil
	default:
		return nil, fmt.Errorf("embedding: unknown provider %q", cfg.Provider)
	}
}

func newHTTPClient(cfg Config) *http.Client {
	timeout := defaultTimeout
	if cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return &http.Client{Timeout: timeout}
}
