package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// APIProvider implements Provider against an OpenAI-compatible
// embeddings endpoint. Texts are embedded in a single batched request.
type APIProvider struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client

	mu  sync.Mutex
	dim int
}

// NewAPIProvider creates an APIProvider from cfg.
func NewAPIProvider(cfg Config) *APIProvider {
	return &APIProvider{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		client:   newHTTPClient(cfg),
		dim:      cfg.Dimension,
	}
}

type apiRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type apiResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed posts all texts to the endpoint and returns the vectors in order.
func (p *APIProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(apiRequest{Model: p.model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("embedding: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("embedding: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embedding: API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("embedding: decode response: %w", err)
	}
	if len(result.Data) != len(texts) {
		return nil, fmt.Errorf("embedding: got %d vectors for %d texts", len(result.Data), len(texts))
	}

	vectors := make([][]float32, len(result.Data))
	for i, d := range result.Data {
		vectors[i] = d.Embedding
	}
	p.observeDimension(vectors)
	return vectors, nil
}

// Dimension returns the dimension seen on the first successful call,
// falling back to the configured value.
func (p *APIProvider) Dimension() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dim
}

func (p *APIProvider) observeDimension(vectors [][]float32) {
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return
	}
	p.mu.Lock()
	p.dim = len(vectors[0])
	p.mu.Unlock()
}
