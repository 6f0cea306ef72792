// Package catalog holds the fixed set of recommendable assessments and
// their precomputed description embeddings.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/nidhogg/assessrec/internal/embedding"
)

// Item is one assessment in the catalog. Immutable after load.
type Item struct {
	Name            string `json:"name" validate:"required"`
	URL             string `json:"url" validate:"required"`
	Description     string `json:"description" validate:"required"`
	RemoteTesting   string `json:"remote_testing" validate:"oneof=Yes No"`
	AdaptiveSupport string `json:"adaptive_irt" validate:"oneof=Yes No"`
	Duration        string `json:"duration" validate:"required"`
	TestType        string `json:"test_type" validate:"required"`
}

// Catalog is the ordered item list plus index-aligned description
// embeddings. Read-only after Load, so concurrent readers need no
// locking.
type Catalog struct {
	Items   []Item
	Vectors [][]float32
}

// builtin is the compiled-in catalog, used when no catalog file is
// configured.
var builtin = []Item{
	{
		Name:            "General Ability Test",
		URL:             "https://www.shl.com/product/general-ability-test/",
		Description:     "Measures numerical, verbal, and logical reasoning abilities.",
		RemoteTesting:   "Yes",
		AdaptiveSupport: "Yes",
		Duration:        "30 minutes",
		TestType:        "Cognitive",
	},
	{
		Name:            "Sales Personality Questionnaire",
		URL:             "https://www.shl.com/product/sales-personality-questionnaire/",
		Description:     "Assesses personality traits important for success in sales roles.",
		RemoteTesting:   "Yes",
		AdaptiveSupport: "No",
		Duration:        "25 minutes",
		TestType:        "Personality",
	},
	{
		Name:            "Customer Service Simulation",
		URL:             "https://www.shl.com/product/customer-service-simulation/",
		Description:     "Simulates real-world scenarios to evaluate customer service skills.",
		RemoteTesting:   "Yes",
		AdaptiveSupport: "Yes",
		Duration:        "35 minutes",
		TestType:        "Simulation",
	},
}

// Builtin returns a copy of the compiled-in item list.
func Builtin() []Item {
	items := make([]Item, len(builtin))
	copy(items, builtin)
	return items
}

// ReadFile loads and validates a JSON catalog file: a top-level array
// of items.
func ReadFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}

	validate := validator.New()
	for i, item := range items {
		if err := validate.Struct(item); err != nil {
			return nil, fmt.Errorf("catalog: %s entry %d: %w", path, i, err)
		}
	}
	return items, nil
}

// Load embeds every item description through provider and returns the
// immutable catalog. Any embedding failure is returned as-is; the
// caller must treat it as fatal rather than serve a partial catalog.
func Load(ctx context.Context, items []Item, provider embedding.Provider) (*Catalog, error) {
	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.Description
	}

	vectors, err := provider.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("catalog: embed descriptions: %w", err)
	}
	if len(vectors) != len(items) {
		return nil, fmt.Errorf("catalog: got %d embeddings for %d items", len(vectors), len(items))
	}

	return &Catalog{Items: items, Vectors: vectors}, nil
}

// Len returns the number of catalog items.
func (c *Catalog) Len() int { return len(c.Items) }
