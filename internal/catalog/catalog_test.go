package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// stubProvider returns a fixed vector per text, keyed by text content.
type stubProvider struct {
	vectors map[string][]float32
	err     error
}

func (s *stubProvider) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if v, ok := s.vectors[t]; ok {
			out[i] = v
		} else {
			out[i] = []float32{0, 0, 1}
		}
	}
	return out, nil
}

func (s *stubProvider) Dimension() int { return 3 }

func TestLoad_Builtin(t *testing.T) {
	items := Builtin()
	if len(items) != 3 {
		t.Fatalf("builtin catalog has %d items, want 3", len(items))
	}

	cat, err := Load(context.Background(), items, &stubProvider{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.Len() != 3 {
		t.Fatalf("catalog length %d, want 3", cat.Len())
	}
	if len(cat.Vectors) != len(cat.Items) {
		t.Fatalf("vectors not index-aligned: %d vectors for %d items", len(cat.Vectors), len(cat.Items))
	}
}

func TestLoad_EmptyCatalog(t *testing.T) {
	cat, err := Load(context.Background(), nil, &stubProvider{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.Len() != 0 {
		t.Fatalf("catalog length %d, want 0", cat.Len())
	}
}

func TestLoad_ProviderFailureIsFatal(t *testing.T) {
	_, err := Load(context.Background(), Builtin(), &stubProvider{err: errors.New("provider down")})
	if err == nil {
		t.Fatal("expected error when provider fails")
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `[
		{
			"name": "Coding Skills Test",
			"url": "https://example.com/coding",
			"description": "Evaluates programming and debugging skills.",
			"remote_testing": "Yes",
			"adaptive_irt": "No",
			"duration": "40 minutes",
			"test_type": "Technical"
		}
	]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	items, err := ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Name != "Coding Skills Test" {
		t.Errorf("got name %q", items[0].Name)
	}
}

func TestReadFile_RejectsInvalidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	// remote_testing must be Yes or No; description is required.
	data := `[{"name": "X", "url": "https://example.com", "description": "", "remote_testing": "Maybe", "adaptive_irt": "No", "duration": "5 minutes", "test_type": "T"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadFile(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestReadFile_Missing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
