package reserved

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoaderLoadDefaultsOnly(t *testing.T) {
	codes, err := NewLoader("").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(codes) != len(Defaults) {
		t.Fatalf("Load() returned %d codes, want %d", len(codes), len(Defaults))
	}
	if !contains(codes, "healthz") || !contains(codes, "api") {
		t.Errorf("Load() = %v, missing built-in routes", codes)
	}
}

func TestLoaderLoadMergesFile(t *testing.T) {
	yamlPath := filepath.Join(t.TempDir(), "reserved.yaml")

	yamlContent := `---
reserved:
  - Admin
  - login
  - "  pricing  "
  - ""
`
	if err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	codes, err := NewLoader(yamlPath).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for _, want := range []string{"admin", "pricing", "login", "metrics"} {
		if !contains(codes, want) {
			t.Errorf("Load() missing %q in %v", want, codes)
		}
	}
	// login is in both lists
	if len(codes) != len(Defaults)+2 {
		t.Errorf("Load() returned %d codes, want %d", len(codes), len(Defaults)+2)
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	_, err := NewLoader("/nonexistent/path/reserved.yaml").Load()
	if err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestLoaderLoadInvalidYAML(t *testing.T) {
	yamlPath := filepath.Join(t.TempDir(), "reserved.yaml")
	if err := os.WriteFile(yamlPath, []byte("reserved: [unterminated"), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	if _, err := NewLoader(yamlPath).Load(); err == nil {
		t.Error("Load() with invalid yaml should return error")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "empty", input: nil, want: []string{}},
		{name: "lowercases and sorts", input: []string{"Zeta", "alpha"}, want: []string{"alpha", "zeta"}},
		{name: "dedupes case-insensitively", input: []string{"API", "api", " Api "}, want: []string{"api"}},
		{name: "drops blanks", input: []string{"", "   ", "x"}, want: []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("normalize(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
