package reserved

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader reads the reserved codes file. An empty path means defaults only.
type Loader struct {
	filePath string
}

// NewLoader creates a new reserved codes loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load returns Defaults merged with the file contents, lowercased,
// deduplicated and sorted.
func (l *Loader) Load() ([]string, error) {
	codes := append([]string(nil), Defaults...)

	if l.filePath != "" {
		data, err := os.ReadFile(l.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read reserved file: %w", err)
		}

		var file File
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse reserved yaml: %w", err)
		}
		codes = append(codes, file.Reserved...)
	}

	return normalize(codes), nil
}

func normalize(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))

	for _, c := range codes {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}

	sort.Strings(out)
	return out
}
