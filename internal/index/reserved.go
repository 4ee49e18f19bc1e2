package index

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// ReservedIndex holds the reserved short codes in memory.
// Lookups are case-insensitive and safe for concurrent use.
type ReservedIndex struct {
	mu         sync.RWMutex
	codes      map[string]struct{}
	lastReload time.Time
}

// NewReservedIndex creates an index seeded with codes.
func NewReservedIndex(codes ...string) *ReservedIndex {
	idx := &ReservedIndex{
		codes: make(map[string]struct{}),
	}
	if len(codes) > 0 {
		idx.Update(codes)
	}
	return idx
}

// Update replaces all codes in the index
func (idx *ReservedIndex) Update(codes []string) {
	next := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			next[c] = struct{}{}
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.codes = next
	idx.lastReload = time.Now()
}

// IsReserved reports whether code may not be used as a short code.
func (idx *ReservedIndex) IsReserved(code string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	_, ok := idx.codes[strings.ToLower(code)]
	return ok
}

// All returns the reserved codes, sorted
func (idx *ReservedIndex) All() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]string, 0, len(idx.codes))
	for c := range idx.codes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of reserved codes
func (idx *ReservedIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.codes)
}

// GetLastReload returns the timestamp of the last reload
func (idx *ReservedIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
