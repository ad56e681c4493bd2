package vecindex

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryIndex is an in-memory brute-force index. Suitable for tests and
// small corpora; a few thousand resumes scan in well under a millisecond.
type MemoryIndex struct {
	dimensions int
	entries    map[string]Entry
	mu         sync.RWMutex
}

// NewMemoryIndex creates an in-memory index with the given dimension.
func NewMemoryIndex(dimensions int) (*MemoryIndex, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	return &MemoryIndex{
		dimensions: dimensions,
		entries:    make(map[string]Entry),
	}, nil
}

// Upsert inserts or replaces the entry for entry.ID.
func (m *MemoryIndex) Upsert(_ context.Context, entry Entry) error {
	if len(entry.Embedding) != m.dimensions {
		return fmt.Errorf("vector dimension mismatch: got %d, expected %d", len(entry.Embedding), m.dimensions)
	}
	vec := make([]float32, m.dimensions)
	copy(vec, entry.Embedding)
	entry.Embedding = vec

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

// QueryNearest scans all entries and returns the k nearest by cosine
// distance (1 - dot product, vectors assumed normalized), ascending.
func (m *MemoryIndex) QueryNearest(_ context.Context, embedding []float32, k int, filter Filter) ([]Result, error) {
	if len(embedding) != m.dimensions {
		return nil, fmt.Errorf("query dimension mismatch: got %d, expected %d", len(embedding), m.dimensions)
	}
	if k <= 0 {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]Result, 0, len(m.entries))
	for _, e := range m.entries {
		if !matchesFilter(e.Metadata, filter) {
			continue
		}
		var dot float64
		for i := 0; i < m.dimensions; i++ {
			dot += float64(embedding[i]) * float64(e.Embedding[i])
		}
		results = append(results, Result{
			ID:       e.ID,
			Document: e.Document,
			Distance: 1 - dot,
			Metadata: e.Metadata,
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Distance < results[j].Distance })
	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// Delete removes the entry for id if present.
func (m *MemoryIndex) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// IDs returns all stored entry ids in unspecified order.
func (m *MemoryIndex) IDs(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	return ids, nil
}

// Count returns the number of stored entries.
func (m *MemoryIndex) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

// Close is a no-op.
func (m *MemoryIndex) Close() error { return nil }

func matchesFilter(metadata map[string]string, filter Filter) bool {
	for k, v := range filter {
		if metadata[k] != v {
			return false
		}
	}
	return true
}
