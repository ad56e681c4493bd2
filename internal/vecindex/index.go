// Package vecindex provides the nearest-neighbor store for document vectors.
package vecindex

import (
	"context"
	"fmt"
)

// Entry is one persisted (id, vector, document, metadata) tuple. Exactly one
// entry exists per document id; Upsert replaces.
type Entry struct {
	ID        string
	Embedding []float32
	Document  string
	Metadata  map[string]string
}

// Result is one nearest-neighbor hit. Distance is cosine distance on
// normalized vectors: 0 = identical, larger = less similar.
type Result struct {
	ID       string
	Document string
	Distance float64
	Metadata map[string]string
}

// Filter restricts a query to entries whose metadata contains every given
// key/value pair. A nil or empty filter matches everything.
type Filter map[string]string

// Index stores document vectors and answers nearest-neighbor queries.
type Index interface {
	// Upsert inserts or replaces the entry for entry.ID.
	Upsert(ctx context.Context, entry Entry) error
	// QueryNearest returns up to k entries ordered by ascending distance,
	// optionally restricted by filter.
	QueryNearest(ctx context.Context, embedding []float32, k int, filter Filter) ([]Result, error)
	// Delete removes the entry for id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
	// IDs returns all stored entry ids.
	IDs(ctx context.Context) ([]string, error)
	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)
	Close() error
}

// Backend identifiers accepted by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// New creates an index of the given backend. For the redis backend, addr and
// password configure the connection and indexName names the FT index.
func New(backend string, dimensions int, addr, password, indexName string) (Index, error) {
	switch backend {
	case BackendMemory, "":
		return NewMemoryIndex(dimensions)
	case BackendRedis:
		return NewRedisIndex(RedisConfig{
			Addr:       addr,
			Password:   password,
			IndexName:  indexName,
			Dimensions: dimensions,
		})
	default:
		return nil, fmt.Errorf("unknown vector index backend: %s (supported: memory, redis)", backend)
	}
}
