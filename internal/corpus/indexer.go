package corpus

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/talentsift/talentsift/internal/embedding"
	"github.com/talentsift/talentsift/internal/vecindex"
	"go.uber.org/zap"
)

// Indexer populates the vector index from the source collections. It is the
// only component with a write side effect and is expected to run at process
// start, before search traffic. It is not safe to run concurrently with
// itself.
type Indexer struct {
	source   *Source
	embedder embedding.Embedder
	index    vecindex.Index
	logger   *zap.Logger
}

// NewIndexer creates an indexer. logger may be nil.
func NewIndexer(source *Source, embedder embedding.Embedder, index vecindex.Index, logger *zap.Logger) *Indexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Indexer{source: source, embedder: embedder, index: index, logger: logger}
}

// ReindexIfEmpty populates the vector index if and only if it holds no
// entries, and returns the number of documents indexed (0 when the index was
// already populated). Re-running against a non-empty index is a no-op, which
// makes it safe to call unconditionally at startup. A per-file failure is
// logged and skipped; the remaining files are still indexed.
func (ix *Indexer) ReindexIfEmpty(ctx context.Context) (int, error) {
	ids, err := ix.index.IDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("check index population: %w", err)
	}
	if len(ids) > 0 {
		ix.logger.Debug("vector index already populated", zap.Int("entries", len(ids)))
		return 0, nil
	}

	return ix.Reindex(ctx)
}

// Reindex embeds every corpus document and upserts it into the vector index,
// replacing any existing entries with the same ids. Returns the number of
// documents indexed.
func (ix *Indexer) Reindex(ctx context.Context) (int, error) {
	docs := ix.source.Documents(func(path string, err error) {
		ix.logger.Warn("skipping unreadable file", zap.String("path", path), zap.Error(err))
	})

	indexed := 0
	for _, doc := range docs {
		vec, err := ix.embedder.Embed(ctx, doc.Text)
		if err != nil {
			return indexed, fmt.Errorf("embed %s: %w", doc.ID, err)
		}
		if err := ix.index.Upsert(ctx, vecindex.Entry{
			ID:        doc.ID,
			Embedding: vec,
			Document:  doc.Text,
			Metadata:  doc.Metadata,
		}); err != nil {
			return indexed, fmt.Errorf("index %s: %w", doc.ID, err)
		}
		indexed++
	}
	ix.logger.Info("corpus indexed", zap.Int("documents", indexed))
	return indexed, nil
}

// IndexFile embeds and upserts a single corpus file, replacing any existing
// vector for its id. Used by the directory watcher for incremental updates.
func (ix *Indexer) IndexFile(ctx context.Context, path string) error {
	doc, err := ix.source.Read(path)
	if err != nil {
		return err
	}
	vec, err := ix.embedder.Embed(ctx, doc.Text)
	if err != nil {
		return fmt.Errorf("embed %s: %w", doc.ID, err)
	}
	if err := ix.index.Upsert(ctx, vecindex.Entry{
		ID:        doc.ID,
		Embedding: vec,
		Document:  doc.Text,
		Metadata:  doc.Metadata,
	}); err != nil {
		return fmt.Errorf("index %s: %w", doc.ID, err)
	}
	ix.logger.Debug("file indexed", zap.String("id", doc.ID))
	return nil
}

// RemoveFile drops the vector for a corpus file that no longer exists.
func (ix *Indexer) RemoveFile(ctx context.Context, path string) error {
	id := filepath.Base(path)
	if err := ix.index.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove %s: %w", id, err)
	}
	ix.logger.Debug("file removed from index", zap.String("id", id))
	return nil
}
