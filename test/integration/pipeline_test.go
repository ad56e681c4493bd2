// Package integration exercises the full corpus-to-ranking pipeline
// (filesystem corpus, embedding, vector index, search modes).
package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/talentsift/talentsift/internal/corpus"
	"github.com/talentsift/talentsift/internal/embedding"
	"github.com/talentsift/talentsift/internal/match"
	"github.com/talentsift/talentsift/internal/models"
	"github.com/talentsift/talentsift/internal/resolve"
	"github.com/talentsift/talentsift/internal/vecindex"
)

func TestIntegration_SearchPipeline(t *testing.T) {
	resumes := t.TempDir()
	originals := t.TempDir()
	files := map[string]string{
		"jane_doe_cleaned.txt":   "Jane Doe. Python developer with 6 years of experience. Masters in CS.",
		"john_smith_cleaned.txt": "John Smith. Gardener and florist.",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(resumes, name), []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(originals, "jane_doe.pdf"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	embedder := embedding.NewMockEmbedder(16)
	defer embedder.Close()
	index, err := vecindex.NewMemoryIndex(16)
	if err != nil {
		t.Fatal(err)
	}
	defer index.Close()

	source := &corpus.Source{ResumesDir: resumes}
	indexer := corpus.NewIndexer(source, embedder, index, nil)
	ctx := context.Background()
	if n, err := indexer.ReindexIfEmpty(ctx); err != nil || n != 2 {
		t.Fatalf("indexed %d, err %v", n, err)
	}

	ranker := match.NewRanker(embedder, index, resolve.NewResolver(originals), nil)

	t.Run("job description", func(t *testing.T) {
		resp, err := ranker.SearchJobDescription(ctx, models.JobDescriptionQuery{Text: "Python developer"})
		if err != nil {
			t.Fatal(err)
		}
		if len(resp.Results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(resp.Results))
		}
		top := resp.Results[0]
		if top.ID != "jane_doe_cleaned.txt" {
			t.Errorf("top = %q", top.ID)
		}
		if top.Artifact != "jane_doe.pdf" {
			t.Errorf("Artifact = %q", top.Artifact)
		}
		if top.DisplayName != "jane" {
			t.Errorf("DisplayName = %q", top.DisplayName)
		}
	})

	t.Run("skills", func(t *testing.T) {
		resp, err := ranker.SearchSkills(ctx, models.SkillQuery{Skills: []string{"python"}, MinYears: 5})
		if err != nil {
			t.Fatal(err)
		}
		if resp.Results[0].ID != "jane_doe_cleaned.txt" {
			t.Errorf("top = %q", resp.Results[0].ID)
		}
		if !resp.Results[0].Matched {
			t.Error("python resume should be a keyword match")
		}
	})

	t.Run("education", func(t *testing.T) {
		resp, err := ranker.SearchEducation(ctx, models.EducationQuery{Levels: []string{"masters"}})
		if err != nil {
			t.Fatal(err)
		}
		if resp.Results[0].ID != "jane_doe_cleaned.txt" {
			t.Errorf("top = %q", resp.Results[0].ID)
		}
	})

	t.Run("incremental update", func(t *testing.T) {
		path := filepath.Join(resumes, "new_hire_cleaned.txt")
		if err := os.WriteFile(path, []byte("Kubernetes platform engineer."), 0600); err != nil {
			t.Fatal(err)
		}
		if err := indexer.IndexFile(ctx, path); err != nil {
			t.Fatal(err)
		}
		if count, _ := index.Count(ctx); count != 3 {
			t.Errorf("count = %d, want 3", count)
		}
		if err := indexer.RemoveFile(ctx, path); err != nil {
			t.Fatal(err)
		}
		if count, _ := index.Count(ctx); count != 2 {
			t.Errorf("count = %d after removal, want 2", count)
		}
	})
}
