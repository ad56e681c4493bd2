package profile

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/talentsift/talentsift/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "profiles.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleProfile(documentID string) *models.CandidateProfile {
	return &models.CandidateProfile{
		ID:              uuid.New().String(),
		DocumentID:      documentID,
		Email:           "jane@example.com",
		Phone:           "+1 415-555-0178",
		Skills:          []string{"Python", "Docker"},
		Education:       []string{"MSc, MIT"},
		Experience:      []string{"Engineer at Acme"},
		YearsExperience: 6,
		RawText:         "raw",
	}
}

func TestStoreSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := sampleProfile("jane_doe.txt")

	if err := s.Save(ctx, p); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetByDocument(ctx, "jane_doe.txt")
	if err != nil {
		t.Fatal(err)
	}
	if got.Email != p.Email || got.YearsExperience != 6 {
		t.Errorf("unexpected profile: %+v", got)
	}
	if len(got.Skills) != 2 || got.Skills[0] != "Python" {
		t.Errorf("skills round-trip failed: %v", got.Skills)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at must be set on save")
	}
}

func TestStoreSave_upsertByDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, sampleProfile("jane_doe.txt")); err != nil {
		t.Fatal(err)
	}
	updated := sampleProfile("jane_doe.txt")
	updated.YearsExperience = 9
	if err := s.Save(ctx, updated); err != nil {
		t.Fatal(err)
	}

	profiles, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile after upsert, got %d", len(profiles))
	}
	if profiles[0].YearsExperience != 9 {
		t.Errorf("YearsExperience = %d, want 9", profiles[0].YearsExperience)
	}
}

func TestStoreGet_notFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetByDocument(context.Background(), "absent.txt")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.Save(ctx, sampleProfile("jane_doe.txt")); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "jane_doe.txt"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetByDocument(ctx, "jane_doe.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	// Deleting a missing profile is not an error.
	if err := s.Delete(ctx, "jane_doe.txt"); err != nil {
		t.Errorf("second delete: %v", err)
	}
}
