package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/talentsift/talentsift/internal/models"
)

// ErrNotFound is returned when no profile matches the lookup.
var ErrNotFound = errors.New("profile not found")

// Store persists candidate profiles in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates a SQLite database at dbPath and initializes the
// schema. Parent directories are created if they do not exist.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		document_id TEXT NOT NULL UNIQUE,
		email TEXT,
		phone TEXT,
		skills TEXT,
		education TEXT,
		experience TEXT,
		years_experience INTEGER NOT NULL DEFAULT 0,
		raw_text TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_profiles_document_id ON profiles(document_id);
	`
	_, err := db.Exec(schema)
	return err
}

// Save inserts or replaces the profile for its document id.
func (s *Store) Save(ctx context.Context, p *models.CandidateProfile) error {
	skills, err := json.Marshal(p.Skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}
	education, err := json.Marshal(p.Education)
	if err != nil {
		return fmt.Errorf("marshal education: %w", err)
	}
	experience, err := json.Marshal(p.Experience)
	if err != nil {
		return fmt.Errorf("marshal experience: %w", err)
	}

	p.UpdatedAt = time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = p.UpdatedAt
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles
		   (id, document_id, email, phone, skills, education, experience, years_experience, raw_text, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(document_id) DO UPDATE SET
		   email=excluded.email, phone=excluded.phone, skills=excluded.skills,
		   education=excluded.education, experience=excluded.experience,
		   years_experience=excluded.years_experience, raw_text=excluded.raw_text,
		   updated_at=excluded.updated_at`,
		p.ID, p.DocumentID, p.Email, p.Phone, string(skills), string(education),
		string(experience), p.YearsExperience, p.RawText, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save profile %s: %w", p.DocumentID, err)
	}
	return nil
}

// GetByDocument returns the profile for a document id.
func (s *Store) GetByDocument(ctx context.Context, documentID string) (*models.CandidateProfile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, document_id, email, phone, skills, education, experience,
		        years_experience, raw_text, created_at, updated_at
		 FROM profiles WHERE document_id = ?`, documentID)
	return scanProfile(row)
}

// List returns all profiles ordered by creation time, newest first.
func (s *Store) List(ctx context.Context) ([]*models.CandidateProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, document_id, email, phone, skills, education, experience,
		        years_experience, raw_text, created_at, updated_at
		 FROM profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.CandidateProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Delete removes the profile for a document id. Deleting a missing profile
// is not an error.
func (s *Store) Delete(ctx context.Context, documentID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE document_id = ?`, documentID)
	if err != nil {
		return fmt.Errorf("delete profile %s: %w", documentID, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*models.CandidateProfile, error) {
	var p models.CandidateProfile
	var skills, education, experience string
	err := row.Scan(&p.ID, &p.DocumentID, &p.Email, &p.Phone, &skills, &education,
		&experience, &p.YearsExperience, &p.RawText, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	if err := json.Unmarshal([]byte(skills), &p.Skills); err != nil {
		return nil, fmt.Errorf("unmarshal skills: %w", err)
	}
	if err := json.Unmarshal([]byte(education), &p.Education); err != nil {
		return nil, fmt.Errorf("unmarshal education: %w", err)
	}
	if err := json.Unmarshal([]byte(experience), &p.Experience); err != nil {
		return nil, fmt.Errorf("unmarshal experience: %w", err)
	}
	return &p, nil
}
