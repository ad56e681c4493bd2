// Package corpus loads source documents and populates the vector index.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/talentsift/talentsift/internal/models"
)

// Source enumerates the two document collections: cleaned resumes and
// interview notes. A missing directory yields no documents, not an error.
type Source struct {
	ResumesDir string
	NotesDir   string
}

// Documents reads every regular file in both collections as UTF-8 text.
// Empty and whitespace-only files are skipped. A per-file read error is
// reported through onError (which may be nil) and does not abort the walk.
func (s *Source) Documents(onError func(path string, err error)) []models.Document {
	var docs []models.Document
	docs = append(docs, s.readDir(s.ResumesDir, models.DocTypeResume, onError)...)
	docs = append(docs, s.readDir(s.NotesDir, models.DocTypeNote, onError)...)
	return docs
}

// TypeOf reports the collection a file path belongs to. The second return
// is false when the path is under neither collection.
func (s *Source) TypeOf(path string) (models.DocType, bool) {
	dir := filepath.Dir(path)
	switch {
	case s.ResumesDir != "" && sameDir(dir, s.ResumesDir):
		return models.DocTypeResume, true
	case s.NotesDir != "" && sameDir(dir, s.NotesDir):
		return models.DocTypeNote, true
	}
	return "", false
}

// Read loads a single corpus file as a Document. Returns an error for files
// outside the collections or with empty content.
func (s *Source) Read(path string) (models.Document, error) {
	docType, ok := s.TypeOf(path)
	if !ok {
		return models.Document{}, fmt.Errorf("%s is not under a corpus directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return models.Document{}, fmt.Errorf("%s is empty", path)
	}
	name := filepath.Base(path)
	return models.Document{
		ID:   name,
		Text: text,
		Type: docType,
		Metadata: map[string]string{
			"type":     string(docType),
			"filename": name,
		},
	}, nil
}

func (s *Source) readDir(dir string, docType models.DocType, onError func(string, error)) []models.Document {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) && onError != nil {
			onError(dir, err)
		}
		return nil
	}
	var docs []models.Document
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			if onError != nil {
				onError(path, err)
			}
			continue
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			continue
		}
		docs = append(docs, models.Document{
			ID:   e.Name(),
			Text: text,
			Type: docType,
			Metadata: map[string]string{
				"type":     string(docType),
				"filename": e.Name(),
			},
		})
	}
	return docs
}

func sameDir(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	if err1 != nil || err2 != nil {
		return a == b
	}
	return aa == bb
}
