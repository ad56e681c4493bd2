// Package models defines core data structures for documents, queries, and match results.
package models

import "time"

// DocType classifies a corpus document.
type DocType string

const (
	// DocTypeResume is a cleaned resume text.
	DocTypeResume DocType = "resume"
	// DocTypeNote is an interview note.
	DocTypeNote DocType = "note"
)

// Document is a corpus document as loaded from a source collection.
// The ID is the source filename and is stable across re-indexing.
type Document struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Type     DocType           `json:"type"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// CandidateProfile holds structured signals parsed from an original artifact.
type CandidateProfile struct {
	ID              string    `json:"id"`
	DocumentID      string    `json:"document_id"`
	Email           string    `json:"email,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Skills          []string  `json:"skills"`
	Education       []string  `json:"education"`
	Experience      []string  `json:"experience"`
	YearsExperience int       `json:"years_experience"`
	RawText         string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
