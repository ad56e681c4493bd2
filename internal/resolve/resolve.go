// Package resolve maps cleaned document ids back to original artifacts.
package resolve

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// artifactExtensions are the only original formats served to users.
var artifactExtensions = []string{".pdf", ".docx"}

var (
	vettedCleanedSuffix = regexp.MustCompile(`(?i)_vetted_cleaned$`)
	cleanedSuffix       = regexp.MustCompile(`(?i)_cleaned$`)
)

// Resolver finds the original artifact (.pdf/.docx) behind a cleaned,
// indexed document id by filename matching against a flat directory.
type Resolver struct {
	dir string
}

// NewResolver creates a resolver over the originals directory. The directory
// may be absent; resolution then always misses.
func NewResolver(dir string) *Resolver {
	return &Resolver{dir: dir}
}

// ResolveOriginal returns the filename of the original artifact for a
// cleaned document id, or "" when the directory does not exist or nothing
// matches. Candidate base names are tried in order of specificity (vetted
// suffix mapped back, generic "_cleaned" stripped, bare stem), with exact
// case-insensitive matches preferred over prefix matches, and earlier bases
// preferred over later ones.
func (r *Resolver) ResolveOriginal(documentID string) string {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return ""
	}
	var originals []string
	for _, e := range entries {
		if !e.IsDir() {
			originals = append(originals, e.Name())
		}
	}
	if len(originals) == 0 {
		return ""
	}

	bases := candidateBases(documentID)

	// Exact filename matches first, across all bases.
	for _, base := range bases {
		for _, ext := range artifactExtensions {
			candidate := strings.ToLower(base + ext)
			for _, orig := range originals {
				if strings.ToLower(orig) == candidate {
					return orig
				}
			}
		}
	}

	// Fall back to prefix matches restricted to artifact extensions.
	for _, base := range bases {
		baseLower := strings.ToLower(base)
		for _, orig := range originals {
			origLower := strings.ToLower(orig)
			ext := filepath.Ext(origLower)
			if ext != ".pdf" && ext != ".docx" {
				continue
			}
			stem := strings.TrimSuffix(origLower, ext)
			if strings.HasPrefix(stem, baseLower) {
				return orig
			}
		}
	}
	return ""
}

// candidateBases derives original base names from a cleaned id, most
// specific first. The cleaning pipeline appends "_vetted_cleaned" to
// artifacts originally tagged "_Vetted", and plain "_cleaned" otherwise.
func candidateBases(documentID string) []string {
	stem := strings.TrimSuffix(documentID, filepath.Ext(documentID))
	bases := []string{
		cleanedSuffix.ReplaceAllString(vettedCleanedSuffix.ReplaceAllString(stem, "_Vetted"), ""),
		vettedCleanedSuffix.ReplaceAllString(stem, ""),
		stem,
	}
	return bases
}
