package profile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/talentsift/talentsift/internal/extract"
)

const sampleResume = `Jane Doe
jane.doe@example.com | +1 415-555-0178

Professional Experience
Senior Software Engineer at Acme Corp, 2018-2023
Data Analyst, Initech 2015-2018

Education
Master of Science, Computer Science, MIT

Skills: Python, Docker, PostgreSQL
`

func TestParse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jane_doe.txt")
	if err := os.WriteFile(path, []byte(sampleResume), 0600); err != nil {
		t.Fatal(err)
	}

	p := NewParser(extract.NewExtractor())
	asOf := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	prof, err := p.Parse(path, asOf)
	if err != nil {
		t.Fatal(err)
	}

	if prof.ID == "" {
		t.Error("profile id must be set")
	}
	if prof.DocumentID != "jane_doe.txt" {
		t.Errorf("DocumentID = %q", prof.DocumentID)
	}
	if prof.Email != "jane.doe@example.com" {
		t.Errorf("Email = %q", prof.Email)
	}
	if prof.Phone != "+1 415-555-0178" {
		t.Errorf("Phone = %q", prof.Phone)
	}
	wantSkills := map[string]bool{"Python": true, "Docker": true, "Postgresql": true}
	for _, s := range prof.Skills {
		delete(wantSkills, s)
	}
	if len(wantSkills) != 0 {
		t.Errorf("missing skills %v in %v", wantSkills, prof.Skills)
	}
	if len(prof.Education) == 0 {
		t.Error("expected education lines")
	}
	if len(prof.Experience) == 0 {
		t.Error("expected experience lines")
	}
	// Two closed ranges: 2018-2023 and 2015-2018, summed.
	if prof.YearsExperience != 8 {
		t.Errorf("YearsExperience = %d, want 8", prof.YearsExperience)
	}
	if prof.CreatedAt.IsZero() || prof.UpdatedAt.IsZero() {
		t.Error("timestamps must be set")
	}
}

func TestParse_emptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(path, []byte("   \n"), 0600); err != nil {
		t.Fatal(err)
	}
	p := NewParser(extract.NewExtractor())
	if _, err := p.Parse(path, time.Now()); err == nil {
		t.Error("expected error for empty artifact")
	}
}

func TestCleanText(t *testing.T) {
	got := cleanText("  Jane\t Doe\n jane@x.com  (415) 555-0178! #ref  ")
	want := "Jane Doe jane@x.com (415) 555-0178 ref"
	if got != want {
		t.Errorf("cleanText = %q, want %q", got, want)
	}
}
