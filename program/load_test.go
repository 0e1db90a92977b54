package program

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "program.json", `{
  "day": "2025-03-01",
  "showings": [
    {"title": "The Long Voyage", "genre": "Drama", "room": "1", "start": "10:00", "end": "12:00"},
    {"title": "Iron Meridian", "genre": "Action", "room": "2", "start": "2025-03-01T12:30:00Z", "end": "2025-03-01T14:00:00Z"}
  ]
}`)
	showings, err := Load(path, time.Now(), time.UTC)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(showings) != 2 {
		t.Fatalf("expected 2 showings, got %d", len(showings))
	}
	// The document's day wins over the caller-provided one.
	want := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	if !showings[0].Start.Equal(want) {
		t.Fatalf("start = %s, want %s", showings[0].Start, want)
	}
	if !showings[1].Start.Equal(time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)) {
		t.Fatalf("rfc3339 start = %s", showings[1].Start)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "program.yaml", `day: 2025-03-01
showings:
  - title: Glass Harbor
    genre: Drama
    room: "2"
    start: "11:00"
    end: "13:00"
`)
	showings, err := Load(path, time.Now(), time.UTC)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(showings) != 1 || showings[0].Title != "Glass Harbor" {
		t.Fatalf("unexpected showings: %+v", showings)
	}
}

func TestLoadHTML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "program.html", programPage)
	showings, err := Load(path, testDay(), time.UTC)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(showings) != 3 {
		t.Fatalf("expected 3 showings, got %d", len(showings))
	}
}

func TestLoadDateAndClockForm(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "program.json", `{
  "showings": [
    {"title": "Dawn Patrol", "genre": "Drama", "room": "1", "start": "2025-03-01 09:00", "end": "2025-03-01 10:30"}
  ]
}`)
	showings, err := Load(path, time.Now(), time.UTC)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	if !showings[0].Start.Equal(want) {
		t.Fatalf("start = %s, want %s", showings[0].Start, want)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "program.txt", "not a program")
	if _, err := Load(path, time.Now(), time.UTC); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.html"), time.Now(), time.UTC); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLatestFile(t *testing.T) {
	dir := t.TempDir()
	old := writeFile(t, dir, "program-old.html", programPage)
	newest := writeFile(t, dir, "program-new.html", programPage)
	writeFile(t, dir, "notes.txt", "ignore me")

	base := time.Now().Add(-time.Hour)
	if err := os.Chtimes(old, base, base); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := os.Chtimes(newest, base.Add(30*time.Minute), base.Add(30*time.Minute)); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	got, err := LatestFile(dir, "program-*.html")
	if err != nil {
		t.Fatalf("LatestFile: %v", err)
	}
	if got != newest {
		t.Fatalf("LatestFile = %s, want %s", got, newest)
	}
}

func TestLatestFileNoMatch(t *testing.T) {
	if _, err := LatestFile(t.TempDir(), "*.html"); err == nil {
		t.Fatal("expected error when nothing matches")
	}
}
