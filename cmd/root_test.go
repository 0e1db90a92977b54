package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/kuhyx/kinoplan/pkg/export"
)

const testProgram = `{
  "day": "2025-03-01",
  "showings": [
    {"title": "The Long Voyage", "genre": "Drama", "room": "1", "start": "10:00", "end": "12:00"},
    {"title": "Glass Harbor", "genre": "Drama", "room": "2", "start": "11:00", "end": "13:00"},
    {"title": "Iron Meridian", "genre": "Action", "room": "1", "start": "12:30", "end": "14:00"}
  ]
}`

// resetFlags clears flag values and parse state left over from previous
// executions, so each test starts from the defaults.
func resetFlags(t *testing.T) {
	t.Helper()
	cfgPath, scheduleFile, programDir = "", "", ""
	excludes, excludeGenres = nil, nil
	allGenres, asJSON, asCSV, noColor = false, false, false, false
	bufferMin, maxSchedules, workers = 0, 0, 0
	mustWatch, metricsListen = "", ""
	for _, fs := range []*pflag.FlagSet{
		rootCmd.Flags(), rootCmd.PersistentFlags(), showsCmd.Flags(),
	} {
		fs.Visit(func(f *pflag.Flag) { f.Changed = false })
	}
}

func writeProgram(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.json")
	if err := os.WriteFile(path, []byte(testProgram), 0o644); err != nil {
		t.Fatalf("write program: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootPlansJSON(t *testing.T) {
	out, err := execute(t, "-f", writeProgram(t), "--json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var rows []export.Row
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	best := rows[0]
	if best.Rank != 1 || len(best.Showings) != 2 {
		t.Fatalf("unexpected best row: %+v", best)
	}
	if best.Showings[0].Title != "The Long Voyage" || best.Showings[1].Title != "Iron Meridian" {
		t.Fatalf("unexpected best chain: %+v", best.Showings)
	}
}

func TestRootPlansCSV(t *testing.T) {
	out, err := execute(t, "-f", writeProgram(t), "--csv")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	recs, err := csv.NewReader(bytes.NewReader([]byte(out))).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v\n%s", err, out)
	}
	if len(recs) != 4 {
		t.Fatalf("csv records = %d, want 4", len(recs))
	}
}

func TestRootExcludeFlag(t *testing.T) {
	out, err := execute(t, "-f", writeProgram(t), "--json", "-x", "meridian")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var rows []export.Row
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	for _, row := range rows {
		if len(row.Showings) != 1 {
			t.Fatalf("chains should collapse without Iron Meridian: %+v", row)
		}
	}
	if rows[0].Showings[0].Title != "The Long Voyage" {
		t.Fatalf("earliest single should rank first: %+v", rows[0])
	}
}

func TestRootMustWatchFlag(t *testing.T) {
	out, err := execute(t, "-f", writeProgram(t), "--json", "-m", "harbor")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var rows []export.Row
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(rows) != 1 || rows[0].Showings[0].Title != "Glass Harbor" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestShowsListsEligible(t *testing.T) {
	out, err := execute(t, "shows", "-f", writeProgram(t), "--json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var rows []export.ShowingRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0].Title != "The Long Voyage" {
		t.Fatalf("unexpected first showing: %+v", rows[0])
	}
}

func TestRootMissingProgram(t *testing.T) {
	if _, err := execute(t, "-f", filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing program file")
	}
}

func TestRootPlainOutput(t *testing.T) {
	out, err := execute(t, "-f", writeProgram(t), "--no-color")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !bytes.Contains([]byte(out), []byte("The Long Voyage")) {
		t.Fatalf("styled output missing content:\n%s", out)
	}
	if bytes.Contains([]byte(out), []byte("\x1b[")) {
		t.Fatalf("plain output contains escape sequences:\n%s", out)
	}
}
