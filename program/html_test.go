package program

import (
	"strings"
	"testing"
	"time"
)

const programPage = `<!DOCTYPE html>
<html><body>
<h1>Program</h1>
<table class="program">
  <tr><th>Title</th><th>Genre</th><th>Room</th><th>Start</th><th>End</th></tr>
  <tr><td>The Long Voyage</td><td>Drama</td><td>1</td><td>10:00</td><td>12:00</td></tr>
  <tr><td>Glass Harbor</td><td>Drama</td><td>2</td><td>11:00</td><td>13:00</td></tr>
  <tr><td>Iron Meridian</td><td>Action</td><td>1</td><td>12:30</td><td>14:00</td></tr>
</table>
</body></html>`

func testDay() time.Time {
	return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
}

func TestParseHTML(t *testing.T) {
	showings, err := ParseHTML(strings.NewReader(programPage), testDay(), time.UTC)
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	if len(showings) != 3 {
		t.Fatalf("expected 3 showings, got %d", len(showings))
	}
	first := showings[0]
	if first.Title != "The Long Voyage" || first.Genre != "Drama" || first.Room != "1" {
		t.Fatalf("unexpected first showing: %+v", first)
	}
	wantStart := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	if !first.Start.Equal(wantStart) {
		t.Fatalf("start = %s, want %s", first.Start, wantStart)
	}
	if first.Duration() != 2*time.Hour {
		t.Fatalf("duration = %s, want 2h", first.Duration())
	}
	for _, s := range showings {
		if s.ID == "" {
			t.Fatalf("showing %s has no ID", s.Title)
		}
	}
}

func TestParseHTMLDeterministicIDs(t *testing.T) {
	a, err := ParseHTML(strings.NewReader(programPage), testDay(), time.UTC)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	b, err := ParseHTML(strings.NewReader(programPage), testDay(), time.UTC)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("ID for %s changed between parses: %s vs %s", a[i].Title, a[i].ID, b[i].ID)
		}
	}
}

func TestParseHTMLSkipsMalformedRows(t *testing.T) {
	page := `<table class="program">
  <tr><td>Short Row</td><td>Drama</td></tr>
  <tr><td></td><td>Drama</td><td>1</td><td>10:00</td><td>11:00</td></tr>
  <tr><td>Bad Clock</td><td>Drama</td><td>1</td><td>25:99</td><td>11:00</td></tr>
  <tr><td>Empty Interval</td><td>Drama</td><td>1</td><td>10:00</td><td>10:00</td></tr>
  <tr><td>Keeper</td><td>Drama</td><td>1</td><td>10:00</td><td>11:00</td></tr>
</table>`
	showings, err := ParseHTML(strings.NewReader(page), testDay(), time.UTC)
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	if len(showings) != 1 || showings[0].Title != "Keeper" {
		t.Fatalf("expected only the keeper row, got %+v", showings)
	}
}

func TestParseHTMLRollsPastMidnight(t *testing.T) {
	page := `<table class="program">
  <tr><td>Late Feature</td><td>Drama</td><td>1</td><td>23:30</td><td>01:00</td></tr>
</table>`
	showings, err := ParseHTML(strings.NewReader(page), testDay(), time.UTC)
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	s := showings[0]
	if s.End.Day() != 2 {
		t.Fatalf("end did not roll past midnight: %s", s.End)
	}
	if s.Duration() != 90*time.Minute {
		t.Fatalf("duration = %s, want 1h30m", s.Duration())
	}
}

func TestParseHTMLSortsByStart(t *testing.T) {
	page := `<table class="program">
  <tr><td>Later</td><td>Drama</td><td>1</td><td>12:00</td><td>13:00</td></tr>
  <tr><td>Earlier</td><td>Drama</td><td>2</td><td>09:00</td><td>10:00</td></tr>
</table>`
	showings, err := ParseHTML(strings.NewReader(page), testDay(), time.UTC)
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	if showings[0].Title != "Earlier" || showings[1].Title != "Later" {
		t.Fatalf("not sorted by start: %s before %s", showings[0].Title, showings[1].Title)
	}
}

func TestParseHTMLDropsDuplicates(t *testing.T) {
	page := `<table class="program">
  <tr><td>Twice Listed</td><td>Drama</td><td>1</td><td>10:00</td><td>11:00</td></tr>
  <tr><td>Twice Listed</td><td>Drama</td><td>1</td><td>10:00</td><td>11:00</td></tr>
</table>`
	showings, err := ParseHTML(strings.NewReader(page), testDay(), time.UTC)
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	if len(showings) != 1 {
		t.Fatalf("expected duplicate to be dropped, got %d showings", len(showings))
	}
}

func TestParseHTMLEmptyProgram(t *testing.T) {
	if _, err := ParseHTML(strings.NewReader("<p>nothing here</p>"), testDay(), time.UTC); err == nil {
		t.Fatal("expected error for a page without showings")
	}
}
