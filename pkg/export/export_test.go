package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/kuhyx/kinoplan/core/model"
)

func show(title, genre, start, end string) *model.Showing {
	day := "2025-03-01 "
	s, _ := time.Parse("2006-01-02 15:04", day+start)
	e, _ := time.Parse("2006-01-02 15:04", day+end)
	return &model.Showing{ID: title, Title: title, Genre: genre, Room: "1", Start: s, End: e}
}

func testSchedules() []model.Schedule {
	return []model.Schedule{
		{Showings: []*model.Showing{
			show("The Long Voyage", "Drama", "10:00", "12:00"),
			show("Iron Meridian", "Action", "12:30", "14:00"),
		}},
		{Showings: []*model.Showing{
			show("Glass Harbor", "Drama", "11:00", "13:00"),
		}},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, testSchedules()); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var rows []Row
	if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Rank != 1 || rows[1].Rank != 2 {
		t.Fatalf("ranks = %d, %d", rows[0].Rank, rows[1].Rank)
	}
	if rows[0].IdleMinutes != 30 {
		t.Fatalf("idle = %v, want 30", rows[0].IdleMinutes)
	}
	if len(rows[0].Showings) != 2 || rows[0].Showings[1].Title != "Iron Meridian" {
		t.Fatalf("unexpected showings: %+v", rows[0].Showings)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testSchedules()); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("records = %d, want 4 (header + 3 showings)", len(recs))
	}
	if strings.Join(recs[0], ",") != "rank,slot,title,genre,room,start,end" {
		t.Fatalf("unexpected header: %v", recs[0])
	}
	if recs[1][0] != "1" || recs[1][2] != "The Long Voyage" {
		t.Fatalf("unexpected first row: %v", recs[1])
	}
	if recs[3][0] != "2" || recs[3][1] != "1" || recs[3][2] != "Glass Harbor" {
		t.Fatalf("unexpected last row: %v", recs[3])
	}
	if _, err := time.Parse(time.RFC3339, recs[1][5]); err != nil {
		t.Fatalf("start column not RFC3339: %v", err)
	}
}

func TestWriteShowingsJSON(t *testing.T) {
	shows := []*model.Showing{
		show("The Long Voyage", "Drama", "10:00", "12:00"),
		show("Iron Meridian", "Action", "12:30", "14:00"),
	}
	var buf bytes.Buffer
	if err := WriteShowingsJSON(&buf, shows); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var rows []ShowingRow
	if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 || rows[1].Title != "Iron Meridian" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("empty json = %q", buf.String())
	}
	buf.Reset()
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("empty csv should be header only, got %q", buf.String())
	}
}
