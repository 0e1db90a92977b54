// Package export serializes ranked schedules for downstream tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/kuhyx/kinoplan/core/model"
)

// Row is the export form of one ranked schedule.
type Row struct {
	Rank        int          `json:"rank"`
	Start       time.Time    `json:"start"`
	End         time.Time    `json:"end"`
	IdleMinutes float64      `json:"idle_minutes"`
	Showings    []ShowingRow `json:"showings"`
}

// ShowingRow is the export form of one showing within a schedule.
type ShowingRow struct {
	Title string    `json:"title"`
	Genre string    `json:"genre"`
	Room  string    `json:"room,omitempty"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Rows flattens ranked schedules into export rows. The slice order is
// the ranking order, rank starting at 1.
func Rows(schedules []model.Schedule) []Row {
	rows := make([]Row, 0, len(schedules))
	for i, sched := range schedules {
		row := Row{
			Rank:        i + 1,
			Start:       sched.Start(),
			End:         sched.End(),
			IdleMinutes: sched.TotalIdle().Minutes(),
			Showings:    make([]ShowingRow, 0, sched.Len()),
		}
		for _, sh := range sched.Showings {
			row.Showings = append(row.Showings, ShowingRow{
				Title: sh.Title,
				Genre: sh.Genre,
				Room:  sh.Room,
				Start: sh.Start,
				End:   sh.End,
			})
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteJSON writes the ranked schedules to w in JSON format.
func WriteJSON(w io.Writer, schedules []model.Schedule) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Rows(schedules))
}

// WriteShowingsJSON writes a flat showing list to w in JSON format. The
// eligible listing uses it when machine-readable output is requested.
func WriteShowingsJSON(w io.Writer, shows []*model.Showing) error {
	rows := make([]ShowingRow, 0, len(shows))
	for _, sh := range shows {
		rows = append(rows, ShowingRow{
			Title: sh.Title,
			Genre: sh.Genre,
			Room:  sh.Room,
			Start: sh.Start,
			End:   sh.End,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// WriteCSV writes the ranked schedules to w in CSV format, one line per
// showing with its schedule rank and slot position.
func WriteCSV(w io.Writer, schedules []model.Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"rank", "slot", "title", "genre", "room", "start", "end"}); err != nil {
		return err
	}
	for i, sched := range schedules {
		for j, sh := range sched.Showings {
			rec := []string{
				strconv.Itoa(i + 1),
				strconv.Itoa(j + 1),
				sh.Title,
				sh.Genre,
				sh.Room,
				sh.Start.Format(time.RFC3339),
				sh.End.Format(time.RFC3339),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
