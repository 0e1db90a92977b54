package program

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kuhyx/kinoplan/core/catalog"
	"github.com/kuhyx/kinoplan/core/model"
	"github.com/kuhyx/kinoplan/infra/logger"
)

// Record is one showing row as published in JSON or YAML program dumps.
type Record struct {
	Title string `json:"title" yaml:"title"`
	Genre string `json:"genre" yaml:"genre"`
	Room  string `json:"room" yaml:"room"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// Document is a saved program file: an optional day (2006-01-02) and the
// showing records. When Day is set it overrides the caller's planning day.
type Document struct {
	Day      string   `json:"day" yaml:"day"`
	Showings []Record `json:"showings" yaml:"showings"`
}

// showingNamespace seeds deterministic showing IDs so repeated parses of
// the same program yield identical catalogs.
var showingNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("kinoplan.showing"))

func showingID(title, room string, start time.Time) string {
	key := fmt.Sprintf("%s|%s|%s", title, room, start.Format(time.RFC3339))
	return uuid.NewSHA1(showingNamespace, []byte(key)).String()
}

// convert turns a parsed document into showings on the effective day.
func (d Document) convert(day time.Time, loc *time.Location, log logger.Logger) ([]model.Showing, error) {
	if d.Day != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d.Day, loc)
		if err != nil {
			return nil, fmt.Errorf("program: bad day %q: %w", d.Day, err)
		}
		day = parsed
	}
	var showings []model.Showing
	for i, rec := range d.Showings {
		if rec.Title == "" {
			log.Warnf("skipping record %d: empty title", i)
			continue
		}
		start, err := parseWhen(day, rec.Start, loc)
		if err != nil {
			log.Warnf("skipping record %d (%s): bad start %q", i, rec.Title, rec.Start)
			continue
		}
		end, err := parseWhen(day, rec.End, loc)
		if err != nil {
			log.Warnf("skipping record %d (%s): bad end %q", i, rec.Title, rec.End)
			continue
		}
		if end.Before(start) {
			end = end.AddDate(0, 0, 1)
		}
		if !end.After(start) {
			log.Warnf("skipping record %d (%s): empty interval", i, rec.Title)
			continue
		}
		showings = append(showings, model.Showing{
			ID:    showingID(rec.Title, rec.Room, start),
			Title: rec.Title,
			Genre: rec.Genre,
			Room:  rec.Room,
			Start: start,
			End:   end,
		})
	}
	return finalize(showings, log)
}

// parseWhen accepts RFC3339 timestamps, date-and-clock readings and bare
// 15:04 clocks on the given day.
func parseWhen(day time.Time, text string, loc *time.Location) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, text); err == nil {
		return ts.In(loc), nil
	}
	if ts, err := time.ParseInLocation("2006-01-02 15:04", text, loc); err == nil {
		return ts, nil
	}
	return clockOn(day, text, loc)
}

// finalize dedups by ID, sorts by start time and rejects an empty program.
func finalize(showings []model.Showing, log logger.Logger) ([]model.Showing, error) {
	seen := make(map[string]struct{}, len(showings))
	out := showings[:0]
	for _, s := range showings {
		if _, ok := seen[s.ID]; ok {
			log.Warnf("dropping duplicate showing %s (%s)", s.ID, s.Title)
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("program: no showings found")
	}
	catalog.SortShowings(out)
	return out, nil
}
