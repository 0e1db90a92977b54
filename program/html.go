package program

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/kuhyx/kinoplan/core/model"
	"github.com/kuhyx/kinoplan/infra/logger"
)

// ParseHTML extracts showings from a program page. The page carries one
// `table.program` whose rows hold title, genre, room, start and end
// cells; times use the 15:04 clock on the given day in loc. An end
// before its start rolls past midnight. Malformed rows are skipped with
// a warning; a page yielding no showings at all is an error.
func ParseHTML(r io.Reader, day time.Time, loc *time.Location) ([]model.Showing, error) {
	if loc == nil {
		loc = time.Local
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("program: parse html: %w", err)
	}
	log := logger.New("program")

	var showings []model.Showing
	doc.Find("table.program tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			// header row
			return
		}
		if cells.Length() < 5 {
			log.Warnf("skipping row %d: expected 5 cells, got %d", i, cells.Length())
			return
		}
		title := strings.TrimSpace(cells.Eq(0).Text())
		genre := strings.TrimSpace(cells.Eq(1).Text())
		room := strings.TrimSpace(cells.Eq(2).Text())
		startText := strings.TrimSpace(cells.Eq(3).Text())
		endText := strings.TrimSpace(cells.Eq(4).Text())
		if title == "" {
			log.Warnf("skipping row %d: empty title", i)
			return
		}
		start, err := clockOn(day, startText, loc)
		if err != nil {
			log.Warnf("skipping row %d (%s): bad start %q", i, title, startText)
			return
		}
		end, err := clockOn(day, endText, loc)
		if err != nil {
			log.Warnf("skipping row %d (%s): bad end %q", i, title, endText)
			return
		}
		if end.Before(start) {
			end = end.AddDate(0, 0, 1)
		}
		if !end.After(start) {
			log.Warnf("skipping row %d (%s): empty interval", i, title)
			return
		}
		showings = append(showings, model.Showing{
			ID:    showingID(title, room, start),
			Title: title,
			Genre: genre,
			Room:  room,
			Start: start,
			End:   end,
		})
	})
	return finalize(showings, log)
}

// clockOn parses a 15:04 clock reading on the given day.
func clockOn(day time.Time, text string, loc *time.Location) (time.Time, error) {
	clock, err := time.Parse("15:04", text)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}
