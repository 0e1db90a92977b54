package scenarios

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kuhyx/kinoplan/core/model"
	"github.com/kuhyx/kinoplan/core/planner"
)

type ShowingDef struct {
	Title string `yaml:"title"`
	Genre string `yaml:"genre"`
	Room  string `yaml:"room,omitempty"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

func (d ShowingDef) ToModel(day time.Time) (model.Showing, error) {
	start, err := clockOn(day, d.Start)
	if err != nil {
		return model.Showing{}, fmt.Errorf("showing %s: %w", d.Title, err)
	}
	end, err := clockOn(day, d.End)
	if err != nil {
		return model.Showing{}, fmt.Errorf("showing %s: %w", d.Title, err)
	}
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}
	return model.Showing{
		ID:    fmt.Sprintf("%s@%s", d.Title, d.Start),
		Title: d.Title,
		Genre: d.Genre,
		Room:  d.Room,
		Start: start,
		End:   end,
	}, nil
}

type ConstraintsDef struct {
	BufferMinutes  int      `yaml:"buffer_minutes"`
	MaxSchedules   int      `yaml:"max_schedules"`
	ExcludedTitles []string `yaml:"excluded_titles,omitempty"`
	ExcludedGenres []string `yaml:"excluded_genres,omitempty"`
	AllGenres      bool     `yaml:"all_genres"`
	MustWatch      string   `yaml:"must_watch,omitempty"`
	Workers        int      `yaml:"workers"`
}

func (d ConstraintsDef) ToModel() planner.ConstraintSet {
	cs := planner.DefaultConstraints()
	cs.Buffer = time.Duration(d.BufferMinutes) * time.Minute
	if d.MaxSchedules > 0 {
		cs.MaxSchedules = d.MaxSchedules
	}
	cs.ExcludedTitles = d.ExcludedTitles
	cs.ExcludedGenres = d.ExcludedGenres
	cs.AllGenres = d.AllGenres
	cs.MustWatch = d.MustWatch
	cs.Workers = d.Workers
	return cs
}

type Expected struct {
	Schedules int      `yaml:"schedules"`
	Best      []string `yaml:"best,omitempty"`
}

type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Day         string         `yaml:"day"`
	Showings    []ShowingDef   `yaml:"showings"`
	Constraints ConstraintsDef `yaml:"constraints"`
	Expected    Expected       `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) day() (time.Time, error) {
	if sc.Day == "" {
		return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", sc.Day)
}

func clockOn(day time.Time, text string) (time.Time, error) {
	clock, err := time.Parse("15:04", text)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0, day.Location()), nil
}
