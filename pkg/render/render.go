// Package render turns planning results into terminal output. Styling
// goes through lipgloss; plain mode strips it for pipes and logs.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/stat"

	"github.com/kuhyx/kinoplan/core/model"
	"github.com/kuhyx/kinoplan/core/planner"
)

// Renderer writes human-readable planning output.
type Renderer struct {
	header lipgloss.Style
	row    lipgloss.Style
	gap    lipgloss.Style
	note   lipgloss.Style
}

// New creates a Renderer. With plain set, all styles are empty and the
// output carries no escape sequences.
func New(plain bool) *Renderer {
	r := &Renderer{}
	if plain {
		base := lipgloss.NewStyle()
		r.header, r.row, r.gap, r.note = base, base, base, base
		return r
	}
	r.header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD93D"))
	r.row = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	r.gap = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true)
	r.note = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	return r
}

// Schedules writes the ranked schedules as per-chain timelines followed
// by a summary of the search.
func (r *Renderer) Schedules(w io.Writer, res planner.PlanResult) error {
	var b strings.Builder
	if len(res.Schedules) == 0 {
		b.WriteString(r.note.Render("no feasible schedule for this day"))
		b.WriteByte('\n')
		return write(w, b.String())
	}

	for i, sched := range res.Schedules {
		head := fmt.Sprintf("#%d  %d showings  %s-%s  idle %s",
			i+1, sched.Len(),
			sched.Start().Format("15:04"), sched.End().Format("15:04"),
			fmtDur(sched.TotalIdle()))
		b.WriteString(r.header.Render(head))
		b.WriteByte('\n')
		for j, sh := range sched.Showings {
			if j > 0 {
				if gap := sh.Start.Sub(sched.Showings[j-1].End); gap > 0 {
					b.WriteString(r.gap.Render(fmt.Sprintf("      %s break", fmtDur(gap))))
					b.WriteByte('\n')
				}
			}
			b.WriteString(r.row.Render(showingLine(sh)))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	idles := make([]float64, len(res.Schedules))
	for i, sched := range res.Schedules {
		idles[i] = sched.TotalIdle().Minutes()
	}
	b.WriteString(r.note.Render(fmt.Sprintf(
		"%d schedule(s), best fits %d showings, mean idle %.0fm",
		len(res.Schedules), res.Schedules[0].Len(), stat.Mean(idles, nil))))
	b.WriteByte('\n')
	b.WriteString(r.note.Render(fmt.Sprintf(
		"search: %d chains explored, %d retained, %d pruned in %s",
		res.Stats.Explored, res.Stats.Retained, res.Stats.Pruned, res.Stats.Elapsed)))
	b.WriteByte('\n')
	return write(w, b.String())
}

// Showings writes the eligible listing for one day.
func (r *Renderer) Showings(w io.Writer, day time.Time, shows []*model.Showing) error {
	var b strings.Builder
	b.WriteString(r.header.Render(fmt.Sprintf(
		"program for %s  (%d showings)", day.Format("2006-01-02"), len(shows))))
	b.WriteByte('\n')
	for _, sh := range shows {
		b.WriteString(r.row.Render(showingLine(sh)))
		b.WriteByte('\n')
	}
	return write(w, b.String())
}

func showingLine(sh *model.Showing) string {
	line := fmt.Sprintf("  %s-%s  %-28s %-12s",
		sh.Start.Format("15:04"), sh.End.Format("15:04"), sh.Title, sh.Genre)
	if sh.Room != "" {
		line += "  room " + sh.Room
	}
	return line
}

func fmtDur(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%02dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

func write(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
