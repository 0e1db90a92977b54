package planner

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kuhyx/kinoplan/core/model"
)

func schedOf(showings ...*model.Showing) model.Schedule {
	return model.Schedule{Showings: showings}
}

func TestRankOrdersByCountFirst(t *testing.T) {
	a := show(t, "a", "x", "Drama", "09:00", "10:00")
	b := show(t, "b", "x", "Drama", "10:00", "11:00")
	c := show(t, "c", "x", "Drama", "12:00", "13:00")

	pair := schedOf(&a, &b)
	single := schedOf(&c)

	ranked := DensityRanker{}.Rank([]model.Schedule{single, pair}, DefaultConstraints())
	want := []string{"a|b", "c"}
	if diff := cmp.Diff(want, keysOf(ranked)); diff != "" {
		t.Fatalf("ranking mismatch (-want +got):\n%s", diff)
	}
}

func TestRankBreaksCountTiesByIdle(t *testing.T) {
	a := show(t, "a", "x", "Drama", "09:00", "10:00")
	b := show(t, "b", "x", "Drama", "10:00", "11:00")
	c := show(t, "c", "x", "Drama", "09:00", "10:00")
	d := show(t, "d", "x", "Drama", "11:00", "12:00")

	tight := schedOf(&a, &b)
	loose := schedOf(&c, &d)

	ranked := DensityRanker{}.Rank([]model.Schedule{loose, tight}, DefaultConstraints())
	want := []string{"a|b", "c|d"}
	if diff := cmp.Diff(want, keysOf(ranked)); diff != "" {
		t.Fatalf("ranking mismatch (-want +got):\n%s", diff)
	}
}

func TestRankBreaksIdleTiesByStart(t *testing.T) {
	early := show(t, "e", "x", "Drama", "09:00", "10:00")
	late := show(t, "l", "x", "Drama", "14:00", "15:00")

	ranked := DensityRanker{}.Rank([]model.Schedule{schedOf(&late), schedOf(&early)}, DefaultConstraints())
	want := []string{"e", "l"}
	if diff := cmp.Diff(want, keysOf(ranked)); diff != "" {
		t.Fatalf("ranking mismatch (-want +got):\n%s", diff)
	}
}

func TestRankDeduplicatesByKey(t *testing.T) {
	a := show(t, "a", "x", "Drama", "09:00", "10:00")
	ranked := DensityRanker{}.Rank([]model.Schedule{schedOf(&a), schedOf(&a)}, DefaultConstraints())
	if len(ranked) != 1 {
		t.Fatalf("expected 1 schedule after dedup, got %d", len(ranked))
	}
}

func TestRankTruncates(t *testing.T) {
	a := show(t, "a", "x", "Drama", "09:00", "10:00")
	b := show(t, "b", "x", "Drama", "10:00", "11:00")
	c := show(t, "c", "x", "Drama", "11:00", "12:00")

	cs := DefaultConstraints()
	cs.MaxSchedules = 2
	ranked := DensityRanker{}.Rank([]model.Schedule{schedOf(&a), schedOf(&b), schedOf(&c)}, cs)
	want := []string{"a", "b"}
	if diff := cmp.Diff(want, keysOf(ranked)); diff != "" {
		t.Fatalf("ranking mismatch (-want +got):\n%s", diff)
	}
}
