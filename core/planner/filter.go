package planner

import (
	"strings"

	"github.com/kuhyx/kinoplan/core/model"
)

// ConstraintFilter implements ShowingFilter using the exclusion rules of
// a ConstraintSet: excluded title patterns and the effective excluded
// genre set. The input order is preserved, so a catalog-sorted slice
// stays sorted.
type ConstraintFilter struct{}

func (ConstraintFilter) Filter(showings []*model.Showing, c ConstraintSet) []*model.Showing {
	var res []*model.Showing
	for _, s := range showings {
		if titleExcluded(s.Title, c.ExcludedTitles) {
			continue
		}
		if genreExcluded(s.Genre, c.ExcludedGenres) {
			continue
		}
		res = append(res, s)
	}
	return res
}

func titleExcluded(title string, patterns []string) bool {
	for _, p := range patterns {
		if model.TitleMatches(title, p) {
			return true
		}
	}
	return false
}

func genreExcluded(genre string, excluded []string) bool {
	for _, g := range excluded {
		if strings.EqualFold(genre, g) {
			return true
		}
	}
	return false
}
