package planner

import (
	"sort"

	"github.com/kuhyx/kinoplan/core/model"
)

// DensityRanker orders candidate schedules by showing count, breaking
// ties by total idle time, then earliest start, then showing IDs. The
// final two tie-breaks carry no planning meaning; they pin the output
// order so identical inputs always rank identically.
type DensityRanker struct{}

// Rank implements Ranker.
func (DensityRanker) Rank(candidates []model.Schedule, cs ConstraintSet) []model.Schedule {
	ranked := dedupByKey(candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Len() != b.Len() {
			return a.Len() > b.Len()
		}
		ai, bi := a.TotalIdle(), b.TotalIdle()
		if ai != bi {
			return ai < bi
		}
		as, bs := a.Start(), b.Start()
		if !as.Equal(bs) {
			return as.Before(bs)
		}
		return a.Key() < b.Key()
	})
	if cs.MaxSchedules > 0 && len(ranked) > cs.MaxSchedules {
		ranked = ranked[:cs.MaxSchedules]
	}
	return ranked
}

func dedupByKey(candidates []model.Schedule) []model.Schedule {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]model.Schedule, 0, len(candidates))
	for _, c := range candidates {
		key := c.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
