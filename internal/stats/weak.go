package stats

import (
	"sort"

	"github.com/verte-zerg/tuibonds/internal/model"
)

// OperationStat aggregates games played with one operation mix.
type OperationStat struct {
	Operations string
	Games      int
	Solved     int
	Wrong      int
	BestScore  int
}

// Accuracy is solved over attempts, or 1 with no attempts.
func (o OperationStat) Accuracy() float64 {
	total := o.Solved + o.Wrong
	if total == 0 {
		return 1.0
	}
	return float64(o.Solved) / float64(total)
}

// WeakOperations groups games by operation mix, lowest accuracy first.
func WeakOperations(games []model.GameRecord) []OperationStat {
	byOps := map[string]*OperationStat{}
	for _, g := range games {
		s, ok := byOps[g.Operations]
		if !ok {
			s = &OperationStat{Operations: g.Operations}
			byOps[g.Operations] = s
		}
		s.Games++
		s.Solved += g.Solved
		s.Wrong += g.Wrong
		s.BestScore = max(s.BestScore, g.Score)
	}
	out := make([]OperationStat, 0, len(byOps))
	for _, s := range byOps {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := out[i].Accuracy(), out[j].Accuracy()
		if ai == aj {
			return out[i].Operations < out[j].Operations
		}
		return ai < aj
	})
	return out
}
