package stats

import (
	"sort"

	"github.com/verte-zerg/tuibonds/internal/model"
)

// TopGames returns the n highest-scoring games. Ties go to the earlier game.
func TopGames(games []model.GameRecord, n int) []model.GameRecord {
	if n <= 0 || len(games) == 0 {
		return nil
	}
	out := append([]model.GameRecord(nil), games...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score == out[j].Score {
			return out[i].EndedAt.Before(out[j].EndedAt)
		}
		return out[i].Score > out[j].Score
	})
	return out[:min(n, len(out))]
}
