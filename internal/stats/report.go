package stats

import (
	"context"

	"github.com/verte-zerg/tuibonds/internal/badge"
	"github.com/verte-zerg/tuibonds/internal/model"
	"github.com/verte-zerg/tuibonds/internal/prefs"
)

// Source is the storage the report reads from.
type Source interface {
	prefs.KV
	ListGames(ctx context.Context, cfg model.StatsConfig) ([]model.GameRecord, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Games   []model.GameRecord
	Window  []model.GameRecord
	Earned  []badge.ID
	Summary Summary
	Weak    []OperationStat
	Top     []model.GameRecord
}

// BuildReport loads and prepares data for stats rendering. Unreadable
// preferences leave Earned empty rather than failing the report.
func BuildReport(ctx context.Context, src Source, cfg model.StatsConfig) (Report, error) {
	games, err := src.ListGames(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	p, _ := prefs.Load(ctx, src)
	return Report{
		Games:   games,
		Window:  lastGames(games, cfg.Window),
		Earned:  p.EarnedBadges,
		Summary: Summarize(games),
		Weak:    WeakOperations(games),
		Top:     TopGames(games, 5),
	}, nil
}

func lastGames(games []model.GameRecord, window int) []model.GameRecord {
	if window <= 0 || len(games) <= window {
		return games
	}
	return games[len(games)-window:]
}
