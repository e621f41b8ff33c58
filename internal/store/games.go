package store

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/verte-zerg/tuibonds/internal/model"
)

var gameColumns = []string{
	"id", "started_at", "ended_at", "player", "score", "solved", "wrong",
	"max_streak", "fast_solves", "boss_runs", "level", "min_number",
	"max_number", "operand_count", "operations", "duration_ms",
}

// InsertGame stores a finished game and returns its id.
func (s *Store) InsertGame(ctx context.Context, g model.GameRecord) (int64, error) {
	query, args, err := sqlBuilder.Insert("games").
		Columns(gameColumns[1:]...).
		Values(
			g.StartedAt.Format(time.RFC3339Nano),
			g.EndedAt.Format(time.RFC3339Nano),
			g.Player,
			g.Score,
			g.Solved,
			g.Wrong,
			g.MaxStreak,
			g.FastSolves,
			g.BossRuns,
			g.Level,
			g.MinNumber,
			g.MaxNumber,
			g.OperandCount,
			g.Operations,
			g.DurationMs,
		).ToSql()
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListGames returns games matching cfg in chronological order. Last keeps
// only the most recent N games.
func (s *Store) ListGames(ctx context.Context, cfg model.StatsConfig) ([]model.GameRecord, error) {
	q := sqlBuilder.Select(gameColumns...).From("games")
	if cfg.Player != "" {
		q = q.Where(squirrel.Eq{"player": cfg.Player})
	}
	if cfg.Since != nil {
		q = q.Where(squirrel.GtOrEq{"ended_at": cfg.Since.Format(time.RFC3339Nano)})
	}
	if cfg.Last > 0 {
		q = q.OrderBy("ended_at DESC", "id DESC").Limit(uint64(cfg.Last))
	} else {
		q = q.OrderBy("ended_at ASC", "id ASC")
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var games []model.GameRecord
	for rows.Next() {
		var g model.GameRecord
		var startedAt, endedAt string
		if err := rows.Scan(&g.ID, &startedAt, &endedAt, &g.Player, &g.Score, &g.Solved, &g.Wrong,
			&g.MaxStreak, &g.FastSolves, &g.BossRuns, &g.Level, &g.MinNumber,
			&g.MaxNumber, &g.OperandCount, &g.Operations, &g.DurationMs); err != nil {
			return nil, err
		}
		if g.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if g.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 {
		for i, j := 0, len(games)-1; i < j; i, j = i+1, j-1 {
			games[i], games[j] = games[j], games[i]
		}
	}
	return games, nil
}

// ListPlayers returns the distinct player names in game history.
func (s *Store) ListPlayers(ctx context.Context) ([]string, error) {
	query, args, err := sqlBuilder.Select("DISTINCT player").From("games").OrderBy("player").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	var players []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		players = append(players, name)
	}
	return players, rows.Err()
}

// ClearGames deletes all game history.
func (s *Store) ClearGames(ctx context.Context) error {
	query, args, err := sqlBuilder.Delete("games").ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}
