package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tuibonds/internal/badge"
	"github.com/verte-zerg/tuibonds/internal/model"
	"github.com/verte-zerg/tuibonds/internal/prefs"
	"github.com/verte-zerg/tuibonds/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "tuibonds.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Hour)
		ops := "addition"
		if i%2 == 1 {
			ops = "addition,multiplication"
		}
		if _, err := st.InsertGame(ctx, model.GameRecord{
			StartedAt:  start,
			EndedAt:    start.Add(2 * time.Minute),
			Player:     "Ada",
			Score:      (i + 1) * 500,
			Solved:     10,
			Wrong:      i * i,
			Operations: ops,
			DurationMs: (2 * time.Minute).Milliseconds(),
		}); err != nil {
			t.Fatalf("insert game: %v", err)
		}
	}
	if err := prefs.SaveBadges(ctx, st, []badge.ID{badge.QuickStart}); err != nil {
		t.Fatalf("save badges: %v", err)
	}

	report, err := BuildReport(ctx, st, model.StatsConfig{Last: 3, Window: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Games) != 3 || report.Games[0].Score != 1000 {
		t.Fatalf("unexpected games %+v", report.Games)
	}
	if len(report.Window) != 2 || report.Window[1].Score != 2000 {
		t.Fatalf("unexpected window %+v", report.Window)
	}
	if len(report.Earned) != 1 || report.Earned[0] != badge.QuickStart {
		t.Fatalf("unexpected badges %v", report.Earned)
	}
	if report.Summary.BestScore != 2000 || len(report.Top) != 3 || report.Top[0].Score != 2000 {
		t.Fatalf("unexpected summary %+v", report.Summary)
	}
	if len(report.Weak) != 2 || report.Weak[0].Operations != "addition,multiplication" {
		t.Fatalf("unexpected weak operations %+v", report.Weak)
	}
}
