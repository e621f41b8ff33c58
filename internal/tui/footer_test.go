package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/tuibonds/internal/badge"
	"github.com/verte-zerg/tuibonds/internal/game"
)

func TestRenderFooterFormats(t *testing.T) {
	m := &Model{hasBest: true, bestScore: 2400}
	v := game.View{
		Score:        1450,
		Streak:       10,
		Multiplier:   2.0,
		Level:        2,
		EarnedBadges: []badge.ID{badge.QuickStart, badge.MathWhiz},
	}
	out := m.renderFooter(v)
	if out == "" {
		t.Fatalf("expected footer output")
	}
	if !containsAll(out, []string{"Score 1450", "Streak 10", "×2.0", "Level 2", "Best 2400", "Badges 2/10"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestRenderFooterBestTracksLiveScore(t *testing.T) {
	m := &Model{hasBest: true, bestScore: 100}
	out := m.renderFooter(game.View{Score: 700, Multiplier: 1.0, Level: 1})
	if !strings.Contains(out, "Best 700") {
		t.Fatalf("expected live score as best: %s", out)
	}
	m = &Model{}
	if strings.Contains(m.renderFooter(game.View{}), "Best") {
		t.Fatalf("expected no best segment without history")
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
