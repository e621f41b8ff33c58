package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuibonds/internal/game"
	"github.com/verte-zerg/tuibonds/internal/generator"
	"github.com/verte-zerg/tuibonds/internal/model"
	"github.com/verte-zerg/tuibonds/internal/prefs"
)

type fakeHistory struct {
	games []model.GameRecord
}

func (f *fakeHistory) InsertGame(_ context.Context, g model.GameRecord) (int64, error) {
	f.games = append(f.games, g)
	return int64(len(f.games)), nil
}

func (f *fakeHistory) ListGames(_ context.Context, cfg model.StatsConfig) ([]model.GameRecord, error) {
	var out []model.GameRecord
	for _, g := range f.games {
		if cfg.Player == "" || g.Player == cfg.Player {
			out = append(out, g)
		}
	}
	return out, nil
}

func newTestModel(t *testing.T, player string, history *fakeHistory) (*Model, *prefs.Memory) {
	t.Helper()
	kv := prefs.NewMemory()
	fx := NewFeedback()
	cfg := model.DifficultyConfig{
		MinNumber:    1,
		MaxNumber:    10,
		OperandCount: 2,
		Operations:   []model.Operation{model.Addition},
		ProblemCount: 4,
	}
	engine := game.New(
		prefs.Prefs{PlayerName: player, Difficulty: cfg},
		kv,
		game.WithEffects(fx),
		game.WithGenerator(generator.NewWithSeed(7)),
		game.WithLogf(func(string, ...any) {}),
	)
	var h History
	if history != nil {
		h = history
	}
	m := NewModel(engine, fx, h)
	m.Init()
	return m, kv
}

func press(m *Model, msg tea.KeyMsg) {
	m.Update(msg)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// matchingPair returns column indexes of a problem and its answer.
func matchingPair(t *testing.T, m *Model) (int, int) {
	t.Helper()
	v := m.engine.View()
	for i, p := range v.Problems {
		for j, a := range v.Answers {
			if a.Value == p.Result {
				return i, j
			}
		}
	}
	t.Fatalf("no matching pair")
	return 0, 0
}

func selectPair(m *Model, problem, answer int) {
	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	for m.cursor[columnProblems] != problem {
		press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	for m.cursor[columnAnswers] != answer {
		press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestSelectingPairWithKeysScores(t *testing.T) {
	m, _ := newTestModel(t, "Ada", nil)
	i, j := matchingPair(t, m)
	selectPair(m, i, j)

	v := m.engine.View()
	if v.Stats.TotalSolved != 1 || v.Score <= 0 {
		t.Fatalf("expected one solved problem, got %+v score %d", v.Stats, v.Score)
	}
	if len(m.banners) == 0 || !strings.Contains(m.banners[0].text, "Correct") {
		t.Fatalf("expected correct banner, got %+v", m.banners)
	}
	if !m.fx.sparked || m.fx.sparkle != (game.Point{X: columnAnswers, Y: j}) {
		t.Fatalf("expected sparkle on answer %d, got %+v", j, m.fx.sparkle)
	}
}

func TestQuitSavesGameOnce(t *testing.T) {
	history := &fakeHistory{}
	m, _ := newTestModel(t, "Ada", history)
	i, j := matchingPair(t, m)
	selectPair(m, i, j)

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	m.finishGame()
	if len(history.games) != 1 {
		t.Fatalf("expected 1 saved game, got %d", len(history.games))
	}
	g := history.games[0]
	if g.Player != "Ada" || g.Solved != 1 || g.Operations != "addition" {
		t.Fatalf("unexpected record %+v", g)
	}
}

func TestQuitWithoutAttemptsSkipsSave(t *testing.T) {
	history := &fakeHistory{}
	m, _ := newTestModel(t, "Ada", history)
	m.Update(runes("q"))
	if len(history.games) != 0 {
		t.Fatalf("expected no saved games, got %d", len(history.games))
	}
}

func TestNamePromptSetsPlayer(t *testing.T) {
	m, kv := newTestModel(t, "", nil)
	if !m.naming {
		t.Fatalf("expected name prompt for anonymous player")
	}
	m.Update(runes("Bo"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.naming {
		t.Fatalf("expected prompt to close")
	}
	if got := m.engine.View().Player; got != "Bo" {
		t.Fatalf("expected player Bo, got %q", got)
	}
	if v, ok, _ := kv.Get(context.Background(), prefs.KeyPlayerName); !ok || v != "Bo" {
		t.Fatalf("expected stored player name, got %q %v", v, ok)
	}
}

func TestNamePromptKeysDoNotSelect(t *testing.T) {
	m, _ := newTestModel(t, "", nil)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(runes("n"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.engine.View().State != game.Idle {
		t.Fatalf("enter in the name prompt must not select a tile")
	}
}

func TestStaleMessagesAreIgnored(t *testing.T) {
	m, _ := newTestModel(t, "Ada", nil)
	m.Update(timerMsg{id: 9999})
	m.banners = []banner{{kind: bannerInfo, text: "hold"}}
	m.bannerGen = 3
	m.Update(clearBannerMsg{gen: 2})
	if len(m.banners) != 1 {
		t.Fatalf("stale clear must keep banners")
	}
	m.Update(clearBannerMsg{gen: 3})
	if len(m.banners) != 0 {
		t.Fatalf("current clear must drop banners")
	}
}

func TestResetNeedsConfirmation(t *testing.T) {
	history := &fakeHistory{}
	m, kv := newTestModel(t, "Ada", history)
	i, j := matchingPair(t, m)
	selectPair(m, i, j)

	ctrlR := tea.KeyMsg{Type: tea.KeyCtrlR}
	m.Update(ctrlR)
	if !m.confirmReset || m.engine.View().Score == 0 {
		t.Fatalf("first ctrl+r must only ask for confirmation")
	}
	m.Update(ctrlR)
	v := m.engine.View()
	if v.Score != 0 || v.Player != "" {
		t.Fatalf("expected fresh session, got score %d player %q", v.Score, v.Player)
	}
	if !m.naming {
		t.Fatalf("expected name prompt after reset")
	}
	if len(history.games) != 1 {
		t.Fatalf("expected game before reset to be saved, got %d", len(history.games))
	}
	if _, ok, _ := kv.Get(context.Background(), prefs.KeyPlayerName); ok {
		t.Fatalf("expected cleared preferences")
	}
}

func TestOtherKeyCancelsResetConfirmation(t *testing.T) {
	m, _ := newTestModel(t, "Ada", nil)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.confirmReset {
		t.Fatalf("expected confirmation to be cancelled")
	}
}

func TestCursorWrapsWithinColumn(t *testing.T) {
	m, _ := newTestModel(t, "Ada", nil)
	n := len(m.engine.View().Problems)
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor[columnProblems] != n-1 {
		t.Fatalf("expected wrap to %d, got %d", n-1, m.cursor[columnProblems])
	}
}

func TestBestScoreLoadsForPlayer(t *testing.T) {
	history := &fakeHistory{games: []model.GameRecord{
		{Player: "Ada", Score: 900},
		{Player: "Bo", Score: 5000},
		{Player: "Ada", Score: 1200},
	}}
	m, _ := newTestModel(t, "Ada", history)
	if !m.hasBest || m.bestScore != 1200 {
		t.Fatalf("expected best 1200, got %d", m.bestScore)
	}
}

func TestPresetKeyAppliesNextDifficulty(t *testing.T) {
	m, kv := newTestModel(t, "Ada", nil)
	m.Update(runes("d"))

	v := m.engine.View()
	if v.Difficulty.MinNumber != 5 || v.Difficulty.MaxNumber != 15 || v.Difficulty.ProblemCount != 5 {
		t.Fatalf("expected medium preset, got %+v", v.Difficulty)
	}
	if len(v.Problems) != 5 {
		t.Fatalf("expected a fresh round of 5, got %d", len(v.Problems))
	}
	if raw, ok, _ := kv.Get(context.Background(), prefs.KeyMaxNumber); !ok || raw != "15" {
		t.Fatalf("expected saved max 15, got %q (%v)", raw, ok)
	}
	if len(m.banners) == 0 || !strings.Contains(m.banners[0].text, "medium") {
		t.Fatalf("expected difficulty banner, got %+v", m.banners)
	}
}

func TestPresetKeySkipsPresetsDivisionCannotDraw(t *testing.T) {
	m, _ := newTestModel(t, "Ada", nil)
	cfg := m.engine.View().Difficulty
	cfg.Operations = []model.Operation{model.Division}
	if err := m.engine.ApplySettings(context.Background(), "Ada", cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}

	m.Update(runes("d"))
	v := m.engine.View()
	if v.Difficulty.MinNumber != 1 || v.Difficulty.MaxNumber != 5 {
		t.Fatalf("expected medium, hard and expert skipped for beginner, got %+v", v.Difficulty)
	}
	if len(v.Difficulty.Operations) != 1 || v.Difficulty.Operations[0] != model.Division {
		t.Fatalf("operations must be kept, got %v", v.Difficulty.Operations)
	}
}
