package game

import (
	"github.com/verte-zerg/tuibonds/internal/badge"
	"github.com/verte-zerg/tuibonds/internal/model"
)

// View is a read-only snapshot for the presentation layer.
type View struct {
	Player          string
	Difficulty      model.DifficultyConfig
	Problems        []model.Problem
	Answers         []model.AnswerTile
	Removing        map[string]bool
	SelectedProblem string
	SelectedAnswer  string
	State           State
	Score           int
	Streak          int
	Multiplier      float64
	Level           int
	Boss            BossView
	Stats           model.SessionStats
	EarnedBadges    []badge.ID
}

// View returns the current snapshot. Slices and maps are copies.
func (e *Engine) View() View {
	removing := make(map[string]bool, len(e.removing))
	for id := range e.removing {
		removing[id] = true
	}
	cfg := e.cfg
	cfg.Operations = append([]model.Operation(nil), e.cfg.Operations...)
	problems := make([]model.Problem, len(e.round.Problems))
	for i, p := range e.round.Problems {
		p.Operands = append([]int(nil), p.Operands...)
		problems[i] = p
	}
	return View{
		Player:          e.player,
		Difficulty:      cfg,
		Problems:        problems,
		Answers:         append([]model.AnswerTile(nil), e.round.Answers...),
		Removing:        removing,
		SelectedProblem: e.selProblem,
		SelectedAnswer:  e.selAnswer,
		State:           e.State(),
		Score:           e.score,
		Streak:          e.stats.CurrentStreak,
		Multiplier:      float64(e.multiplier) / multiplierPrecision,
		Level:           e.stats.Level,
		Boss:            e.boss.view(),
		Stats:           e.stats.Clone(),
		EarnedBadges:    e.badges.Earned(),
	}
}
