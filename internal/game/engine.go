// Package game runs the match, scoring and boss mode state machine.
package game

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/verte-zerg/tuibonds/internal/badge"
	"github.com/verte-zerg/tuibonds/internal/generator"
	"github.com/verte-zerg/tuibonds/internal/model"
	"github.com/verte-zerg/tuibonds/internal/prefs"
)

// State is the selection state of the match engine.
type State int

// Selection states. BothSelected is transient and judged immediately.
const (
	Idle State = iota
	ProblemSelected
	AnswerSelected
)

func (s State) String() string {
	switch s {
	case ProblemSelected:
		return "problem-selected"
	case AnswerSelected:
		return "answer-selected"
	default:
		return "idle"
	}
}

// Point is a screen coordinate forwarded with a selection.
type Point struct {
	X int
	Y int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithEffects sets the feedback collaborator.
func WithEffects(fx Effects) Option {
	return func(e *Engine) {
		if fx != nil {
			e.effects.inner = fx
		}
	}
}

// WithLogf sets the diagnostic logger.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(e *Engine) {
		if logf != nil {
			e.logf = logf
		}
	}
}

// WithGenerator sets the problem generator.
func WithGenerator(gen *generator.Generator) Option {
	return func(e *Engine) {
		if gen != nil {
			e.gen = gen
		}
	}
}

// Engine owns all session state. It is not safe for concurrent use; callers
// deliver selections and timer fires from a single goroutine.
type Engine struct {
	gen     *generator.Generator
	kv      prefs.KV
	effects guardedEffects
	logf    func(format string, args ...any)
	now     func() time.Time

	player string
	cfg    model.DifficultyConfig
	round  model.Round

	removing   map[string]struct{}
	selProblem string
	selAnswer  string
	selectedAt time.Time

	score      int
	multiplier int
	wrong      int
	stats      model.SessionStats
	boss       boss
	badges     *badge.Tracker
	timers     *timers
	playTick   TimerID
	running    bool
}

// New creates an engine from loaded preferences. Call Start to deal the
// first round.
func New(p prefs.Prefs, kv prefs.KV, opts ...Option) *Engine {
	if kv == nil {
		kv = prefs.NewMemory()
	}
	e := &Engine{
		gen:    generator.New(),
		kv:     kv,
		logf:   func(format string, args ...any) { _, _ = fmt.Fprintf(os.Stderr, format, args...) },
		now:    time.Now,
		player: p.PlayerName,
		cfg:    p.Difficulty,
		badges: badge.NewTracker(p.EarnedBadges),
		timers: newTimers(),
	}
	e.effects = guardedEffects{inner: NopEffects{}}
	for _, opt := range opts {
		opt(e)
	}
	e.effects.logf = e.logf
	if err := prefs.Validate(e.cfg); err != nil {
		e.logf("difficulty: %v\n", err)
		e.cfg = prefs.Normalize(e.cfg)
	}
	e.resetSession()
	return e
}

func (e *Engine) resetSession() {
	e.score = 0
	e.multiplier = MultiplierBase
	e.wrong = 0
	e.stats = model.SessionStats{Level: 1, OperationsUsed: map[model.Operation]struct{}{}}
	e.boss = newBoss()
	e.removing = map[string]struct{}{}
	e.clearSelection()
}

// Start deals the first round and starts the play-time tick.
func (e *Engine) Start() {
	if e.running {
		return
	}
	e.running = true
	e.rebuildRound()
	e.playTick = e.timers.schedule(PlayTickInterval, timerEntry{kind: TimerPlayTick})
	e.evaluateBadges()
}

// Stop cancels every pending timer and drops boss mode without a bonus.
// Later fires are ignored.
func (e *Engine) Stop() {
	e.timers.cancelAll()
	e.running = false
	e.playTick = 0
	runs := e.boss.runs
	e.boss = newBoss()
	e.boss.runs = runs
}

// TakeTimers returns timers scheduled since the last call.
func (e *Engine) TakeTimers() []Timer {
	return e.timers.drain()
}

// Fire runs the timer with id. Unknown, cancelled or already fired ids are
// ignored.
func (e *Engine) Fire(id TimerID) {
	entry, ok := e.timers.take(id)
	if !ok {
		return
	}
	switch entry.kind {
	case TimerRemoval:
		e.finishRemoval(entry.problemID, entry.answerID)
	case TimerBossTick:
		e.bossTick()
	case TimerPlayTick:
		e.stats.PlayTimeSeconds++
		e.playTick = e.timers.schedule(PlayTickInterval, timerEntry{kind: TimerPlayTick})
		e.evaluateBadges()
	}
}

// State reports the current selection state.
func (e *Engine) State() State {
	switch {
	case e.selProblem != "":
		return ProblemSelected
	case e.selAnswer != "":
		return AnswerSelected
	default:
		return Idle
	}
}

// SelectProblem toggles or replaces the selected problem and judges a
// complete pair.
func (e *Engine) SelectProblem(id string, at Point) {
	if _, ok := e.problem(id); !ok || e.isRemoving(id) {
		return
	}
	if e.selProblem == id {
		e.selProblem = ""
		e.selectedAt = time.Time{}
		return
	}
	if e.selProblem == "" {
		e.selectedAt = e.now()
	}
	e.selProblem = id
	if e.selAnswer != "" {
		e.judge(at)
	}
}

// SelectAnswer toggles or replaces the selected answer and judges a
// complete pair.
func (e *Engine) SelectAnswer(id string, at Point) {
	if _, ok := e.answer(id); !ok || e.isRemoving(id) {
		return
	}
	if e.selAnswer == id {
		e.selAnswer = ""
		return
	}
	e.selAnswer = id
	if e.selProblem != "" {
		e.judge(at)
	}
}

func (e *Engine) judge(at Point) {
	p, _ := e.problem(e.selProblem)
	a, _ := e.answer(e.selAnswer)
	elapsed := e.now().Sub(e.selectedAt)
	e.clearSelection()

	if p.Result != a.Value {
		e.stats.CurrentStreak = 0
		e.multiplier = MultiplierBase
		e.wrong++
		e.effects.OnWrongMatch()
		e.evaluateBadges()
		return
	}

	bonus := 0
	if tier, ok := SpeedBonus(elapsed); ok {
		bonus = tier.Bonus
	}
	gain := matchPoints(e.multiplier, e.boss.multiplier(), bonus)

	e.stats.CurrentStreak++
	if e.stats.CurrentStreak > e.stats.MaxStreak {
		e.stats.MaxStreak = e.stats.CurrentStreak
	}
	e.multiplier = min(e.multiplier+MultiplierStep, MultiplierCap)
	e.stats.TotalSolved++
	if elapsed <= FastSolveThreshold {
		e.stats.FastSolves++
	}
	e.stats.OperationsUsed[p.Op] = struct{}{}
	e.stats.MaxVariables = max(e.stats.MaxVariables, len(p.Operands))

	e.removing[p.ID] = struct{}{}
	e.removing[a.ID] = struct{}{}
	e.timers.schedule(RemovalGrace, timerEntry{kind: TimerRemoval, problemID: p.ID, answerID: a.ID})

	tier := e.stats.CurrentStreak%StreakMilestone == 0
	e.effects.OnCorrectMatch(at.X, at.Y, tier)
	e.addScore(gain)
	if tier {
		e.effects.OnStreakMilestone()
	}
	e.maybeEnterBoss()
	e.evaluateBadges()
}

func (e *Engine) addScore(points int) {
	if points <= 0 {
		return
	}
	e.score += points
	if level := LevelFor(e.score); level > e.stats.Level {
		e.stats.Level = level
		e.effects.OnLevelUp()
	}
}

func (e *Engine) finishRemoval(problemID, answerID string) {
	delete(e.removing, problemID)
	delete(e.removing, answerID)
	problems := e.round.Problems[:0]
	for _, p := range e.round.Problems {
		if p.ID != problemID {
			problems = append(problems, p)
		}
	}
	e.round.Problems = problems
	answers := e.round.Answers[:0]
	for _, a := range e.round.Answers {
		if a.ID != answerID {
			answers = append(answers, a)
		}
	}
	e.round.Answers = answers
	if e.selProblem == problemID {
		e.selProblem = ""
		e.selectedAt = time.Time{}
	}
	if e.selAnswer == answerID {
		e.selAnswer = ""
	}
	e.maybeReplenish()
}

// maybeReplenish deals a new round once every problem is gone and no
// removal is still pending.
func (e *Engine) maybeReplenish() {
	if len(e.round.Problems) > 0 || e.timers.pending(TimerRemoval) > 0 {
		return
	}
	e.rebuildRound()
}

func (e *Engine) rebuildRound() {
	round, widen := e.gen.BuildRound(e.cfg)
	e.round = round
	e.removing = map[string]struct{}{}
	e.clearSelection()
	if !widen {
		return
	}
	if !generator.Widens(e.cfg) || e.cfg.MaxNumber+widenStep > prefs.MaxNumberLimit {
		e.logf("round short of %d problems, range cannot widen\n", e.cfg.ProblemCount)
		return
	}
	e.cfg.MaxNumber += widenStep
	e.logf("round short of %d problems, widening max number to %d\n", e.cfg.ProblemCount, e.cfg.MaxNumber)
}

func (e *Engine) evaluateBadges() {
	unlocked := e.badges.Update(e.stats.Clone())
	if len(unlocked) == 0 {
		return
	}
	if err := prefs.SaveBadges(context.Background(), e.kv, e.badges.Earned()); err != nil {
		e.logf("save badges: %v\n", err)
	}
	for _, id := range unlocked {
		e.effects.OnBadgeUnlocked(id)
	}
}

// ApplySettings validates and persists a new player name and difficulty,
// then deals a fresh round. An invalid difficulty leaves the session as is.
func (e *Engine) ApplySettings(ctx context.Context, name string, cfg model.DifficultyConfig) error {
	cfg.Operations = prefs.CanonicalOperations(cfg.Operations)
	if err := prefs.SaveSettings(ctx, e.kv, name, cfg); err != nil {
		return err
	}
	e.player = strings.TrimSpace(name)
	e.cfg = cfg
	e.timers.cancelKind(TimerRemoval)
	e.rebuildRound()
	return nil
}

// SetPlayer persists a new player name.
func (e *Engine) SetPlayer(ctx context.Context, name string) error {
	if err := prefs.SavePlayerName(ctx, e.kv, name); err != nil {
		return err
	}
	e.player = strings.TrimSpace(name)
	return nil
}

// Reset clears stored preferences and starts over with defaults. The
// session is reset even if clearing the store fails.
func (e *Engine) Reset(ctx context.Context) error {
	e.timers.cancelAll()
	err := e.kv.Clear(ctx)
	if err != nil {
		err = fmt.Errorf("clear store: %w", err)
	}
	e.player = ""
	e.cfg = prefs.DefaultDifficulty()
	e.badges.Reset()
	e.resetSession()
	e.running = false
	e.Start()
	return err
}

// Summary builds the history record for the session so far.
func (e *Engine) Summary(startedAt, endedAt time.Time) model.GameRecord {
	return model.GameRecord{
		StartedAt:    startedAt,
		EndedAt:      endedAt,
		Player:       e.player,
		Score:        e.score,
		Solved:       e.stats.TotalSolved,
		Wrong:        e.wrong,
		MaxStreak:    e.stats.MaxStreak,
		FastSolves:   e.stats.FastSolves,
		BossRuns:     e.boss.runs,
		Level:        e.stats.Level,
		MinNumber:    e.cfg.MinNumber,
		MaxNumber:    e.cfg.MaxNumber,
		OperandCount: e.cfg.OperandCount,
		Operations:   operationsLabel(e.cfg.Operations),
		DurationMs:   endedAt.Sub(startedAt).Milliseconds(),
	}
}

func operationsLabel(ops []model.Operation) string {
	parts := make([]string, 0, len(ops))
	for _, op := range prefs.CanonicalOperations(ops) {
		parts = append(parts, string(op))
	}
	return strings.Join(parts, ",")
}

func (e *Engine) clearSelection() {
	e.selProblem = ""
	e.selAnswer = ""
	e.selectedAt = time.Time{}
}

func (e *Engine) isRemoving(id string) bool {
	_, ok := e.removing[id]
	return ok
}

func (e *Engine) problem(id string) (model.Problem, bool) {
	for _, p := range e.round.Problems {
		if p.ID == id {
			return p, true
		}
	}
	return model.Problem{}, false
}

func (e *Engine) answer(id string) (model.AnswerTile, bool) {
	for _, a := range e.round.Answers {
		if a.ID == id {
			return a, true
		}
	}
	return model.AnswerTile{}, false
}
