// Package tui provides the Bubble Tea play screen.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuibonds/internal/badge"
	"github.com/verte-zerg/tuibonds/internal/game"
	"github.com/verte-zerg/tuibonds/internal/model"
	"github.com/verte-zerg/tuibonds/internal/prefs"
)

const bannerTTL = 1500 * time.Millisecond

// History stores finished games and supplies the best-score footer.
type History interface {
	InsertGame(ctx context.Context, g model.GameRecord) (int64, error)
	ListGames(ctx context.Context, cfg model.StatsConfig) ([]model.GameRecord, error)
}

type timerMsg struct{ id game.TimerID }

type clearBannerMsg struct{ gen int }

// Model implements the Bubble Tea play screen on top of a game engine.
type Model struct {
	engine  *game.Engine
	fx      *Feedback
	history History
	now     func() time.Time

	keys      keyMap
	help      help.Model
	bossBar   progress.Model
	nameInput textinput.Model
	naming    bool

	width  int
	height int

	column int
	cursor [2]int

	banners      []banner
	bannerGen    int
	confirmReset bool

	startedAt time.Time
	saved     bool
	bestScore int
	hasBest   bool
}

// NewModel constructs the play screen. fx must be the effects collector the
// engine was built with. history may be nil for ephemeral play.
func NewModel(engine *game.Engine, fx *Feedback, history History) *Model {
	if fx == nil {
		fx = NewFeedback()
	}
	input := textinput.New()
	input.Placeholder = "your name"
	input.CharLimit = 32
	input.Prompt = "Player: "

	m := &Model{
		engine:    engine,
		fx:        fx,
		history:   history,
		now:       time.Now,
		keys:      defaultKeyMap(),
		help:      help.New(),
		bossBar:   progress.New(progress.WithGradient("#FF4D4F", "#9B59FF"), progress.WithoutPercentage()),
		nameInput: input,
	}
	m.startedAt = m.now()
	m.loadFooterStats()
	return m
}

// Init implements tea.Model. It deals the first round.
func (m *Model) Init() tea.Cmd {
	m.engine.Start()
	cmds := []tea.Cmd{m.afterEngine()}
	if m.engine.View().Player == "" {
		cmds = append(cmds, m.startNaming())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.bossBar.Width = max(min(msg.Width/2, 60), 10)
		return m, nil
	case timerMsg:
		m.engine.Fire(msg.id)
		return m, m.afterEngine()
	case clearBannerMsg:
		if msg.gen == m.bannerGen {
			m.banners = nil
			m.fx.clearSparkle()
		}
		return m, nil
	case tea.KeyMsg:
		if m.naming {
			return m.updateName(msg)
		}
		return m.updateKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Reset) {
		if !m.confirmReset {
			m.confirmReset = true
			return m, nil
		}
		m.confirmReset = false
		return m, m.reset()
	}
	m.confirmReset = false

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.finishGame()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Left):
		m.column = columnProblems
		m.clampCursor()
	case key.Matches(msg, m.keys.Right):
		m.column = columnAnswers
		m.clampCursor()
	case key.Matches(msg, m.keys.Select):
		m.selectFocused()
		return m, m.afterEngine()
	case key.Matches(msg, m.keys.Rename):
		return m, m.startNaming()
	case key.Matches(msg, m.keys.Preset):
		return m, m.cyclePreset()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.finishGame()
		return m, tea.Quit
	case tea.KeyEsc:
		m.naming = false
		m.nameInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.naming = false
		m.nameInput.Blur()
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			return m, nil
		}
		if err := m.engine.SetPlayer(context.Background(), name); err != nil {
			logErrf("failed to save player name: %v\n", err)
		}
		m.loadFooterStats()
		return m, nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) startNaming() tea.Cmd {
	m.naming = true
	m.nameInput.SetValue(m.engine.View().Player)
	m.nameInput.CursorEnd()
	return m.nameInput.Focus()
}

// cyclePreset saves the next preset the enabled operations can draw from
// and deals a fresh round with it.
func (m *Model) cyclePreset() tea.Cmd {
	v := m.engine.View()
	next := presetIndex(v.Difficulty) + 1
	for i := range model.Presets {
		p := model.Presets[(next+i)%len(model.Presets)]
		cfg, err := prefs.ApplyPreset(v.Difficulty, p.Name)
		if err == nil {
			err = m.engine.ApplySettings(context.Background(), v.Player, cfg)
		}
		if errors.Is(err, prefs.ErrInvalidDifficulty) {
			continue
		}
		if err != nil {
			logErrf("failed to save difficulty: %v\n", err)
			m.fx.push(bannerBad, "Could not change difficulty")
			return m.afterEngine()
		}
		m.cursor = [2]int{}
		m.fx.push(bannerInfo, fmt.Sprintf("Difficulty: %s (%s)", p.Name, prefs.Label(cfg)))
		return m.afterEngine()
	}
	m.fx.push(bannerBad, "No preset fits the enabled operations")
	return m.afterEngine()
}

// presetIndex returns the preset whose range and problem count cfg uses,
// or -1.
func presetIndex(cfg model.DifficultyConfig) int {
	for i, p := range model.Presets {
		if p.MinNumber == cfg.MinNumber && p.MaxNumber == cfg.MaxNumber && p.ProblemCount == cfg.ProblemCount {
			return i
		}
	}
	return -1
}

func (m *Model) selectFocused() {
	v := m.engine.View()
	at := game.Point{X: m.column, Y: m.cursor[m.column]}
	switch m.column {
	case columnProblems:
		if at.Y < len(v.Problems) {
			m.engine.SelectProblem(v.Problems[at.Y].ID, at)
		}
	case columnAnswers:
		if at.Y < len(v.Answers) {
			m.engine.SelectAnswer(v.Answers[at.Y].ID, at)
		}
	}
}

// afterEngine turns newly scheduled engine timers into ticks and picks up
// banners raised by the last engine call.
func (m *Model) afterEngine() tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range m.engine.TakeTimers() {
		id := t.ID
		cmds = append(cmds, tea.Tick(t.Delay, func(time.Time) tea.Msg {
			return timerMsg{id: id}
		}))
	}
	if fresh := m.fx.drain(); len(fresh) > 0 {
		m.banners = fresh
		m.bannerGen++
		gen := m.bannerGen
		cmds = append(cmds, tea.Tick(bannerTTL, func(time.Time) tea.Msg {
			return clearBannerMsg{gen: gen}
		}))
	}
	m.clampCursor()
	return tea.Batch(cmds...)
}

func (m *Model) columnLen(column int) int {
	v := m.engine.View()
	if column == columnProblems {
		return len(v.Problems)
	}
	return len(v.Answers)
}

func (m *Model) moveCursor(delta int) {
	n := m.columnLen(m.column)
	if n == 0 {
		m.cursor[m.column] = 0
		return
	}
	m.cursor[m.column] = (m.cursor[m.column] + delta + n) % n
}

func (m *Model) clampCursor() {
	for c := range m.cursor {
		n := m.columnLen(c)
		if m.cursor[c] >= n {
			m.cursor[c] = max(n-1, 0)
		}
	}
}

func (m *Model) reset() tea.Cmd {
	m.finishGame()
	if err := m.engine.Reset(context.Background()); err != nil {
		logErrf("failed to reset progress: %v\n", err)
	}
	m.startedAt = m.now()
	m.saved = false
	m.cursor = [2]int{}
	m.column = columnProblems
	m.hasBest = false
	m.bestScore = 0
	return tea.Batch(m.afterEngine(), m.startNaming())
}

// finishGame stops the engine and records the session once. Sessions with no
// attempts are not recorded.
func (m *Model) finishGame() {
	if m.saved {
		return
	}
	m.saved = true
	m.engine.Stop()
	rec := m.engine.Summary(m.startedAt, m.now())
	if rec.Solved+rec.Wrong == 0 || m.history == nil {
		return
	}
	if _, err := m.history.InsertGame(context.Background(), rec); err != nil {
		logErrf("failed to save game: %v\n", err)
	}
}

func (m *Model) loadFooterStats() {
	m.hasBest = false
	m.bestScore = 0
	if m.history == nil {
		return
	}
	player := m.engine.View().Player
	if player == "" {
		return
	}
	games, err := m.history.ListGames(context.Background(), model.StatsConfig{Player: player})
	if err != nil {
		logErrf("failed to load game history: %v\n", err)
		return
	}
	for _, g := range games {
		m.bestScore = max(m.bestScore, g.Score)
		m.hasBest = true
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	v := m.engine.View()
	var sparkle *game.Point
	if m.fx.sparked {
		p := m.fx.sparkle
		sparkle = &p
	}
	sections := []string{renderHeader(v)}
	if m.naming {
		sections = append(sections, m.nameInput.View())
	}
	sections = append(sections, renderBoard(boardTiles(v, m.cursor, m.column, sparkle), v.Boss))
	if v.Boss.Active {
		sections = append(sections, m.renderBoss(v.Boss))
	}
	switch {
	case m.confirmReset:
		sections = append(sections, bannerStyles[bannerBad].Render("Press ctrl+r again to erase all progress"))
	case len(m.banners) > 0:
		sections = append(sections, renderBanners(m.banners))
	default:
		sections = append(sections, "")
	}
	sections = append(sections, m.renderFooter(v), m.help.View(m.keys))
	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func renderHeader(v game.View) string {
	player := v.Player
	if player == "" {
		player = "anonymous"
	}
	return titleStyle.Render(fmt.Sprintf("%s · %d-%d · %d operands", player, v.Difficulty.MinNumber, v.Difficulty.MaxNumber, v.Difficulty.OperandCount))
}

func (m *Model) renderBoss(b game.BossView) string {
	secs := b.Remaining.Seconds()
	label := bannerStyles[bannerBoss].Render(fmt.Sprintf("BOSS ×%d  %.1fs", game.BossMultiplier, secs))
	return lipgloss.JoinHorizontal(lipgloss.Center, label, "  ", m.bossBar.ViewAs(b.Fraction))
}

func (m *Model) renderFooter(v game.View) string {
	segments := []string{
		fmt.Sprintf("Score %d", v.Score),
		fmt.Sprintf("Streak %d", v.Streak),
		fmt.Sprintf("×%.1f", v.Multiplier),
		fmt.Sprintf("Level %d", v.Level),
	}
	if m.hasBest {
		segments = append(segments, fmt.Sprintf("Best %d", max(m.bestScore, v.Score)))
	}
	segments = append(segments, fmt.Sprintf("Badges %d/%d", len(v.EarnedBadges), len(badge.Catalog())))
	return footerStyle.Render(strings.Join(segments, "  "))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
