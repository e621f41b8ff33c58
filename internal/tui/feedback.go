package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuibonds/internal/badge"
	"github.com/verte-zerg/tuibonds/internal/game"
)

type bannerKind int

const (
	bannerGood bannerKind = iota
	bannerBad
	bannerInfo
	bannerBoss
)

type banner struct {
	kind bannerKind
	text string
}

// Feedback turns engine effects into banners and a sparkle marker for the
// play screen. Engine calls only append; the model drains after each event.
type Feedback struct {
	queue   []banner
	sparkle game.Point
	sparked bool
}

var _ game.Effects = (*Feedback)(nil)

// NewFeedback returns an empty effects collector.
func NewFeedback() *Feedback {
	return &Feedback{}
}

func (f *Feedback) OnCorrectMatch(x, y int, streakTier bool) {
	f.sparkle = game.Point{X: x, Y: y}
	f.sparked = true
	if streakTier {
		f.push(bannerGood, "Correct! On fire!")
		return
	}
	f.push(bannerGood, "Correct!")
}

func (f *Feedback) OnWrongMatch() {
	f.sparked = false
	f.push(bannerBad, "Not a match")
}

func (f *Feedback) OnLevelUp() {
	f.push(bannerInfo, "Level up!")
}

func (f *Feedback) OnStreakMilestone() {
	f.push(bannerGood, "Streak milestone!")
}

func (f *Feedback) OnBossModeStart() {
	f.push(bannerBoss, "BOSS MODE ×3")
}

func (f *Feedback) OnBossModeEnd() {
	f.push(bannerInfo, "Boss mode cleared, bonus banked")
}

func (f *Feedback) OnBadgeUnlocked(id badge.ID) {
	name := string(id)
	if b, ok := badge.Lookup(id); ok {
		name = b.Name
	}
	f.push(bannerInfo, fmt.Sprintf("Badge unlocked: %s", name))
}

func (f *Feedback) push(kind bannerKind, text string) {
	f.queue = append(f.queue, banner{kind: kind, text: text})
}

// drain returns queued banners and empties the queue.
func (f *Feedback) drain() []banner {
	out := f.queue
	f.queue = nil
	return out
}

func (f *Feedback) clearSparkle() {
	f.sparked = false
}

var bannerStyles = map[bannerKind]lipgloss.Style{
	bannerGood: lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true),
	bannerBad:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true),
	bannerInfo: lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
	bannerBoss: lipgloss.NewStyle().Foreground(lipgloss.Color("#9B59FF")).Bold(true),
}

func renderBanners(banners []banner) string {
	parts := make([]string, 0, len(banners))
	for _, b := range banners {
		parts = append(parts, bannerStyles[b.kind].Render(b.text))
	}
	return strings.Join(parts, "  ")
}
