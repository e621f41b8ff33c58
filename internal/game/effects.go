package game

import "github.com/verte-zerg/tuibonds/internal/badge"

// Effects receives fire-and-forget feedback intents. Implementations must
// not block; the engine never waits on them.
type Effects interface {
	OnCorrectMatch(x, y int, streakTier bool)
	OnWrongMatch()
	OnLevelUp()
	OnStreakMilestone()
	OnBossModeStart()
	OnBossModeEnd()
	OnBadgeUnlocked(id badge.ID)
}

// NopEffects ignores every intent.
type NopEffects struct{}

func (NopEffects) OnCorrectMatch(int, int, bool) {}
func (NopEffects) OnWrongMatch()                 {}
func (NopEffects) OnLevelUp()                    {}
func (NopEffects) OnStreakMilestone()            {}
func (NopEffects) OnBossModeStart()              {}
func (NopEffects) OnBossModeEnd()                {}
func (NopEffects) OnBadgeUnlocked(badge.ID)      {}

// guardedEffects keeps a panicking collaborator out of the engine's control flow.
type guardedEffects struct {
	inner Effects
	logf  func(format string, args ...any)
}

func (g guardedEffects) call(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			g.logf("effects %s panicked: %v\n", name, r)
		}
	}()
	fn()
}

func (g guardedEffects) OnCorrectMatch(x, y int, streakTier bool) {
	g.call("correct-match", func() { g.inner.OnCorrectMatch(x, y, streakTier) })
}

func (g guardedEffects) OnWrongMatch() {
	g.call("wrong-match", g.inner.OnWrongMatch)
}

func (g guardedEffects) OnLevelUp() {
	g.call("level-up", g.inner.OnLevelUp)
}

func (g guardedEffects) OnStreakMilestone() {
	g.call("streak-milestone", g.inner.OnStreakMilestone)
}

func (g guardedEffects) OnBossModeStart() {
	g.call("boss-start", g.inner.OnBossModeStart)
}

func (g guardedEffects) OnBossModeEnd() {
	g.call("boss-end", g.inner.OnBossModeEnd)
}

func (g guardedEffects) OnBadgeUnlocked(id badge.ID) {
	g.call("badge-unlocked", func() { g.inner.OnBadgeUnlocked(id) })
}
