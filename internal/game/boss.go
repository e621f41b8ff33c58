package game

import "time"

// Boss mode constants.
const (
	BossStreak       = 10
	BossDuration     = 10 * time.Second
	BossTickInterval = 100 * time.Millisecond
	BossMultiplier   = 3
	BossBonusPercent = 20
	BossPaletteSize  = 3
	bossTicks        = int(BossDuration / BossTickInterval)
)

// BossView is the presentation snapshot of boss mode.
type BossView struct {
	Active     bool
	Remaining  time.Duration
	Fraction   float64
	ColorIndex int
}

type boss struct {
	active     bool
	ticksLeft  int
	colorIndex int
	tick       TimerID
	runs       int
}

func newBoss() boss {
	return boss{ticksLeft: bossTicks}
}

func (b boss) multiplier() int {
	if b.active {
		return BossMultiplier
	}
	return 1
}

func (b boss) view() BossView {
	v := BossView{Active: b.active, ColorIndex: b.colorIndex}
	if b.active {
		v.Remaining = time.Duration(b.ticksLeft) * BossTickInterval
		v.Fraction = float64(b.ticksLeft) / float64(bossTicks)
	}
	return v
}

// bossBonus is floor(score × 20%) for non-negative scores.
func bossBonus(score int) int {
	if score <= 0 {
		return 0
	}
	return score * BossBonusPercent / 100
}

func (e *Engine) maybeEnterBoss() {
	if e.boss.active || e.stats.CurrentStreak != BossStreak {
		return
	}
	e.boss.active = true
	e.boss.ticksLeft = bossTicks
	e.boss.colorIndex = 0
	e.boss.runs++
	e.boss.tick = e.timers.schedule(BossTickInterval, timerEntry{kind: TimerBossTick})
	e.effects.OnBossModeStart()
}

func (e *Engine) bossTick() {
	if !e.boss.active {
		return
	}
	e.boss.ticksLeft--
	e.boss.colorIndex = (e.boss.colorIndex + 1) % BossPaletteSize
	if e.boss.ticksLeft <= 0 {
		e.exitBoss()
		return
	}
	e.boss.tick = e.timers.schedule(BossTickInterval, timerEntry{kind: TimerBossTick})
}

func (e *Engine) exitBoss() {
	e.boss.active = false
	e.boss.ticksLeft = bossTicks
	e.boss.colorIndex = 0
	e.timers.cancel(e.boss.tick)
	e.boss.tick = 0
	e.addScore(bossBonus(e.score))
	e.effects.OnBossModeEnd()
	e.evaluateBadges()
}
