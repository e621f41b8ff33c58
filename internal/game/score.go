package game

import "time"

// Scoring constants. Multipliers are kept in tenths so scores stay integral.
const (
	BasePoints          = 100
	MultiplierBase      = 10
	MultiplierStep      = 1
	MultiplierCap       = 30
	FastSolveThreshold  = 5 * time.Second
	PointsPerLevel      = 1000
	StreakMilestone     = 5
	RemovalGrace        = 500 * time.Millisecond
	PlayTickInterval    = time.Second
	widenStep           = 5
	multiplierPrecision = 10
)

// SpeedTier is one rung of the speed bonus ladder.
type SpeedTier struct {
	Name   string
	Within time.Duration
	Bonus  int
}

// SpeedTiers is ordered fastest first; the first tier that fits wins.
var SpeedTiers = []SpeedTier{
	{Name: "Lightning Fast", Within: 3 * time.Second, Bonus: 500},
	{Name: "Super Fast", Within: 5 * time.Second, Bonus: 300},
	{Name: "Fast", Within: 8 * time.Second, Bonus: 200},
	{Name: "Good", Within: 12 * time.Second, Bonus: 100},
}

// SpeedBonus returns the tier reached for elapsed, if any.
func SpeedBonus(elapsed time.Duration) (SpeedTier, bool) {
	for _, tier := range SpeedTiers {
		if elapsed <= tier.Within {
			return tier, true
		}
	}
	return SpeedTier{}, false
}

// matchPoints is base × streak multiplier × boss multiplier + speed bonus.
func matchPoints(multiplierTenths, bossMultiplier, speedBonus int) int {
	return BasePoints*multiplierTenths/multiplierPrecision*bossMultiplier + speedBonus
}

// LevelFor derives the level from a score.
func LevelFor(score int) int {
	if score < 0 {
		return 1
	}
	return score/PointsPerLevel + 1
}
