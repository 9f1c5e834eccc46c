// Package level maps accumulated XP to levels and back.
//
// The curve is level = floor(k * sqrt(xp)) with k = Coefficient, so reaching
// level L takes (L/k)^2 XP. All functions are pure.
package level

import (
	"math"
)

// For returns the largest level L >= 0 with ThresholdFor(L) <= xp.
// Negative XP is treated as zero.
func For(xp int64) int {
	if xp <= 0 {
		return 0
	}

	// Float estimate, then settle on the exact integer boundary so that
	// For(ThresholdFor(L)) == L holds despite rounding in sqrt.
	lvl := int(Coefficient * math.Sqrt(float64(xp)))
	if lvl > MaxLevel {
		lvl = MaxLevel
	}
	for lvl > 0 && ThresholdFor(lvl) > xp {
		lvl--
	}
	for lvl < MaxLevel && ThresholdFor(lvl+1) <= xp {
		lvl++
	}
	return lvl
}

// ThresholdFor returns the total XP needed to reach level. Levels above
// MaxLevel are unreachable and report math.MaxInt64.
func ThresholdFor(level int) int64 {
	if level <= 0 {
		return 0
	}
	if level > MaxLevel {
		return math.MaxInt64
	}
	base := int64(level) * xpRootPerLevel
	return base * base
}

// xpRootPerLevel is 1/Coefficient, so thresholds are exact squares
var xpRootPerLevel = int64(math.Round(1 / Coefficient))

// Progress describes how far a member is into their current level
type Progress struct {
	Level   int
	Current int64 // XP earned since reaching Level
	Needed  int64 // XP span between Level and Level+1
}

// ProgressFor returns the level and the XP progress within it for xp
func ProgressFor(xp int64) Progress {
	lvl := For(xp)
	floor := ThresholdFor(lvl)
	return Progress{
		Level:   lvl,
		Current: xp - floor,
		Needed:  ThresholdFor(lvl+1) - floor,
	}
}

// Remaining is the XP still missing to reach the next level
func (p Progress) Remaining() int64 {
	return p.Needed - p.Current
}
