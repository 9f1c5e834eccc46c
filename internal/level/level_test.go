package level

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	tests := []struct {
		xp       int64
		expected int
	}{
		{0, 0},
		{-50, 0},
		{20, 0},
		{99, 0},
		{100, 1},
		{399, 1},
		{400, 2},
		{2499, 4},
		{2500, 5},
		{10000, 10},
		{62500, 25},
		{1_000_000_000_000_000, 100_000_000},
		{math.MaxInt64, MaxLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, For(tt.xp), "XP: %d", tt.xp)
	}
}

func TestThresholdFor(t *testing.T) {
	tests := []struct {
		level    int
		expected int64
	}{
		{-1, 0},
		{0, 0},
		{1, 100},
		{2, 400},
		{5, 2500},
		{25, 62500},
		{MaxLevel, 9223371976260240100},
		{MaxLevel + 1, math.MaxInt64},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ThresholdFor(tt.level), "level: %d", tt.level)
	}
}

func TestFor_InverseOfThreshold(t *testing.T) {
	for lvl := 0; lvl <= 5000; lvl++ {
		threshold := ThresholdFor(lvl)
		assert.Equal(t, lvl, For(threshold), "level %d threshold %d", lvl, threshold)
		if lvl > 0 {
			assert.Equal(t, lvl-1, For(threshold-1), "just below level %d", lvl)
		}
	}
}

func TestFor_Monotonic(t *testing.T) {
	prev := 0
	for xp := int64(0); xp <= 250000; xp += 7 {
		got := For(xp)
		if got < prev {
			t.Fatalf("level decreased at xp=%d: %d -> %d", xp, prev, got)
		}
		prev = got
	}
}

func TestProgressFor(t *testing.T) {
	p := ProgressFor(450)

	assert.Equal(t, 2, p.Level)
	assert.Equal(t, int64(50), p.Current)
	assert.Equal(t, int64(500), p.Needed) // 900 - 400
	assert.Equal(t, int64(450), p.Remaining())

	zero := ProgressFor(0)
	assert.Equal(t, 0, zero.Level)
	assert.Equal(t, int64(0), zero.Current)
	assert.Equal(t, int64(100), zero.Needed)
}
