package xp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneralLevelFromXP(t *testing.T) {
	tests := []struct {
		xp   int64
		want int64
	}{
		{xp: 0, want: 1},
		{xp: 1, want: 1},
		{xp: 100, want: 2},
		{xp: 1000, want: 5},
		{xp: 5000, want: 15},
		{xp: 10000, want: 23},
		{xp: 100000, want: 100},
		{xp: 1000000, want: 445},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, General{}.LevelFromXP(tt.xp), "xp=%d", tt.xp)
	}
}

func TestGeneralXPForLevel(t *testing.T) {
	tests := []struct {
		level int64
		want  int64
	}{
		{level: 1, want: 0},
		{level: 2, want: 85},
		{level: 3, want: 245},
		{level: 5, want: 712},
		{level: 10, want: 2478},
		{level: 16, want: 5436},
		{level: 50, want: 33587},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, General{}.XPForLevel(tt.level), "level=%d", tt.level)
	}
}

func TestMEE6LevelFromXP(t *testing.T) {
	tests := []struct {
		xp   int64
		want int64
	}{
		{xp: 0, want: 0},
		{xp: 99, want: 0},
		{xp: 100, want: 1},
		{xp: 255, want: 2},
		{xp: 5000, want: 10},
		{xp: 10000, want: 13},
		{xp: 1000000, want: 79},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MEE6{}.LevelFromXP(tt.xp), "xp=%d", tt.xp)
	}
}

func TestMEE6XPForLevel(t *testing.T) {
	tests := []struct {
		level int64
		want  int64
	}{
		{level: 0, want: 0},
		{level: 1, want: 100},
		{level: 2, want: 255},
		{level: 5, want: 1150},
		{level: 10, want: 4675},
		{level: 20, want: 23850},
		{level: 50, want: 268375},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MEE6{}.XPForLevel(tt.level), "level=%d", tt.level)
	}
}

// Higher XP must never produce a lower level, for either curve family.
func TestLevelFromXPMonotonic(t *testing.T) {
	curves := map[string]Curve{"general": General{}, "mee6": MEE6{}}
	for name, curve := range curves {
		t.Run(name, func(t *testing.T) {
			var prev int64
			for xp := int64(0); xp <= 2_000_000; xp += 137 {
				level := curve.LevelFromXP(xp)
				assert.GreaterOrEqual(t, level, prev, "xp=%d", xp)
				prev = level
			}
		})
	}
}

// XPForLevel must grow with the level so progress bars stay coherent.
func TestXPForLevelMonotonic(t *testing.T) {
	curves := map[string]Curve{"general": General{}, "mee6": MEE6{}}
	for name, curve := range curves {
		t.Run(name, func(t *testing.T) {
			prev := int64(-1)
			for level := int64(1); level <= 500; level++ {
				threshold := curve.XPForLevel(level)
				assert.Greater(t, threshold, prev, "level=%d", level)
				prev = threshold
			}
		})
	}
}

func TestForLegacy(t *testing.T) {
	assert.IsType(t, MEE6{}, ForLegacy(true))
	assert.IsType(t, General{}, ForLegacy(false))
}
