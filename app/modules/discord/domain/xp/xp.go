// Package xp converts between cumulative experience points and discrete
// levels. Two curve families exist: the general one used by default, and a
// MEE6-compatible one for guilds that imported their history from that bot.
package xp

import "math"

// Curve is a paired forward/inverse conversion between XP and levels.
// The two functions are best-effort inverses of each other: both round,
// so LevelFromXP(XPForLevel(l)) is not guaranteed to be exactly l, but
// LevelFromXP is monotonic in XP for both families.
type Curve interface {
	// LevelFromXP returns the level reached with the given cumulative XP.
	LevelFromXP(xp int64) int64
	// XPForLevel returns the cumulative XP required to reach the given
	// level. Levels start at 1 for the general curve and 0 for MEE6.
	XPForLevel(level int64) int64
}

// ForLegacy selects the curve family: MEE6 when legacy is true, otherwise
// the general curve.
func ForLegacy(legacy bool) Curve {
	if legacy {
		return MEE6{}
	}
	return General{}
}

// round100 rounds to 2 decimal places. The reference implementation rounds
// before flooring, which matters on knife-edge floating point values; keep
// the two-step sequence as is.
func round100(x float64) float64 {
	return math.Round(x*100) / 100
}

// General is the default progression curve, a continuous power formula.
type General struct{}

func (General) LevelFromXP(xp int64) int64 {
	approxLevel := 1 + math.Pow(float64(xp), 13.0/20.0)*7.0/125.0
	return int64(math.Floor(round100(approxLevel)))
}

func (General) XPForLevel(level int64) int64 {
	return int64(math.Ceil(math.Pow(float64(level-1)*125.0/7.0, 20.0/13.0)))
}

// MEE6 mirrors the stepped thresholds of the MEE6 bot: reaching level l+1
// from level l costs 5*l^2 + 50*l + 100 XP.
type MEE6 struct{}

// LevelFromXP walks the cumulative thresholds until xp no longer covers
// them. Levels stay small for any realistic XP amount, so the O(level)
// loop is fine.
func (MEE6) LevelFromXP(xp int64) int64 {
	var level, levelXP int64
	for xp >= levelXP {
		levelXP += 5*level*level + 50*level + 100
		level++
	}
	return level - 1
}

// XPForLevel is a closed-form approximation of the cumulative threshold
// sum. It does not exactly invert LevelFromXP at every level; it is only
// used for progress-bar display, matching the reference behavior.
func (MEE6) XPForLevel(level int64) int64 {
	l := float64(level)
	approxXP := 5.0/3.0*l*l*l + 22.5*l*l + 151515.0/1998.0*l
	return int64(math.Floor(round100(approxXP)))
}
