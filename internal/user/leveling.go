package user

import "math"

// expPerLevelUnit scales experience into the square-root level curve.
const expPerLevelUnit = 100

// LevelFromExperience maps cumulative experience to a level.
// The curve is floor(sqrt(exp/100)) + 1, so level is always at least 1
// and monotonically non-decreasing in exp. Negative experience is clamped
// to zero; write paths reject it before it can be persisted.
func LevelFromExperience(exp int) int {
	if exp < 0 {
		exp = 0
	}
	return int(math.Sqrt(float64(exp)/expPerLevelUnit)) + 1
}

// ExperienceForLevel returns the cumulative experience required to advance
// past the given level, i.e. the threshold at which level+1 is reached.
func ExperienceForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return level * level * expPerLevelUnit
}

// ExpToNextLevel returns the remaining experience until the next level.
// The level is recomputed from the experience total first so the remaining
// value stays consistent even when the stored level is stale.
func ExpToNextLevel(exp int) int {
	level := LevelFromExperience(exp)
	remaining := ExperienceForLevel(level) - exp
	if remaining < 0 {
		return 0
	}
	return remaining
}
