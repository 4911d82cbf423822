package engine

// Two independent leveling curves, both pure.
//
// Per-stat: advancing from level L costs L*100 XP. Penalties can demote at
// most one level per award, then floor at level 1 / xp 0.
//
// Character-wide: advancing from level L costs L*500 XP (triangular
// thresholds), derived from lifetime total XP which penalties never reduce.

// StatNextLevelXP returns the XP needed to advance from the given stat level.
func StatNextLevelXP(level int) int {
	return level * 100
}

// ApplyStatDelta applies a signed XP delta to a stat's (level, xp) pair.
// Multi-level jumps are supported on the way up; a penalty that exceeds
// banked progress demotes exactly one level regardless of magnitude.
func ApplyStatDelta(level, xp, delta int) (int, int) {
	if level < 1 {
		level = 1
	}
	xp += delta

	if xp < 0 {
		if level > 1 {
			level--
			xp = level*100 + xp
			if xp < 0 {
				xp = 0
			}
		} else {
			xp = 0
		}
	}

	for xp >= level*100 {
		xp -= level * 100
		level++
	}
	return level, xp
}

// CharacterNextLevelXP returns the XP needed to advance from the given
// overall level.
func CharacterNextLevelXP(level int) int {
	return level * 500
}

// CharacterProgress derives (level, xpInLevel, xpForNext) from lifetime
// total XP by repeated subtraction starting at level 1.
func CharacterProgress(totalXP int) (level, xpInLevel, xpForNext int) {
	if totalXP < 0 {
		totalXP = 0
	}
	level = 1
	for totalXP >= level*500 {
		totalXP -= level * 500
		level++
	}
	return level, totalXP, level * 500
}
