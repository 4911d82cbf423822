package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyStatDeltaMultiLevel(t *testing.T) {
	// 100 consumed for 1→2, 150 banked; 2→3 costs 200 so it stops.
	level, xp := ApplyStatDelta(1, 0, 250)
	assert.Equal(t, 2, level)
	assert.Equal(t, 150, xp)

	// 100 + 200 + 300 consumed in one award.
	level, xp = ApplyStatDelta(1, 0, 600)
	assert.Equal(t, 4, level)
	assert.Equal(t, 0, xp)
}

func TestApplyStatDeltaDemotionFloor(t *testing.T) {
	// At level 1 a penalty can never go below 0 xp.
	level, xp := ApplyStatDelta(1, 30, -1000)
	assert.Equal(t, 1, level)
	assert.Equal(t, 0, xp)
}

func TestApplyStatDeltaDemotesAtMostOneLevel(t *testing.T) {
	// Level 3 with 10 banked, hit with -5000: one demotion to level 2,
	// then floored at 0. Never cascades further down.
	level, xp := ApplyStatDelta(3, 10, -5000)
	assert.Equal(t, 2, level)
	assert.Equal(t, 0, xp)

	// A mild penalty demotes one level and keeps the remainder.
	level, xp = ApplyStatDelta(2, 20, -50)
	assert.Equal(t, 1, level)
	assert.Equal(t, 70, xp)
}

func TestApplyStatDeltaNeverOverflowsBoundary(t *testing.T) {
	awards := []int{7, 199, 1, 350, -20, 999, 42, -400, 10000}
	level, xp := 1, 0
	for _, a := range awards {
		level, xp = ApplyStatDelta(level, xp, a)
		assert.GreaterOrEqual(t, xp, 0)
		assert.Less(t, xp, level*100)
		assert.GreaterOrEqual(t, level, 1)
	}
}

func TestCharacterProgress(t *testing.T) {
	level, inLevel, next := CharacterProgress(0)
	assert.Equal(t, 1, level)
	assert.Equal(t, 0, inLevel)
	assert.Equal(t, 500, next)

	// 500 + 1000 consumed exactly: level 3 with nothing banked.
	level, inLevel, next = CharacterProgress(1500)
	assert.Equal(t, 3, level)
	assert.Equal(t, 0, inLevel)
	assert.Equal(t, 1500, next)

	level, inLevel, _ = CharacterProgress(1499)
	assert.Equal(t, 2, level)
	assert.Equal(t, 999, inLevel)
}
