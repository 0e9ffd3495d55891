package models

import (
	"errors"
	"testing"

	"github.com/localnerve/lifetracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProgressionType(t *testing.T) {
	for _, s := range []string{"LINEAR", "EXPONENTIAL"} {
		pt, err := ParseProgressionType(s)
		require.NoError(t, err)
		assert.Equal(t, ProgressionType(s), pt)
	}

	for _, s := range []string{"", "linear", "QUADRATIC", " LINEAR"} {
		_, err := ParseProgressionType(s)
		require.Error(t, err, s)
		assert.True(t, errors.Is(err, types.ErrValidation), "%q should be a validation error", s)
	}
}

func TestNewXPProgression(t *testing.T) {
	prog, err := NewXPProgression("LINEAR", 100, 50)
	require.NoError(t, err)
	assert.Len(t, prog.ID, 36)
	assert.Equal(t, 0, prog.XP)
	assert.Equal(t, 1, prog.Level)
	assert.Equal(t, ProgressionLinear, prog.Type)

	_, err = NewXPProgression("BOGUS", 1, 1)
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestXPProgressionValidate(t *testing.T) {
	prog := &XPProgression{Type: ProgressionExponential, XP: 0, Level: 1}
	assert.NoError(t, prog.Validate())

	prog.XP = -1
	assert.ErrorIs(t, prog.Validate(), types.ErrValidation)

	prog.XP = 10
	prog.Level = 0
	assert.ErrorIs(t, prog.Validate(), types.ErrValidation)

	prog.Level = 2
	prog.Type = "OTHER"
	assert.ErrorIs(t, prog.Validate(), types.ErrValidation)
}

func TestLinearCurve(t *testing.T) {
	prog := &XPProgression{Type: ProgressionLinear, Base: 100, Rate: 50}

	assert.Equal(t, 100.0, prog.StepXP(1))
	assert.Equal(t, 150.0, prog.StepXP(2))
	assert.Equal(t, 200.0, prog.StepXP(3))

	assert.Equal(t, 0.0, prog.XPForLevel(1))
	assert.Equal(t, 100.0, prog.XPForLevel(2))
	assert.Equal(t, 250.0, prog.XPForLevel(3))
	assert.Equal(t, 450.0, prog.XPForLevel(4))

	cases := map[int]int{0: 1, 99: 1, 100: 2, 249: 2, 250: 3, 449: 3, 450: 4}
	for xp, level := range cases {
		assert.Equal(t, level, prog.LevelForXP(xp), "xp %d", xp)
	}
}

func TestExponentialCurve(t *testing.T) {
	prog := &XPProgression{Type: ProgressionExponential, Base: 100, Rate: 2}

	assert.Equal(t, 100.0, prog.StepXP(1))
	assert.Equal(t, 200.0, prog.StepXP(2))
	assert.Equal(t, 400.0, prog.StepXP(3))

	assert.Equal(t, 3, prog.LevelForXP(699))
	assert.Equal(t, 4, prog.LevelForXP(700))
}

func TestCurveWithoutGrowthStaysAtLevelOne(t *testing.T) {
	flat := &XPProgression{Type: ProgressionLinear, Base: 0, Rate: 0}
	assert.Equal(t, 1, flat.LevelForXP(1_000_000))

	shrinking := &XPProgression{Type: ProgressionLinear, Base: 10, Rate: -10}
	// 10 to reach level 2, then the step is 0 and progression stops
	assert.Equal(t, 2, shrinking.LevelForXP(1_000_000))
}

func TestCurveIsCapped(t *testing.T) {
	cheap := &XPProgression{Type: ProgressionExponential, Base: 1, Rate: 1}
	assert.Equal(t, MaxLevel, cheap.LevelForXP(MaxLevel*10))
}
