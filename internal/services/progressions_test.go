package services_test

import (
	"context"
	"testing"

	"github.com/localnerve/lifetracker/internal/models"
	"github.com/localnerve/lifetracker/internal/testhelpers"
	"github.com/localnerve/lifetracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateXPProgression(t *testing.T) {
	store, db := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()

	prog, err := store.CreateXPProgression(ctx, "EXPONENTIAL", 100, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 0, prog.XP)
	assert.Equal(t, 1, prog.Level)
	assert.Equal(t, models.ProgressionExponential, prog.Type)
	assert.False(t, prog.CreatedAt.IsZero())

	_, err = store.CreateXPProgression(ctx, "QUADRATIC", 1, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrValidation)

	var count int64
	require.NoError(t, db.Model(&models.XPProgression{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "an invalid type must not be stored")
}

func TestUpdateXPProgression(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()

	prog, err := store.CreateXPProgression(ctx, "LINEAR", 100, 50)
	require.NoError(t, err)

	updated, err := store.UpdateXPProgression(ctx, prog.ID, 300, 3)
	require.NoError(t, err)
	assert.Equal(t, 300, updated.XP)
	assert.Equal(t, 3, updated.Level)

	got, err := store.GetXPProgression(ctx, prog.ID)
	require.NoError(t, err)
	assert.Equal(t, 300, got.XP)
	assert.Equal(t, 3, got.Level)

	_, err = store.UpdateXPProgression(ctx, "missing", 1, 1)
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = store.UpdateXPProgression(ctx, prog.ID, -5, 1)
	assert.ErrorIs(t, err, types.ErrValidation)

	got, err = store.GetXPProgression(ctx, prog.ID)
	require.NoError(t, err)
	assert.Equal(t, 300, got.XP, "a rejected update leaves the row alone")
}

func TestAwardXP(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()

	prog, err := store.CreateXPProgression(ctx, "LINEAR", 100, 50)
	require.NoError(t, err)

	prog, err = store.AwardXP(ctx, prog.ID, 120)
	require.NoError(t, err)
	assert.Equal(t, 120, prog.XP)
	assert.Equal(t, 2, prog.Level)

	prog, err = store.AwardXP(ctx, prog.ID, 130)
	require.NoError(t, err)
	assert.Equal(t, 250, prog.XP)
	assert.Equal(t, 3, prog.Level)

	prog, err = store.AwardXP(ctx, prog.ID, -1000)
	require.NoError(t, err)
	assert.Equal(t, 0, prog.XP)
	assert.Equal(t, 1, prog.Level)

	_, err = store.AwardXP(ctx, "missing", 10)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestListXPProgressions(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()

	progs, err := store.ListXPProgressions(ctx)
	require.NoError(t, err)
	assert.Empty(t, progs)

	first, err := store.CreateXPProgression(ctx, "LINEAR", 1, 1)
	require.NoError(t, err)
	second, err := store.CreateXPProgression(ctx, "EXPONENTIAL", 1, 2)
	require.NoError(t, err)

	progs, err = store.ListXPProgressions(ctx)
	require.NoError(t, err)
	require.Len(t, progs, 2)
	assert.Equal(t, first.ID, progs[0].ID)
	assert.Equal(t, second.ID, progs[1].ID)
}

func TestCreateSkill(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()

	skill, err := store.CreateSkill(ctx, "Guitar", "strings", "EXPONENTIAL", 50, 1.2)
	require.NoError(t, err)
	assert.Equal(t, "Guitar", skill.Name)

	prog, err := store.GetXPProgression(ctx, skill.XPProgressionID)
	require.NoError(t, err)
	assert.Equal(t, models.ProgressionExponential, prog.Type)

	got, err := store.GetSkill(ctx, skill.ID)
	require.NoError(t, err)
	assert.Equal(t, skill.ID, got.ID)

	_, err = store.CreateSkill(ctx, "Piano", "", "CUBIC", 1, 1)
	assert.ErrorIs(t, err, types.ErrValidation)
	_, err = store.CreateSkill(ctx, "", "", "LINEAR", 1, 1)
	assert.ErrorIs(t, err, types.ErrValidation)

	skills, err := store.ListSkills(ctx)
	require.NoError(t, err)
	assert.Len(t, skills, 1)
}

func TestAddGrind(t *testing.T) {
	store, db := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()
	skill := testhelpers.MustSkill(t, store, "Running")

	grind, err := store.AddGrind(ctx, "Intervals", skill.ID, "400m repeats", "LINEAR", 10, 5)
	require.NoError(t, err)
	assert.Equal(t, skill.ID, grind.SkillID)
	assert.NotEmpty(t, grind.XPProgressionID)
	assert.NotEqual(t, skill.XPProgressionID, grind.XPProgressionID)

	prog, err := store.GetXPProgression(ctx, grind.XPProgressionID)
	require.NoError(t, err)
	assert.Equal(t, models.ProgressionLinear, prog.Type)
	assert.Equal(t, 10.0, prog.Base)
	assert.Equal(t, 5.0, prog.Rate)

	grinds, err := store.ListGrinds(ctx)
	require.NoError(t, err)
	require.Len(t, grinds, 1)

	bySkill, err := store.ListGrindsBySkill(ctx, skill.ID)
	require.NoError(t, err)
	require.Len(t, bySkill, 1)
	assert.Equal(t, grind.ID, bySkill[0].ID)

	none, err := store.ListGrindsBySkill(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, none)

	var before int64
	require.NoError(t, db.Model(&models.XPProgression{}).Count(&before).Error)

	_, err = store.AddGrind(ctx, "Tempo", "missing-skill", "", "LINEAR", 1, 1)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = store.AddGrind(ctx, "Tempo", skill.ID, "", "SIDEWAYS", 1, 1)
	assert.ErrorIs(t, err, types.ErrValidation)

	var after int64
	require.NoError(t, db.Model(&models.XPProgression{}).Count(&after).Error)
	assert.Equal(t, before, after, "a failed grind must not leave a progression behind")
}
