package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/localnerve/lifetracker/internal/models"
	"github.com/localnerve/lifetracker/internal/testhelpers"
	"github.com/localnerve/lifetracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGoal(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()

	due := models.Day(2025, time.December, 31)
	parent := testhelpers.MustGoal(t, store, "Get fit")

	goal, err := store.CreateGoal(ctx, " Run a marathon ", "sub 4h", &due, &parent.ID)
	require.NoError(t, err)
	assert.Equal(t, "Run a marathon", goal.Name)
	assert.False(t, goal.IsCompleted)
	require.NotNil(t, goal.ParentID)
	assert.Equal(t, parent.ID, *goal.ParentID)
	require.NotNil(t, goal.DueDate)
	assert.Equal(t, "2025-12-31", models.FormatDate(*goal.DueDate))

	_, err = store.CreateGoal(ctx, "", "", nil, nil)
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestCreateGoalKeepsUnknownParent(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)

	orphan := "not-a-goal"
	goal, err := store.CreateGoal(context.Background(), "Orphan", "", nil, &orphan)
	require.NoError(t, err)
	require.NotNil(t, goal.ParentID)
	assert.Equal(t, orphan, *goal.ParentID)
}

func TestListGoalsAndComplete(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()

	a := testhelpers.MustGoal(t, store, "A")
	b := testhelpers.MustGoal(t, store, "B")

	goals, err := store.ListGoals(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, a.ID, goals[0].ID)
	assert.Equal(t, b.ID, goals[1].ID)

	done, err := store.MarkGoalCompleted(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, done.IsCompleted)

	got, err := store.GetGoal(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, got.IsCompleted)

	_, err = store.MarkGoalCompleted(ctx, "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = store.GetGoal(ctx, "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
