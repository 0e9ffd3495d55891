package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/localnerve/lifetracker/internal/models"
	"github.com/localnerve/lifetracker/internal/services"
	"github.com/localnerve/lifetracker/internal/testhelpers"
	"github.com/localnerve/lifetracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAddTaskDefaults(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()

	task, err := store.AddTask(ctx, services.TaskInput{Title: "Write report", XP: 25})
	require.NoError(t, err)
	assert.False(t, task.IsCompleted)
	assert.Equal(t, 25, task.XP)
	assert.Nil(t, task.GoalID)
	assert.Nil(t, task.GrindID)
	assert.Nil(t, task.HabitID)
	assert.Nil(t, task.DueDate)
}

func TestAddTaskWithAssociations(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()

	goal := testhelpers.MustGoal(t, store, "Ship v1")
	habit := testhelpers.MustHabit(t, store, "Code daily", true)
	skill := testhelpers.MustSkill(t, store, "Go")
	grind, err := store.AddGrind(ctx, "Katas", skill.ID, "", "LINEAR", 10, 1)
	require.NoError(t, err)

	due := models.Day(2025, time.July, 4)
	task, err := store.AddTask(ctx, services.TaskInput{
		Title:   "Fix flaky test",
		DueDate: &due,
		GoalID:  &goal.ID,
		GrindID: &grind.ID,
		HabitID: &habit.ID,
	})
	require.NoError(t, err)

	got, err := store.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got.GoalID)
	require.NotNil(t, got.GrindID)
	require.NotNil(t, got.HabitID)
	assert.Equal(t, goal.ID, *got.GoalID)
	assert.Equal(t, grind.ID, *got.GrindID)
	assert.Equal(t, habit.ID, *got.HabitID)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2025-07-04", models.FormatDate(*got.DueDate))
}

func TestAddTaskRejectsUnknownReferences(t *testing.T) {
	store, db := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()

	for _, in := range []services.TaskInput{
		{Title: "a", GoalID: strPtr("missing")},
		{Title: "b", GrindID: strPtr("missing")},
		{Title: "c", HabitID: strPtr("missing")},
	} {
		_, err := store.AddTask(ctx, in)
		assert.ErrorIs(t, err, types.ErrNotFound, in.Title)
	}

	_, err := store.AddTask(ctx, services.TaskInput{Title: "  "})
	assert.ErrorIs(t, err, types.ErrValidation)
	_, err = store.AddTask(ctx, services.TaskInput{Title: "neg", XP: -1})
	assert.ErrorIs(t, err, types.ErrValidation)

	var count int64
	require.NoError(t, db.Model(&models.Task{}).Count(&count).Error)
	assert.Zero(t, count)

	// blank ids mean no association
	task, err := store.AddTask(ctx, services.TaskInput{Title: "d", GoalID: strPtr(" ")})
	require.NoError(t, err)
	assert.Nil(t, task.GoalID)
}

func TestMarkTaskCompleted(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()

	task, err := store.AddTask(ctx, services.TaskInput{Title: "Laundry"})
	require.NoError(t, err)

	done, err := store.MarkTaskCompleted(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, done.IsCompleted)

	got, err := store.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
}

func TestMarkTaskCompletedMissingAltersNothing(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()

	task, err := store.AddTask(ctx, services.TaskInput{Title: "Dishes"})
	require.NoError(t, err)

	_, err = store.MarkTaskCompleted(ctx, "does-not-exist")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNotFound)

	tasks, err := store.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
	assert.False(t, tasks[0].IsCompleted)
	assert.Equal(t, task.UpdatedAt.UnixNano(), tasks[0].UpdatedAt.UnixNano())
}
