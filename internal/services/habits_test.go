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

func TestReadHabitScenario(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()
	day := models.Day(2025, time.June, 1)

	read := testhelpers.MustHabit(t, store, "Read", true)
	assert.True(t, read.IsBinaryHabit)

	_, err := store.UpsertHabitLogs(ctx, day, map[string]float64{read.ID: 1.0})
	require.NoError(t, err)

	logs, err := store.GetHabitLogsForDay(ctx, day)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 1.0, logs[0].Value)

	_, err = store.UpsertHabitLogs(ctx, day, map[string]float64{read.ID: 0.0})
	require.NoError(t, err)

	logs, err = store.GetHabitLogsForDay(ctx, day)
	require.NoError(t, err)
	require.Len(t, logs, 1, "value must be overwritten, not appended")
	assert.Equal(t, 0.0, logs[0].Value)
}

func TestUpsertHabitLogsIsIdempotent(t *testing.T) {
	store, db := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()
	day := models.Day(2025, time.March, 14)

	walk := testhelpers.MustHabit(t, store, "Walk", false)
	water := testhelpers.MustHabit(t, store, "Water", false)
	values := map[string]float64{walk.ID: 5000, water.ID: 8}

	first, err := store.UpsertHabitLogs(ctx, day, values)
	require.NoError(t, err)
	second, err := store.UpsertHabitLogs(ctx, day, values)
	require.NoError(t, err)

	require.Len(t, first, 2)
	require.Len(t, second, 2)
	for i := range first {
		assert.Equal(t, first[i].HabitID, second[i].HabitID)
		assert.Equal(t, first[i].Value, second[i].Value)
		assert.True(t, models.SameDay(day, second[i].LogDate))
	}

	var count int64
	require.NoError(t, db.Model(&models.HabitLog{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestUpsertHabitLogsIgnoresClockTime(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()
	habit := testhelpers.MustHabit(t, store, "Meditate", true)

	morning := models.DateOf(time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC))
	evening := models.DateOf(time.Date(2025, 6, 2, 21, 45, 0, 0, time.UTC))

	_, err := store.UpsertHabitLogs(ctx, morning, map[string]float64{habit.ID: 1})
	require.NoError(t, err)
	_, err = store.UpsertHabitLogs(ctx, evening, map[string]float64{habit.ID: 0})
	require.NoError(t, err)

	logs, err := store.GetHabitLogsByHabit(ctx, habit.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 0.0, logs[0].Value)
}

func TestUpsertHabitLogsUnknownHabitWritesNothing(t *testing.T) {
	store, db := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()
	habit := testhelpers.MustHabit(t, store, "Stretch", true)

	_, err := store.UpsertHabitLogs(ctx, models.Day(2025, time.May, 5), map[string]float64{
		habit.ID:  1,
		"missing": 1,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.HabitLog{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpsertHabitLogsEmpty(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)

	logs, err := store.UpsertHabitLogs(context.Background(), models.Day(2025, time.May, 5), nil)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestGetHabitLogsByHabitNewestFirst(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()
	habit := testhelpers.MustHabit(t, store, "Run", false)
	other := testhelpers.MustHabit(t, store, "Swim", false)

	for _, d := range []int{2, 1, 3} {
		_, err := store.UpsertHabitLogs(ctx, models.Day(2025, time.January, d), map[string]float64{
			habit.ID: float64(d),
			other.ID: 1,
		})
		require.NoError(t, err)
	}

	logs, err := store.GetHabitLogsByHabit(ctx, habit.ID)
	require.NoError(t, err)
	require.Len(t, logs, 3)

	got := []string{
		models.FormatDate(logs[0].LogDate),
		models.FormatDate(logs[1].LogDate),
		models.FormatDate(logs[2].LogDate),
	}
	assert.Equal(t, []string{"2025-01-03", "2025-01-02", "2025-01-01"}, got)
	for _, l := range logs {
		assert.Equal(t, habit.ID, l.HabitID)
	}
}

func TestUpsertLeavesOtherDaysAndHabitsAlone(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()
	run := testhelpers.MustHabit(t, store, "Run", false)
	swim := testhelpers.MustHabit(t, store, "Swim", false)
	jan1 := models.Day(2025, time.January, 1)
	jan2 := models.Day(2025, time.January, 2)

	_, err := store.UpsertHabitLogs(ctx, jan1, map[string]float64{run.ID: 5, swim.ID: 7})
	require.NoError(t, err)

	// Later day, only one habit, then overwritten.
	_, err = store.UpsertHabitLogs(ctx, jan2, map[string]float64{run.ID: 9})
	require.NoError(t, err)
	_, err = store.UpsertHabitLogs(ctx, jan2, map[string]float64{run.ID: 11})
	require.NoError(t, err)

	swimLogs, err := store.GetHabitLogsByHabit(ctx, swim.ID)
	require.NoError(t, err)
	require.Len(t, swimLogs, 1)
	assert.Equal(t, "2025-01-01", models.FormatDate(swimLogs[0].LogDate))
	assert.Equal(t, 7.0, swimLogs[0].Value)

	runLogs, err := store.GetHabitLogsByHabit(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, runLogs, 2)
	assert.Equal(t, "2025-01-02", models.FormatDate(runLogs[0].LogDate))
	assert.Equal(t, 11.0, runLogs[0].Value)
	assert.Equal(t, "2025-01-01", models.FormatDate(runLogs[1].LogDate))
	assert.Equal(t, 5.0, runLogs[1].Value)

	jan1Logs, err := store.GetHabitLogsForDay(ctx, jan1)
	require.NoError(t, err)
	assert.Len(t, jan1Logs, 2)
}

func TestGetHabitLogsForDayOnlyThatDay(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()
	habit := testhelpers.MustHabit(t, store, "Journal", true)

	_, err := store.UpsertHabitLogs(ctx, models.Day(2025, time.June, 1), map[string]float64{habit.ID: 1})
	require.NoError(t, err)
	_, err = store.UpsertHabitLogs(ctx, models.Day(2025, time.June, 2), map[string]float64{habit.ID: 1})
	require.NoError(t, err)

	logs, err := store.GetHabitLogsForDay(ctx, models.Day(2025, time.June, 2))
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "2025-06-02", models.FormatDate(logs[0].LogDate))

	logs, err = store.GetHabitLogsForDay(ctx, models.Day(2025, time.June, 3))
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestCreateHabit(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()

	habit, err := store.CreateHabit(ctx, services.HabitInput{
		Name:                 "  No sugar ",
		IsNegative:           true,
		TargetFrequencyValue: 1,
		TargetFrequencyUnit:  "times",
		TargetPeriodInDays:   7,
	})
	require.NoError(t, err)
	assert.Equal(t, "No sugar", habit.Name)
	assert.True(t, habit.IsNegativeHabit)
	assert.False(t, habit.IsBinaryHabit)
	assert.Equal(t, 7, habit.TargetPeriodInDays)

	got, err := store.GetHabit(ctx, habit.ID)
	require.NoError(t, err)
	assert.Equal(t, habit.ID, got.ID)

	_, err = store.CreateHabit(ctx, services.HabitInput{Name: " "})
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = store.CreateHabit(ctx, services.HabitInput{Name: "x", TargetPeriodInDays: -1})
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = store.GetHabit(ctx, "nope")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestListHabitsCreationOrder(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)

	names := []string{"Alpha", "Charlie", "Bravo"}
	for _, n := range names {
		testhelpers.MustHabit(t, store, n, false)
	}

	habits, err := store.ListHabits(context.Background())
	require.NoError(t, err)
	require.Len(t, habits, 3)
	for i, n := range names {
		assert.Equal(t, n, habits[i].Name)
	}
}

func TestHabitStats(t *testing.T) {
	store, _ := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()
	habit := testhelpers.MustHabit(t, store, "Pushups", false)

	stats, err := store.HabitStats(ctx, habit.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalLogs)
	assert.Nil(t, stats.MostRecent)

	for d, v := range map[int]float64{1: 10, 2: 20, 4: 30} {
		_, err := store.UpsertHabitLogs(ctx, models.Day(2025, time.February, d), map[string]float64{habit.ID: v})
		require.NoError(t, err)
	}

	stats, err = store.HabitStats(ctx, habit.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalLogs)
	assert.InDelta(t, 20.0, stats.AverageValue, 1e-9)
	require.NotNil(t, stats.MostRecent)
	assert.Equal(t, "2025-02-04", models.FormatDate(*stats.MostRecent))

	_, err = store.HabitStats(ctx, "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
