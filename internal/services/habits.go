package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/localnerve/lifetracker/internal/models"
	"github.com/localnerve/lifetracker/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HabitInput carries the fields of a new habit.
type HabitInput struct {
	Name                 string
	Description          string
	IsBinary             bool
	IsNegative           bool
	TargetFrequencyValue float64
	TargetFrequencyUnit  string
	TargetPeriodInDays   int
}

// CreateHabit stores a new habit.
func (s *Store) CreateHabit(ctx context.Context, in HabitInput) (*models.Habit, error) {
	const op = "CreateHabit"

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, s.fail(op, types.NewValidationError(op, "name is required"))
	}
	if in.TargetPeriodInDays < 0 {
		return nil, s.fail(op, types.NewValidationError(op, "target period must be >= 0 days, got %d", in.TargetPeriodInDays))
	}

	habit := &models.Habit{
		ID:                   uuid.NewString(),
		Name:                 name,
		Description:          in.Description,
		IsBinaryHabit:        in.IsBinary,
		IsNegativeHabit:      in.IsNegative,
		TargetFrequencyValue: in.TargetFrequencyValue,
		TargetFrequencyUnit:  strings.TrimSpace(in.TargetFrequencyUnit),
		TargetPeriodInDays:   in.TargetPeriodInDays,
	}

	err := s.write(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(habit).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", habit.ID).Take(habit).Error
	})
	if err != nil {
		return nil, s.fail(op, err)
	}

	s.log.Info("added habit", "id", habit.ID, "name", habit.Name)
	return habit, nil
}

// ListHabits returns every habit in creation order.
func (s *Store) ListHabits(ctx context.Context) ([]models.Habit, error) {
	habits, err := listAll[models.Habit](s.read(ctx, "listHabits"))
	if err != nil {
		return nil, s.fail("ListHabits", err)
	}
	return habits, nil
}

// GetHabit loads one habit.
func (s *Store) GetHabit(ctx context.Context, id string) (*models.Habit, error) {
	habit, err := findByID[models.Habit](s.read(ctx, "getHabit"), "GetHabit", "habit", id)
	if err != nil {
		return nil, s.fail("GetHabit", err)
	}
	return habit, nil
}

// UpsertHabitLogs records values for several habits on one day. For each
// habit the existing (habit, day) row is looked up and overwritten, or a new
// row is inserted. Every habit must exist. The whole batch is one transaction,
// so repeating a call with the same arguments leaves exactly the same rows.
// The affected logs are returned ordered by habit id.
func (s *Store) UpsertHabitLogs(ctx context.Context, logDate datatypes.Date, values map[string]float64) ([]models.HabitLog, error) {
	const op = "UpsertHabitLogs"

	logDate = models.NormalizeDate(logDate)

	habitIDs := make([]string, 0, len(values))
	for id := range values {
		habitIDs = append(habitIDs, id)
	}
	sort.Strings(habitIDs)

	if len(habitIDs) == 0 {
		return []models.HabitLog{}, nil
	}

	created, updated := 0, 0
	logs := make([]models.HabitLog, 0, len(habitIDs))

	err := s.write(ctx, func(tx *gorm.DB) error {
		for _, habitID := range habitIDs {
			if err := mustExist[models.Habit](tx, op, "habit", habitID); err != nil {
				return err
			}

			value := values[habitID]

			var existing models.HabitLog
			err := tx.Where("habit_id = ? AND log_date = ?", habitID, logDate).Take(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				row := models.HabitLog{HabitID: habitID, LogDate: logDate, Value: value}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
				created++
			case err != nil:
				return err
			default:
				if err := tx.Model(&models.HabitLog{}).
					Where("habit_id = ? AND log_date = ?", habitID, logDate).
					Update("value", value).Error; err != nil {
					return err
				}
				updated++
			}
		}

		return tx.Where("log_date = ? AND habit_id IN ?", logDate, habitIDs).
			Order("habit_id ASC").
			Find(&logs).Error
	})
	if err != nil {
		return nil, s.fail(op, err)
	}

	s.log.Info("processed habit logs",
		"date", models.FormatDate(logDate), "created", created, "updated", updated)
	return logs, nil
}

// GetHabitLogsForDay returns every log recorded on date, ordered by habit id.
func (s *Store) GetHabitLogsForDay(ctx context.Context, date datatypes.Date) ([]models.HabitLog, error) {
	date = models.NormalizeDate(date)

	logs := []models.HabitLog{}
	err := s.read(ctx, "habitLogsForDay").
		Where("log_date = ?", date).
		Order("habit_id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, s.fail("GetHabitLogsForDay", err)
	}

	s.log.Debug("retrieved habit logs for day", "date", models.FormatDate(date), "count", len(logs))
	return logs, nil
}

// GetHabitLogsByHabit returns the logs of one habit, most recent first.
func (s *Store) GetHabitLogsByHabit(ctx context.Context, habitID string) ([]models.HabitLog, error) {
	logs := []models.HabitLog{}
	err := s.read(ctx, "habitLogsByHabit").
		Where("habit_id = ?", habitID).
		Order("log_date DESC").
		Find(&logs).Error
	if err != nil {
		return nil, s.fail("GetHabitLogsByHabit", err)
	}

	s.log.Debug("retrieved habit logs for habit", "habit_id", habitID, "count", len(logs))
	return logs, nil
}

// HabitStats summarizes a habit's logs: count, mean value and latest day.
func (s *Store) HabitStats(ctx context.Context, habitID string) (*models.HabitStats, error) {
	const op = "HabitStats"

	if err := mustExist[models.Habit](s.read(ctx, "habitExists"), op, "habit", habitID); err != nil {
		return nil, s.fail(op, err)
	}

	logs, err := s.GetHabitLogsByHabit(ctx, habitID)
	if err != nil {
		return nil, err
	}

	stats := &models.HabitStats{HabitID: habitID, TotalLogs: int64(len(logs))}
	if len(logs) == 0 {
		return stats, nil
	}

	sum := 0.0
	for _, l := range logs {
		sum += l.Value
	}
	stats.AverageValue = sum / float64(len(logs))
	latest := logs[0].LogDate
	stats.MostRecent = &latest

	return stats, nil
}
