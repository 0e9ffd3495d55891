package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/localnerve/lifetracker/internal/models"
	"github.com/localnerve/lifetracker/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TaskInput carries the fields of a new task. Any of the association ids
// may be nil.
type TaskInput struct {
	Title       string
	Description string
	XP          int
	DueDate     *datatypes.Date
	IsCompleted bool
	GoalID      *string
	GrindID     *string
	HabitID     *string
}

// AddTask stores a new task. Every association that is set must point at an
// existing row.
func (s *Store) AddTask(ctx context.Context, in TaskInput) (*models.Task, error) {
	const op = "AddTask"

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, s.fail(op, types.NewValidationError(op, "title is required"))
	}
	if in.XP < 0 {
		return nil, s.fail(op, types.NewValidationError(op, "xp must be >= 0, got %d", in.XP))
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: in.Description,
		IsCompleted: in.IsCompleted,
		GoalID:      blankToNil(in.GoalID),
		GrindID:     blankToNil(in.GrindID),
		HabitID:     blankToNil(in.HabitID),
		XP:          in.XP,
	}
	if in.DueDate != nil {
		due := models.NormalizeDate(*in.DueDate)
		task.DueDate = &due
	}

	err := s.write(ctx, func(tx *gorm.DB) error {
		if task.GoalID != nil {
			if err := mustExist[models.Goal](tx, op, "goal", *task.GoalID); err != nil {
				return err
			}
		}
		if task.GrindID != nil {
			if err := mustExist[models.Grind](tx, op, "grind", *task.GrindID); err != nil {
				return err
			}
		}
		if task.HabitID != nil {
			if err := mustExist[models.Habit](tx, op, "habit", *task.HabitID); err != nil {
				return err
			}
		}
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", task.ID).Take(task).Error
	})
	if err != nil {
		return nil, s.fail(op, err)
	}

	s.log.Info("added task", "id", task.ID, "title", task.Title)
	return task, nil
}

// MarkTaskCompleted flags a task as done. A missing task is a not-found error
// and nothing is written.
func (s *Store) MarkTaskCompleted(ctx context.Context, id string) (*models.Task, error) {
	const op = "MarkTaskCompleted"

	var task *models.Task
	err := s.write(ctx, func(tx *gorm.DB) error {
		var err error
		if task, err = findByID[models.Task](tx, op, "task", id); err != nil {
			return err
		}
		if err := tx.Model(task).Update("is_completed", true).Error; err != nil {
			return err
		}
		task.IsCompleted = true
		return nil
	})
	if err != nil {
		return nil, s.fail(op, err)
	}

	s.log.Info("completed task", "id", id)
	return task, nil
}

// ListTasks returns every task in creation order.
func (s *Store) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := listAll[models.Task](s.read(ctx, "listTasks"))
	if err != nil {
		return nil, s.fail("ListTasks", err)
	}
	return tasks, nil
}

// GetTask loads one task.
func (s *Store) GetTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := findByID[models.Task](s.read(ctx, "getTask"), "GetTask", "task", id)
	if err != nil {
		return nil, s.fail("GetTask", err)
	}
	return task, nil
}

func blankToNil(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
