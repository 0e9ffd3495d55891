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

// CreateGoal stores a new, uncompleted goal. parentID is kept as given;
// the parent is not looked up and cycles are not checked.
func (s *Store) CreateGoal(ctx context.Context, name, description string, dueDate *datatypes.Date, parentID *string) (*models.Goal, error) {
	const op = "CreateGoal"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, s.fail(op, types.NewValidationError(op, "name is required"))
	}

	goal := &models.Goal{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		ParentID:    blankToNil(parentID),
		IsCompleted: false,
	}
	if dueDate != nil {
		due := models.NormalizeDate(*dueDate)
		goal.DueDate = &due
	}

	err := s.write(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(goal).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", goal.ID).Take(goal).Error
	})
	if err != nil {
		return nil, s.fail(op, err)
	}

	s.log.Info("added goal", "id", goal.ID, "name", goal.Name)
	return goal, nil
}

// ListGoals returns every goal in creation order.
func (s *Store) ListGoals(ctx context.Context) ([]models.Goal, error) {
	goals, err := listAll[models.Goal](s.read(ctx, "listGoals"))
	if err != nil {
		return nil, s.fail("ListGoals", err)
	}
	return goals, nil
}

// GetGoal loads one goal.
func (s *Store) GetGoal(ctx context.Context, id string) (*models.Goal, error) {
	goal, err := findByID[models.Goal](s.read(ctx, "getGoal"), "GetGoal", "goal", id)
	if err != nil {
		return nil, s.fail("GetGoal", err)
	}
	return goal, nil
}

// MarkGoalCompleted flags a goal as done.
func (s *Store) MarkGoalCompleted(ctx context.Context, id string) (*models.Goal, error) {
	const op = "MarkGoalCompleted"

	var goal *models.Goal
	err := s.write(ctx, func(tx *gorm.DB) error {
		var err error
		if goal, err = findByID[models.Goal](tx, op, "goal", id); err != nil {
			return err
		}
		if err := tx.Model(goal).Update("is_completed", true).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Take(goal).Error
	})
	if err != nil {
		return nil, s.fail(op, err)
	}

	s.log.Info("goal marked as completed", "id", id)
	return goal, nil
}
