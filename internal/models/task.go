package models

import (
	"time"

	"gorm.io/datatypes"
)

// Task is a unit of work, optionally tied to a goal, a grind and/or a habit.
// None of the associations is required and more than one may be set.
type Task struct {
	ID          string          `gorm:"type:char(36);primaryKey" json:"id"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	IsCompleted bool            `gorm:"not null;default:false" json:"is_completed"`
	GoalID      *string         `gorm:"type:char(36);index" json:"goal_id,omitempty"`
	GrindID     *string         `gorm:"type:char(36);index" json:"grind_id,omitempty"`
	HabitID     *string         `gorm:"type:char(36);index" json:"habit_id,omitempty"`
	XP          int             `gorm:"column:xp;not null;default:0" json:"xp"`
	DueDate     *datatypes.Date `json:"due_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName overrides the table name for Task
func (Task) TableName() string {
	return "tasks"
}
