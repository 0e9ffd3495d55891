package models

import (
	"time"

	"gorm.io/datatypes"
)

// Goal is a node in a goal tree. ParentID is a soft self-reference.
type Goal struct {
	ID          string          `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	ParentID    *string         `gorm:"type:char(36);index" json:"parent_id,omitempty"`
	IsCompleted bool            `gorm:"not null;default:false" json:"is_completed"`
	DueDate     *datatypes.Date `json:"due_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName overrides the table name for Goal
func (Goal) TableName() string {
	return "goals"
}
