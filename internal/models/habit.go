package models

import (
	"time"

	"gorm.io/datatypes"
)

// Habit describes a recurring behavior and its target.
type Habit struct {
	ID                   string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name                 string    `gorm:"size:255;not null" json:"name"`
	Description          string    `gorm:"type:text" json:"description"`
	IsBinaryHabit        bool      `gorm:"not null;default:false" json:"is_binary_habit"`
	IsNegativeHabit      bool      `gorm:"not null;default:false" json:"is_negative_habit"`
	TargetFrequencyValue float64   `json:"target_frequency_value"`
	TargetFrequencyUnit  string    `gorm:"size:100" json:"target_frequency_unit"`
	TargetPeriodInDays   int       `json:"target_period_in_days"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// HabitLog is the value recorded for one habit on one day.
// The composite primary key allows a single row per (habit, day).
type HabitLog struct {
	HabitID   string         `gorm:"type:char(36);primaryKey" json:"habit_id"`
	LogDate   datatypes.Date `gorm:"primaryKey" json:"log_date"`
	Value     float64        `gorm:"not null;default:0" json:"value"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// HabitStats summarizes the logs of one habit.
type HabitStats struct {
	HabitID      string          `json:"habit_id"`
	TotalLogs    int64           `json:"total_logs"`
	AverageValue float64         `json:"average_value"`
	MostRecent   *datatypes.Date `json:"most_recent,omitempty"`
}

// TableName overrides the table name for Habit
func (Habit) TableName() string {
	return "habits"
}

// TableName overrides the table name for HabitLog
func (HabitLog) TableName() string {
	return "habit_logs"
}
