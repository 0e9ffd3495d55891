package models

import "time"

// Skill groups grinds and levels through its own XPProgression.
type Skill struct {
	ID              string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	XPProgressionID string    `gorm:"column:xp_progression_id;type:char(36)" json:"xp_progression_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Grind is a repeatable activity under a Skill.
type Grind struct {
	ID              string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	SkillID         string    `gorm:"type:char(36);index" json:"skill_id"`
	Description     string    `gorm:"type:text" json:"description"`
	XPProgressionID string    `gorm:"column:xp_progression_id;type:char(36)" json:"xp_progression_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName overrides the table name for Skill
func (Skill) TableName() string {
	return "skills"
}

// TableName overrides the table name for Grind
func (Grind) TableName() string {
	return "grinds"
}
