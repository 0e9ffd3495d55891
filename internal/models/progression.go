package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/lifetracker/internal/types"
	"gorm.io/gorm"
)

// ProgressionType selects the leveling curve of an XPProgression.
type ProgressionType string

const (
	ProgressionLinear      ProgressionType = "LINEAR"
	ProgressionExponential ProgressionType = "EXPONENTIAL"
)

// MaxLevel bounds level computation for curves that never stop growing.
const MaxLevel = 10000

// IsValid reports whether t is one of the known curve types.
func (t ProgressionType) IsValid() bool {
	switch t {
	case ProgressionLinear, ProgressionExponential:
		return true
	default:
		return false
	}
}

// ParseProgressionType validates a curve type. Matching is exact.
func ParseProgressionType(s string) (ProgressionType, error) {
	t := ProgressionType(s)
	if !t.IsValid() {
		return "", types.NewValidationError("ParseProgressionType",
			"XPProgression type must be %s or %s, got %q", ProgressionLinear, ProgressionExponential, s)
	}
	return t, nil
}

// XPProgression is a leveling curve with its current experience and level.
type XPProgression struct {
	ID        string          `gorm:"type:char(36);primaryKey" json:"id"`
	Type      ProgressionType `gorm:"size:16;not null" json:"type"`
	XP        int             `gorm:"not null;default:0" json:"xp"`
	Level     int             `gorm:"not null;default:1" json:"level"`
	Base      float64         `json:"base"`
	Rate      float64         `json:"rate"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName overrides the table name for XPProgression
func (XPProgression) TableName() string {
	return "xp_progressions"
}

// NewXPProgression validates the curve type and returns a fresh progression at xp 0, level 1.
func NewXPProgression(xpType string, base, rate float64) (*XPProgression, error) {
	t, err := ParseProgressionType(xpType)
	if err != nil {
		return nil, err
	}
	return &XPProgression{
		ID:    uuid.NewString(),
		Type:  t,
		XP:    0,
		Level: 1,
		Base:  base,
		Rate:  rate,
	}, nil
}

// Validate checks the field-level invariants.
func (p *XPProgression) Validate() error {
	if !p.Type.IsValid() {
		return types.NewValidationError("XPProgression",
			"type must be %s or %s, got %q", ProgressionLinear, ProgressionExponential, p.Type)
	}
	if p.XP < 0 {
		return types.NewValidationError("XPProgression", "xp must be >= 0, got %d", p.XP)
	}
	if p.Level < 1 {
		return types.NewValidationError("XPProgression", "level must be >= 1, got %d", p.Level)
	}
	return nil
}

// BeforeSave keeps invalid progressions out of the table.
func (p *XPProgression) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}

// StepXP returns the experience needed to advance from level to level+1.
func (p *XPProgression) StepXP(level int) float64 {
	if level < 1 {
		level = 1
	}
	switch p.Type {
	case ProgressionExponential:
		return p.Base * math.Pow(p.Rate, float64(level-1))
	default:
		return p.Base + p.Rate*float64(level-1)
	}
}

// LevelForXP returns the highest level whose cumulative threshold is reached by totalXP.
// A non-positive step ends progression at the current level.
func (p *XPProgression) LevelForXP(totalXP int) int {
	level := 1
	need := 0.0
	for level < MaxLevel {
		step := p.StepXP(level)
		if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
			break
		}
		need += step
		if need > float64(totalXP) {
			break
		}
		level++
	}
	return level
}

// XPForLevel returns the cumulative experience required to reach level.
func (p *XPProgression) XPForLevel(level int) float64 {
	total := 0.0
	for k := 1; k < level && k < MaxLevel; k++ {
		total += p.StepXP(k)
	}
	return total
}
