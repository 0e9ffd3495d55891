package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/localnerve/lifetracker/internal/models"
	"github.com/localnerve/lifetracker/internal/types"
	"gorm.io/gorm"
)

// CreateXPProgression stores a new curve at xp 0, level 1.
// An unknown curve type fails with a validation error before anything is written.
func (s *Store) CreateXPProgression(ctx context.Context, xpType string, base, rate float64) (*models.XPProgression, error) {
	const op = "CreateXPProgression"

	prog, err := models.NewXPProgression(xpType, base, rate)
	if err != nil {
		return nil, s.fail(op, err)
	}

	err = s.write(ctx, func(tx *gorm.DB) error {
		return insertProgression(tx, prog)
	})
	if err != nil {
		return nil, s.fail(op, err)
	}

	s.log.Info("added xp progression", "id", prog.ID, "type", prog.Type)
	return prog, nil
}

func insertProgression(tx *gorm.DB, prog *models.XPProgression) error {
	if err := tx.Create(prog).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", prog.ID).Take(prog).Error
}

// ListXPProgressions returns every progression in creation order.
func (s *Store) ListXPProgressions(ctx context.Context) ([]models.XPProgression, error) {
	progs, err := listAll[models.XPProgression](s.read(ctx, "listXPProgressions"))
	if err != nil {
		return nil, s.fail("ListXPProgressions", err)
	}
	return progs, nil
}

// GetXPProgression loads one progression.
func (s *Store) GetXPProgression(ctx context.Context, id string) (*models.XPProgression, error) {
	prog, err := findByID[models.XPProgression](s.read(ctx, "getXPProgression"), "GetXPProgression", "xp progression", id)
	if err != nil {
		return nil, s.fail("GetXPProgression", err)
	}
	return prog, nil
}

// UpdateXPProgression overwrites the xp and level counters.
func (s *Store) UpdateXPProgression(ctx context.Context, id string, newXP, newLevel int) (*models.XPProgression, error) {
	const op = "UpdateXPProgression"

	var prog *models.XPProgression
	err := s.write(ctx, func(tx *gorm.DB) error {
		var err error
		if prog, err = findByID[models.XPProgression](tx, op, "xp progression", id); err != nil {
			return err
		}
		return saveCounters(tx, prog, newXP, newLevel)
	})
	if err != nil {
		return nil, s.fail(op, err)
	}

	s.log.Info("updated xp progression", "id", id, "xp", prog.XP, "level", prog.Level)
	return prog, nil
}

// AwardXP adds delta experience (negative to remove) and recomputes the
// level from the curve. The total never drops below zero.
func (s *Store) AwardXP(ctx context.Context, id string, delta int) (*models.XPProgression, error) {
	const op = "AwardXP"

	var prog *models.XPProgression
	err := s.write(ctx, func(tx *gorm.DB) error {
		var err error
		if prog, err = findByID[models.XPProgression](tx, op, "xp progression", id); err != nil {
			return err
		}
		total := max(prog.XP+delta, 0)
		return saveCounters(tx, prog, total, prog.LevelForXP(total))
	})
	if err != nil {
		return nil, s.fail(op, err)
	}

	s.log.Info("awarded xp", "id", id, "delta", delta, "xp", prog.XP, "level", prog.Level)
	return prog, nil
}

// saveCounters validates and writes xp/level onto a loaded progression.
func saveCounters(tx *gorm.DB, prog *models.XPProgression, xp, level int) error {
	prog.XP = xp
	prog.Level = level
	if err := prog.Validate(); err != nil {
		return err
	}
	return tx.Model(prog).Updates(map[string]interface{}{
		"xp":    xp,
		"level": level,
	}).Error
}

// CreateSkill stores a skill together with its own progression.
func (s *Store) CreateSkill(ctx context.Context, name, description, xpType string, base, rate float64) (*models.Skill, error) {
	const op = "CreateSkill"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, s.fail(op, types.NewValidationError(op, "name is required"))
	}
	prog, err := models.NewXPProgression(xpType, base, rate)
	if err != nil {
		return nil, s.fail(op, err)
	}

	skill := &models.Skill{
		ID:              uuid.NewString(),
		Name:            name,
		Description:     description,
		XPProgressionID: prog.ID,
	}

	err = s.write(ctx, func(tx *gorm.DB) error {
		if err := insertProgression(tx, prog); err != nil {
			return err
		}
		if err := tx.Create(skill).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", skill.ID).Take(skill).Error
	})
	if err != nil {
		return nil, s.fail(op, err)
	}

	s.log.Info("added skill", "id", skill.ID, "name", skill.Name)
	return skill, nil
}

// ListSkills returns every skill in creation order.
func (s *Store) ListSkills(ctx context.Context) ([]models.Skill, error) {
	skills, err := listAll[models.Skill](s.read(ctx, "listSkills"))
	if err != nil {
		return nil, s.fail("ListSkills", err)
	}
	return skills, nil
}

// GetSkill loads one skill.
func (s *Store) GetSkill(ctx context.Context, id string) (*models.Skill, error) {
	skill, err := findByID[models.Skill](s.read(ctx, "getSkill"), "GetSkill", "skill", id)
	if err != nil {
		return nil, s.fail("GetSkill", err)
	}
	return skill, nil
}

// AddGrind creates a progression and a grind that references it and the
// skill. Both rows are written in the same transaction.
func (s *Store) AddGrind(ctx context.Context, name, skillID, description, xpType string, base, rate float64) (*models.Grind, error) {
	const op = "AddGrind"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, s.fail(op, types.NewValidationError(op, "name is required"))
	}
	prog, err := models.NewXPProgression(xpType, base, rate)
	if err != nil {
		return nil, s.fail(op, err)
	}

	grind := &models.Grind{
		ID:              uuid.NewString(),
		Name:            name,
		SkillID:         skillID,
		Description:     description,
		XPProgressionID: prog.ID,
	}

	err = s.write(ctx, func(tx *gorm.DB) error {
		if err := mustExist[models.Skill](tx, op, "skill", skillID); err != nil {
			return err
		}
		if err := insertProgression(tx, prog); err != nil {
			return err
		}
		if err := tx.Create(grind).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", grind.ID).Take(grind).Error
	})
	if err != nil {
		return nil, s.fail(op, err)
	}

	s.log.Info("added grind", "id", grind.ID, "name", grind.Name, "skill_id", skillID)
	return grind, nil
}

// ListGrinds returns every grind in creation order.
func (s *Store) ListGrinds(ctx context.Context) ([]models.Grind, error) {
	grinds, err := listAll[models.Grind](s.read(ctx, "listGrinds"))
	if err != nil {
		return nil, s.fail("ListGrinds", err)
	}
	return grinds, nil
}

// ListGrindsBySkill returns the grinds of one skill in creation order.
func (s *Store) ListGrindsBySkill(ctx context.Context, skillID string) ([]models.Grind, error) {
	grinds, err := listAll[models.Grind](s.read(ctx, "listGrindsBySkill").Where("skill_id = ?", skillID))
	if err != nil {
		return nil, s.fail("ListGrindsBySkill", err)
	}
	return grinds, nil
}
