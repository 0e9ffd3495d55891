package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/lifetracker/internal/services"
	"github.com/localnerve/lifetracker/internal/types"
)

// ProgressionHandler handles xp progression, skill and grind routes
type ProgressionHandler struct {
	Store *services.Store
}

// CreateProgressionRequest is the body of POST /api/progressions
type CreateProgressionRequest struct {
	Type string          `json:"type" form:"type"`
	Base types.FlexFloat `json:"base" form:"base"`
	Rate types.FlexFloat `json:"rate" form:"rate"`
}

// UpdateProgressionRequest is the body of PUT /api/progressions/:id
type UpdateProgressionRequest struct {
	XP    types.FlexInt `json:"xp" form:"xp"`
	Level types.FlexInt `json:"level" form:"level"`
}

// AwardXPRequest is the body of POST /api/progressions/:id/xp
type AwardXPRequest struct {
	Amount types.FlexInt `json:"amount" form:"amount"`
}

// CreateSkillRequest is the body of POST /api/skills
type CreateSkillRequest struct {
	Name        string          `json:"name" form:"name"`
	Description string          `json:"description" form:"description"`
	XPType      string          `json:"xp_type" form:"xp_type"`
	Base        types.FlexFloat `json:"base" form:"base"`
	Rate        types.FlexFloat `json:"rate" form:"rate"`
}

// AddGrindRequest is the body of POST /api/grinds
type AddGrindRequest struct {
	Name        string          `json:"name" form:"name"`
	SkillID     string          `json:"skill_id" form:"skill_id"`
	Description string          `json:"description" form:"description"`
	XPType      string          `json:"xp_type" form:"xp_type"`
	Base        types.FlexFloat `json:"base" form:"base"`
	Rate        types.FlexFloat `json:"rate" form:"rate"`
}

// ListProgressions handles GET /api/progressions
// @Summary List xp progressions
// @Tags Progressions
// @Produce json
// @Success 200 {array} models.XPProgression
// @Router /progressions [get]
func (h *ProgressionHandler) ListProgressions(c *fiber.Ctx) error {
	progs, err := h.Store.ListXPProgressions(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(progs)
}

// CreateProgression handles POST /api/progressions
// @Summary Create an xp progression
// @Description type is LINEAR or EXPONENTIAL
// @Tags Progressions
// @Accept json
// @Produce json
// @Param progression body CreateProgressionRequest true "Progression"
// @Success 201 {object} models.XPProgression
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /progressions [post]
func (h *ProgressionHandler) CreateProgression(c *fiber.Ctx) error {
	var req CreateProgressionRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	prog, err := h.Store.CreateXPProgression(c.UserContext(), req.Type, req.Base.Float64(), req.Rate.Float64())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(prog)
}

// GetProgression handles GET /api/progressions/:id
// @Summary Get an xp progression
// @Tags Progressions
// @Produce json
// @Param id path string true "Progression ID"
// @Success 200 {object} models.XPProgression
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /progressions/{id} [get]
func (h *ProgressionHandler) GetProgression(c *fiber.Ctx) error {
	prog, err := h.Store.GetXPProgression(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(prog)
}

// UpdateProgression handles PUT /api/progressions/:id
// @Summary Set the xp and level of a progression
// @Tags Progressions
// @Accept json
// @Produce json
// @Param id path string true "Progression ID"
// @Param counters body UpdateProgressionRequest true "Counters"
// @Success 200 {object} models.XPProgression
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /progressions/{id} [put]
func (h *ProgressionHandler) UpdateProgression(c *fiber.Ctx) error {
	var req UpdateProgressionRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	prog, err := h.Store.UpdateXPProgression(c.UserContext(), c.Params("id"), req.XP.Int(), req.Level.Int())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(prog)
}

// AwardXP handles POST /api/progressions/:id/xp
// @Summary Add experience to a progression
// @Description The level is recomputed from the progression curve.
// @Tags Progressions
// @Accept json
// @Produce json
// @Param id path string true "Progression ID"
// @Param award body AwardXPRequest true "Experience"
// @Success 200 {object} models.XPProgression
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /progressions/{id}/xp [post]
func (h *ProgressionHandler) AwardXP(c *fiber.Ctx) error {
	var req AwardXPRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	prog, err := h.Store.AwardXP(c.UserContext(), c.Params("id"), req.Amount.Int())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(prog)
}

// ListSkills handles GET /api/skills
// @Summary List skills
// @Tags Skills
// @Produce json
// @Success 200 {array} models.Skill
// @Router /skills [get]
func (h *ProgressionHandler) ListSkills(c *fiber.Ctx) error {
	skills, err := h.Store.ListSkills(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(skills)
}

// CreateSkill handles POST /api/skills
// @Summary Create a skill with its own progression
// @Tags Skills
// @Accept json
// @Produce json
// @Param skill body CreateSkillRequest true "Skill"
// @Success 201 {object} models.Skill
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /skills [post]
func (h *ProgressionHandler) CreateSkill(c *fiber.Ctx) error {
	var req CreateSkillRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	skill, err := h.Store.CreateSkill(c.UserContext(), req.Name, req.Description, req.XPType, req.Base.Float64(), req.Rate.Float64())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(skill)
}

// ListSkillGrinds handles GET /api/skills/:id/grinds
// @Summary List the grinds of a skill
// @Tags Skills
// @Produce json
// @Param id path string true "Skill ID"
// @Success 200 {array} models.Grind
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /skills/{id}/grinds [get]
func (h *ProgressionHandler) ListSkillGrinds(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.Store.GetSkill(c.UserContext(), id); err != nil {
		return fail(c, err)
	}

	grinds, err := h.Store.ListGrindsBySkill(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(grinds)
}

// ListGrinds handles GET /api/grinds
// @Summary List grinds
// @Tags Grinds
// @Produce json
// @Success 200 {array} models.Grind
// @Router /grinds [get]
func (h *ProgressionHandler) ListGrinds(c *fiber.Ctx) error {
	grinds, err := h.Store.ListGrinds(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(grinds)
}

// AddGrind handles POST /api/grinds
// @Summary Create a grind and its progression
// @Tags Grinds
// @Accept json
// @Produce json
// @Param grind body AddGrindRequest true "Grind"
// @Success 201 {object} models.Grind
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /grinds [post]
func (h *ProgressionHandler) AddGrind(c *fiber.Ctx) error {
	var req AddGrindRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	grind, err := h.Store.AddGrind(c.UserContext(), req.Name, req.SkillID, req.Description, req.XPType, req.Base.Float64(), req.Rate.Float64())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(grind)
}
