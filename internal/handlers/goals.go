package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/lifetracker/internal/services"
)

// GoalHandler handles goal routes
type GoalHandler struct {
	Store *services.Store
}

// CreateGoalRequest is the body of POST /api/goals
type CreateGoalRequest struct {
	Name        string  `json:"name" form:"name"`
	Description string  `json:"description" form:"description"`
	DueDate     *string `json:"due_date" form:"due_date"`
	ParentID    *string `json:"parent_id" form:"parent_id"`
}

// ListGoals handles GET /api/goals
// @Summary List goals
// @Description List every goal in creation order
// @Tags Goals
// @Produce json
// @Success 200 {array} models.Goal
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /goals [get]
func (h *GoalHandler) ListGoals(c *fiber.Ctx) error {
	goals, err := h.Store.ListGoals(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(goals)
}

// CreateGoal handles POST /api/goals
// @Summary Create a goal
// @Tags Goals
// @Accept json
// @Produce json
// @Param goal body CreateGoalRequest true "Goal"
// @Success 201 {object} models.Goal
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /goals [post]
func (h *GoalHandler) CreateGoal(c *fiber.Ctx) error {
	var req CreateGoalRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	due, err := parseOptionalDate("due_date", req.DueDate)
	if err != nil {
		return fail(c, err)
	}

	goal, err := h.Store.CreateGoal(c.UserContext(), req.Name, req.Description, due, req.ParentID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(goal)
}

// GetGoal handles GET /api/goals/:id
// @Summary Get a goal
// @Tags Goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} models.Goal
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /goals/{id} [get]
func (h *GoalHandler) GetGoal(c *fiber.Ctx) error {
	goal, err := h.Store.GetGoal(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(goal)
}

// CompleteGoal handles POST /api/goals/:id/complete
// @Summary Mark a goal completed
// @Tags Goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} models.Goal
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /goals/{id}/complete [post]
func (h *GoalHandler) CompleteGoal(c *fiber.Ctx) error {
	goal, err := h.Store.MarkGoalCompleted(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(goal)
}
