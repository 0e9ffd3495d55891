package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/lifetracker/internal/services"
	"github.com/localnerve/lifetracker/internal/types"
)

// HabitHandler handles habit and habit log routes
type HabitHandler struct {
	Store *services.Store
}

// CreateHabitRequest is the body of POST /api/habits
type CreateHabitRequest struct {
	Name                 string          `json:"name" form:"name"`
	Description          string          `json:"description" form:"description"`
	IsBinaryHabit        bool            `json:"is_binary_habit" form:"is_binary_habit"`
	IsNegativeHabit      bool            `json:"is_negative_habit" form:"is_negative_habit"`
	TargetFrequencyValue types.FlexFloat `json:"target_frequency_value" form:"target_frequency_value"`
	TargetFrequencyUnit  string          `json:"target_frequency_unit" form:"target_frequency_unit"`
	TargetPeriodInDays   types.FlexInt   `json:"target_period_in_days" form:"target_period_in_days"`
}

// HabitLogsRequest maps habit ids to the value logged for the day.
type HabitLogsRequest map[string]types.FlexFloat

// ListHabits handles GET /api/habits
// @Summary List habits
// @Tags Habits
// @Produce json
// @Success 200 {array} models.Habit
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /habits [get]
func (h *HabitHandler) ListHabits(c *fiber.Ctx) error {
	habits, err := h.Store.ListHabits(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(habits)
}

// CreateHabit handles POST /api/habits
// @Summary Create a habit
// @Tags Habits
// @Accept json
// @Produce json
// @Param habit body CreateHabitRequest true "Habit"
// @Success 201 {object} models.Habit
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /habits [post]
func (h *HabitHandler) CreateHabit(c *fiber.Ctx) error {
	var req CreateHabitRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	habit, err := h.Store.CreateHabit(c.UserContext(), services.HabitInput{
		Name:                 req.Name,
		Description:          req.Description,
		IsBinary:             req.IsBinaryHabit,
		IsNegative:           req.IsNegativeHabit,
		TargetFrequencyValue: req.TargetFrequencyValue.Float64(),
		TargetFrequencyUnit:  req.TargetFrequencyUnit,
		TargetPeriodInDays:   req.TargetPeriodInDays.Int(),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(habit)
}

// GetHabit handles GET /api/habits/:id
// @Summary Get a habit
// @Tags Habits
// @Produce json
// @Param id path string true "Habit ID"
// @Success 200 {object} models.Habit
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /habits/{id} [get]
func (h *HabitHandler) GetHabit(c *fiber.Ctx) error {
	habit, err := h.Store.GetHabit(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(habit)
}

// GetHabitLogs handles GET /api/habits/:id/logs
// @Summary List the logs of a habit, most recent first
// @Tags Habits
// @Produce json
// @Param id path string true "Habit ID"
// @Success 200 {array} models.HabitLog
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /habits/{id}/logs [get]
func (h *HabitHandler) GetHabitLogs(c *fiber.Ctx) error {
	logs, err := h.Store.GetHabitLogsByHabit(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(logs)
}

// GetHabitStats handles GET /api/habits/:id/stats
// @Summary Summarize the logs of a habit
// @Tags Habits
// @Produce json
// @Param id path string true "Habit ID"
// @Success 200 {object} models.HabitStats
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /habits/{id}/stats [get]
func (h *HabitHandler) GetHabitStats(c *fiber.Ctx) error {
	stats, err := h.Store.HabitStats(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

// GetHabitLogsForDay handles GET /api/habit-logs/:date
// @Summary List the habit logs of one day
// @Tags Habits
// @Produce json
// @Param date path string true "Day (YYYY-MM-DD)"
// @Success 200 {array} models.HabitLog
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /habit-logs/{date} [get]
func (h *HabitHandler) GetHabitLogsForDay(c *fiber.Ctx) error {
	day, err := parseDate("date", c.Params("date"))
	if err != nil {
		return fail(c, err)
	}

	logs, err := h.Store.GetHabitLogsForDay(c.UserContext(), day)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(logs)
}

// UpsertHabitLogs handles PUT /api/habit-logs/:date
// @Summary Record habit values for one day
// @Description Body maps habit id to value. Existing logs for the day are overwritten.
// @Tags Habits
// @Accept json
// @Produce json
// @Param date path string true "Day (YYYY-MM-DD)"
// @Param values body HabitLogsRequest true "Values by habit id"
// @Success 200 {array} models.HabitLog
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /habit-logs/{date} [put]
func (h *HabitHandler) UpsertHabitLogs(c *fiber.Ctx) error {
	day, err := parseDate("date", c.Params("date"))
	if err != nil {
		return fail(c, err)
	}

	var req HabitLogsRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	values := make(map[string]float64, len(req))
	for id, v := range req {
		values[id] = v.Float64()
	}

	logs, err := h.Store.UpsertHabitLogs(c.UserContext(), day, values)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(logs)
}
