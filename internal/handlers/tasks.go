package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/lifetracker/internal/services"
	"github.com/localnerve/lifetracker/internal/types"
)

// TaskHandler handles task routes
type TaskHandler struct {
	Store *services.Store
}

// AddTaskRequest is the body of POST /api/tasks
type AddTaskRequest struct {
	Title       string        `json:"title" form:"title"`
	Description string        `json:"description" form:"description"`
	XP          types.FlexInt `json:"xp" form:"xp"`
	DueDate     *string       `json:"due_date" form:"due_date"`
	IsCompleted bool          `json:"is_completed" form:"is_completed"`
	GoalID      *string       `json:"goal_id" form:"goal_id"`
	GrindID     *string       `json:"grind_id" form:"grind_id"`
	HabitID     *string       `json:"habit_id" form:"habit_id"`
}

// ListTasks handles GET /api/tasks
// @Summary List tasks
// @Tags Tasks
// @Produce json
// @Success 200 {array} models.Task
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.Store.ListTasks(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(tasks)
}

// AddTask handles POST /api/tasks
// @Summary Create a task
// @Description goal_id, grind_id and habit_id are optional and may be combined.
// @Tags Tasks
// @Accept json
// @Produce json
// @Param task body AddTaskRequest true "Task"
// @Success 201 {object} models.Task
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tasks [post]
func (h *TaskHandler) AddTask(c *fiber.Ctx) error {
	var req AddTaskRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	due, err := parseOptionalDate("due_date", req.DueDate)
	if err != nil {
		return fail(c, err)
	}

	task, err := h.Store.AddTask(c.UserContext(), services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		XP:          req.XP.Int(),
		DueDate:     due,
		IsCompleted: req.IsCompleted,
		GoalID:      req.GoalID,
		GrindID:     req.GrindID,
		HabitID:     req.HabitID,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// GetTask handles GET /api/tasks/:id
// @Summary Get a task
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} models.Task
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	task, err := h.Store.GetTask(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(task)
}

// CompleteTask handles POST /api/tasks/:id/complete
// @Summary Mark a task completed
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} models.Task
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tasks/{id}/complete [post]
func (h *TaskHandler) CompleteTask(c *fiber.Ctx) error {
	task, err := h.Store.MarkTaskCompleted(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(task)
}
