package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/lifetracker/internal/services"
)

// Register mounts every tracker route on router.
func Register(router fiber.Router, store *services.Store) {
	goals := &GoalHandler{Store: store}
	habits := &HabitHandler{Store: store}
	progressions := &ProgressionHandler{Store: store}
	tasks := &TaskHandler{Store: store}
	finance := &FinanceHandler{Store: store}

	router.Get("/goals", goals.ListGoals)
	router.Post("/goals", goals.CreateGoal)
	router.Get("/goals/:id", goals.GetGoal)
	router.Post("/goals/:id/complete", goals.CompleteGoal)

	router.Get("/habits", habits.ListHabits)
	router.Post("/habits", habits.CreateHabit)
	router.Get("/habits/:id", habits.GetHabit)
	router.Get("/habits/:id/logs", habits.GetHabitLogs)
	router.Get("/habits/:id/stats", habits.GetHabitStats)
	router.Get("/habit-logs/:date", habits.GetHabitLogsForDay)
	router.Put("/habit-logs/:date", habits.UpsertHabitLogs)

	router.Get("/progressions", progressions.ListProgressions)
	router.Post("/progressions", progressions.CreateProgression)
	router.Get("/progressions/:id", progressions.GetProgression)
	router.Put("/progressions/:id", progressions.UpdateProgression)
	router.Post("/progressions/:id/xp", progressions.AwardXP)
	router.Get("/skills", progressions.ListSkills)
	router.Post("/skills", progressions.CreateSkill)
	router.Get("/skills/:id/grinds", progressions.ListSkillGrinds)
	router.Get("/grinds", progressions.ListGrinds)
	router.Post("/grinds", progressions.AddGrind)

	router.Get("/tasks", tasks.ListTasks)
	router.Post("/tasks", tasks.AddTask)
	router.Get("/tasks/:id", tasks.GetTask)
	router.Post("/tasks/:id/complete", tasks.CompleteTask)

	router.Get("/accounts", finance.ListAccounts)
	router.Post("/accounts", finance.AddAccount)
	router.Get("/accounts/:id", finance.GetAccount)
	router.Delete("/accounts/:id", finance.DeleteAccount)
	router.Get("/accounts/:id/transactions", finance.ListAccountTransactions)
	router.Get("/transactions", finance.ListTransactions)
	router.Post("/transactions", finance.CreateTransaction)
	router.Get("/transactions/:id", finance.GetTransaction)
	router.Get("/tags", finance.ListTags)
}
