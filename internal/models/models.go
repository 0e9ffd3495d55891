package models

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&XPProgression{},
		&Goal{},
		&Skill{},
		&Grind{},
		&Habit{},
		&HabitLog{},
		&Task{},
		&Account{},
		&Transaction{},
		&Tag{},
		&TransactionTag{},
	}
}
