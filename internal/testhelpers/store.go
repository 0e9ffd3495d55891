// Package testhelpers sets up stores, fixtures and containers for tests.
package testhelpers

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/localnerve/lifetracker/internal/config"
	"github.com/localnerve/lifetracker/internal/database"
	"github.com/localnerve/lifetracker/internal/logging"
	"github.com/localnerve/lifetracker/internal/models"
	"github.com/localnerve/lifetracker/internal/services"
	"gorm.io/gorm"
)

// SQLiteConfig returns a config for a fresh sqlite file in a per-test directory.
func SQLiteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:              "3000",
		DBType:            "sqlite",
		DBDatabase:        filepath.Join(t.TempDir(), "tracker.db"),
		DBConnectionLimit: 1,
		LogLevel:          "error",
	}
}

// NewStore opens a migrated database for cfg and wraps it in a Store.
// The connection is closed when the test ends.
func NewStore(t *testing.T, cfg *config.Config) (*services.Store, *gorm.DB) {
	t.Helper()

	db, err := database.Connect(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return services.NewStore(db, logging.Discard()), db
}

// NewSQLiteStore is NewStore over a fresh sqlite file.
func NewSQLiteStore(t *testing.T) (*services.Store, *gorm.DB) {
	t.Helper()
	return NewStore(t, SQLiteConfig(t))
}

// MustHabit creates a habit or fails the test.
func MustHabit(t *testing.T, store *services.Store, name string, binary bool) *models.Habit {
	t.Helper()
	habit, err := store.CreateHabit(context.Background(), services.HabitInput{Name: name, IsBinary: binary})
	if err != nil {
		t.Fatalf("Failed to create habit %q: %v", name, err)
	}
	return habit
}

// MustAccount creates an account or fails the test.
func MustAccount(t *testing.T, store *services.Store, name string, balance float64) *models.Account {
	t.Helper()
	account, err := store.AddAccount(context.Background(), name, balance, "checking")
	if err != nil {
		t.Fatalf("Failed to create account %q: %v", name, err)
	}
	return account
}

// MustSkill creates a linear skill or fails the test.
func MustSkill(t *testing.T, store *services.Store, name string) *models.Skill {
	t.Helper()
	skill, err := store.CreateSkill(context.Background(), name, "", string(models.ProgressionLinear), 100, 50)
	if err != nil {
		t.Fatalf("Failed to create skill %q: %v", name, err)
	}
	return skill
}

// MustGoal creates a goal or fails the test.
func MustGoal(t *testing.T, store *services.Store, name string) *models.Goal {
	t.Helper()
	goal, err := store.CreateGoal(context.Background(), name, "", nil, nil)
	if err != nil {
		t.Fatalf("Failed to create goal %q: %v", name, err)
	}
	return goal
}
