package services

import (
	"fmt"
	"log/slog"
	"net"

	"github.com/localnerve/lifetracker/internal/config"
	"github.com/localnerve/lifetracker/internal/database"
	"github.com/localnerve/lifetracker/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Server       string            `json:"server,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck pings the database. For network databases the server port is
// also dialed, so a dead host is told apart from a bad login.
func HealthCheck(cfg *config.Config, db *gorm.DB, logger *slog.Logger) HealthCheckResult {
	if logger == nil {
		logger = slog.Default()
	}

	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	if !cfg.IsSQLite() {
		address := net.JoinHostPort(cfg.DBHost, cfg.DBPort)
		if err := utils.PingDatabaseServer(address); err != nil {
			result.Status = "unhealthy"
			result.Server = "unreachable"
			result.Details["server_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database server unreachable: %v", err)
			logger.Error("health check failed", "check", "server", "error", err)
		} else {
			result.Server = "ok"
			result.Details["server_address"] = address
		}
	}

	if err := database.Ping(db); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
		} else {
			result.ErrorMessage += fmt.Sprintf("; Database ping failed: %v", err)
		}
		logger.Error("health check failed", "check", "database", "error", err)
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase
	}

	if result.Status == "healthy" {
		logger.Info("health check passed")
	}

	return result
}
