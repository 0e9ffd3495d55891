package services_test

import (
	"net"
	"testing"

	"github.com/localnerve/lifetracker/internal/config"
	"github.com/localnerve/lifetracker/internal/database"
	"github.com/localnerve/lifetracker/internal/logging"
	"github.com/localnerve/lifetracker/internal/services"
	"github.com/localnerve/lifetracker/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckSQLite(t *testing.T) {
	cfg := testhelpers.SQLiteConfig(t)
	_, db := testhelpers.NewStore(t, cfg)

	result := services.HealthCheck(cfg, db, logging.Discard())
	assert.Equal(t, "healthy", result.Status)
	assert.Equal(t, "ok", result.Database)
	assert.Empty(t, result.Server)
	assert.Equal(t, "sqlite", result.Details["database_type"])
}

func TestHealthCheckClosedDatabase(t *testing.T) {
	cfg := testhelpers.SQLiteConfig(t)
	_, db := testhelpers.NewStore(t, cfg)
	require.NoError(t, database.Close(db))

	result := services.HealthCheck(cfg, db, logging.Discard())
	assert.Equal(t, "unhealthy", result.Status)
	assert.Equal(t, "unreachable", result.Database)
	assert.NotEmpty(t, result.ErrorMessage)
}

func TestHealthCheckUnreachableServer(t *testing.T) {
	// Grab a free port, then close it so nothing listens there.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, _ := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, ln.Close())

	sqliteCfg := testhelpers.SQLiteConfig(t)
	_, db := testhelpers.NewStore(t, sqliteCfg)

	cfg := &config.Config{DBType: "postgres", DBHost: "127.0.0.1", DBPort: port, DBDatabase: "lifetracker"}
	result := services.HealthCheck(cfg, db, logging.Discard())
	assert.Equal(t, "unhealthy", result.Status)
	assert.Equal(t, "unreachable", result.Server)
	assert.Contains(t, result.ErrorMessage, "unreachable")
}
