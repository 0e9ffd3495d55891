// Container helpers for running the store against real database servers.
// Used by the integration tests and by the cmd/testcontainers runner.
// Expects environment variables to be loaded from .env files.
//

package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/localnerve/lifetracker/data"
	"github.com/localnerve/lifetracker/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type TestContainers struct {
	DBContainer testcontainers.Container
	// Config points at the started database through its mapped host port.
	Config *config.Config
}

func (tc *TestContainers) Terminate(t *testing.T) {
	if tc == nil || tc.DBContainer == nil {
		return
	}
	if err := tc.DBContainer.Terminate(context.Background()); err != nil {
		logMessage(t, "Failed to terminate database container: %v", err)
	}
}

// ContainerSettings are read from the environment:
// DB_TYPE (mariadb, mysql or postgres), DB_IMAGE, DB_PORT, DB_DATABASE,
// DB_USER, DB_PASSWORD and DB_ROOT_PASSWORD.
type ContainerSettings struct {
	DBType       string
	Image        string
	Port         string
	Database     string
	User         string
	Password     string
	RootPassword string
}

// SettingsFromEnv reads the container settings, filling the defaults of the image's type.
func SettingsFromEnv() ContainerSettings {
	s := ContainerSettings{
		DBType:       getenv("DB_TYPE", "mariadb"),
		Image:        os.Getenv("DB_IMAGE"),
		Database:     getenv("DB_DATABASE", "lifetracker"),
		User:         getenv("DB_USER", "tracker"),
		Password:     getenv("DB_PASSWORD", "tracker-secret"),
		RootPassword: getenv("DB_ROOT_PASSWORD", "root-secret"),
	}
	defaultPort := "3306"
	if s.DBType == "postgres" {
		defaultPort = "5432"
	}
	s.Port = getenv("DB_PORT", defaultPort)
	return s
}

// CreateDBTestContainer starts the configured database server, prepares the
// database and user the service connects with, and returns a Config for it.
// With a nil t, failures print and exit the process.
func CreateDBTestContainer(t *testing.T, s ContainerSettings) (*TestContainers, error) {
	ctx := context.Background()
	testContainers := &TestContainers{}

	if s.Image == "" {
		return nil, fmt.Errorf("DB_IMAGE is not set")
	}

	tcpDbPort, err := nat.NewPort("tcp", s.Port)
	if err != nil {
		exitWithError(t, err, "Failed to create DB port")
	}

	exists, err := imageExists(ctx, s.Image)
	if err != nil {
		logMessage(t, "Could not check for local image %s: %v", s.Image, err)
	} else if exists {
		logMessage(t, "Image %s exists, reusing...", s.Image)
	} else {
		logMessage(t, "Image %s does not exist, pulling...", s.Image)
	}

	dataDir := "/var/lib/mysql"
	if s.DBType == "postgres" {
		dataDir = "/var/lib/postgresql/data"
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        s.Image,
			ExposedPorts: []string{string(tcpDbPort)},
			Env:          getDBInitEnvMap(s),
			WaitingFor:   wait.ForListeningPort(tcpDbPort).WithStartupTimeout(90 * time.Second),
			HostConfigModifier: func(hostConfig *container.HostConfig) {
				// Throwaway data, keep it in memory
				hostConfig.Tmpfs = map[string]string{dataDir: "rw"}
			},
		},
		Started: true,
	})
	if err != nil {
		exitWithError(t, err, "Failed to start Database")
		return nil, err
	}
	testContainers.DBContainer = dbContainer

	dbHost, _ := dbContainer.Host(ctx)
	dbPort, _ := dbContainer.MappedPort(ctx, tcpDbPort)

	switch s.DBType {
	case "mysql", "mariadb":
		if err := performMySqlDBInit(s, dbHost, dbPort); err != nil {
			testContainers.Terminate(t)
			exitWithError(t, err, "Failed to initialize database")
			return nil, err
		}
	}

	testContainers.Config = &config.Config{
		Port:              "3000",
		DBType:            s.DBType,
		DBHost:            dbHost,
		DBPort:            dbPort.Port(),
		DBDatabase:        s.Database,
		DBUser:            s.User,
		DBPassword:        s.Password,
		DBConnectionLimit: 5,
		LogLevel:          "info",
	}

	logMessage(t, "DB_HOST=%s", dbHost)
	logMessage(t, "DB_PORT=%s", dbPort.Port())
	logMessage(t, "Database testcontainer started successfully")
	return testContainers, nil
}

func getDBInitEnvMap(s ContainerSettings) map[string]string {
	switch s.DBType {
	case "postgres":
		return map[string]string{
			"POSTGRES_PASSWORD": s.Password,
			"POSTGRES_USER":     s.User,
			"POSTGRES_DB":       s.Database,
		}
	default:
		return map[string]string{
			"MYSQL_ROOT_PASSWORD":   s.RootPassword,
			"MARIADB_ROOT_PASSWORD": s.RootPassword,
		}
	}
}

func performMySqlDBInit(s ContainerSettings, dbHost string, dbPort nat.Port) error {
	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/", s.RootPassword, dbHost, dbPort.Port()))
	if err != nil {
		return fmt.Errorf("connect to MariaDB for setup: %w", err)
	}
	defer db.Close()

	// Wait for connection to be really ready
	for i := 0; i < 30; i++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("MariaDB not ready after 30 seconds: %w", err)
	}

	vars := map[string]string{
		"DB_DATABASE": s.Database,
		"DB_USER":     s.User,
		"DB_PASSWORD": s.Password,
	}
	script := os.Expand(data.InitdbMariaDBPrivileges, func(key string) string {
		return vars[key]
	})
	if err := executeSQL(db, script); err != nil {
		return fmt.Errorf("execute %s privileges init sql: %w", s.DBType, err)
	}
	return nil
}

func executeSQL(db *sql.DB, script string) error {
	lines := strings.Split(script, "\n")

	ncls := make([]string, 0, len(lines))
	for _, l := range lines {
		ncls = append(ncls, excludeComment(l))
	}

	queries := strings.Split(strings.Join(ncls, " "), ";")
	for _, q := range queries {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("%s : when executing > %s", err.Error(), q)
		}
	}
	return nil
}

// excludeComment strips a trailing -- comment that is not inside quotes.
func excludeComment(line string) string {
	var quote rune
	for i, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"' || r == '`':
			quote = r
		case strings.HasPrefix(line[i:], "--"):
			return line[:i]
		}
	}
	return line
}

func imageExists(ctx context.Context, imageName string) (bool, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false, err
	}
	defer cli.Close()

	images, err := cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, err
	}

	for _, image := range images {
		for _, tag := range image.RepoTags {
			if tag == imageName {
				return true, nil
			}
		}
	}

	return false, nil
}

func getenv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
