//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestShiftlensWithMySQL tests the shiftlens CLI with a MySQL backend.
func TestShiftlensWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "shiftlens",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/shiftlens?parseTime=true", host, port.Port())
	runBackendScenario(t, "mysql", connStr)
}

// TestShiftlensWithPostgres tests the shiftlens CLI with a PostgreSQL backend.
func TestShiftlensWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	runBackendScenario(t, "postgresql", connStr)
}

// runBackendScenario points both stores at one database and runs the roster commands twice,
// so the second pass is served from the matrix cache.
func runBackendScenario(t *testing.T, backend, connStr string) {
	t.Helper()

	// Set environment variables
	_ = os.Setenv("SHIFTLENS_CACHE_BACKEND", backend)
	_ = os.Setenv("SHIFTLENS_CACHE_DB_CONNECT", connStr)
	_ = os.Setenv("SHIFTLENS_ANALYSIS_BACKEND", backend)
	_ = os.Setenv("SHIFTLENS_ANALYSIS_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("SHIFTLENS_CACHE_BACKEND") }()
	defer func() { _ = os.Unsetenv("SHIFTLENS_CACHE_DB_CONNECT") }()
	defer func() { _ = os.Unsetenv("SHIFTLENS_ANALYSIS_BACKEND") }()
	defer func() { _ = os.Unsetenv("SHIFTLENS_ANALYSIS_DB_CONNECT") }()

	roster := writeRoster(t, [][]int{{1, 0, 1}, {1, 1, 1}, {0, 0, 1}})

	_, err := runShiftlens(t, "cache", "clear")
	require.NoError(t, err)
	_, err = runShiftlens(t, "analysis", "clear")
	require.NoError(t, err)

	for range 2 {
		out, err := runShiftlens(t, "coverage", roster, "--output", "csv")
		require.NoError(t, err)
		assert.Equal(t, "rank,shift,nurses,critical\n1,Shift 1,2,false\n2,Shift 2,1,true\n3,Shift 3,3,false\n", out)

		_, err = runShiftlens(t, "recommend", roster, "--emoji", "no")
		require.NoError(t, err)
	}

	out, err := runShiftlens(t, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Entries: 1")

	out, err = runShiftlens(t, "analysis", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Runs: 4")
}
