//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sizegate/sizegate/internal/history"
	"github.com/sizegate/sizegate/schema"
)

// exerciseStore runs a full record/query/clear cycle against a live backend.
func exerciseStore(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	t.Helper()

	store, err := history.NewStore(backend, connStr)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	result := &schema.CheckRunResult{
		Results: []schema.ComparisonResult{
			{
				Key:       "button/index.js",
				Component: "button",
				Variant:   schema.PrimaryVariant,
				Size:      schema.SizeResult{RawBytes: 10240, GzipBytes: 3072, BrotliBytes: 2048},
			},
		},
		TotalComponents: 1,
	}

	runID, err := store.RecordRun(time.Now(), 2*time.Second, result, map[string]any{"components": 1})
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	runs, err := store.GetRecentRuns(5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].Passed)
	assert.Equal(t, int64(2000), runs[0].DurationMs)

	records, err := store.GetAllResults()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "button/index.js", records[0].ResultKey)
	assert.Equal(t, int64(10240), records[0].RawBytes)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, backend, status.Backend)
	assert.Equal(t, int64(1), status.TotalRuns)

	require.NoError(t, store.Clear())
	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Zero(t, status.TotalRuns)
}

// TestHistoryWithMySQL tests the history store with a MySQL backend.
func TestHistoryWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "sizegate",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/sizegate?parseTime=true", host, port.Port())
	exerciseStore(t, schema.MySQLBackend, connStr)
}

// TestHistoryWithPostgreSQL tests the history store with a PostgreSQL backend.
func TestHistoryWithPostgreSQL(t *testing.T) {
	ctx := context.Background()

	// Start PostgreSQL container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": "secret123",
			"POSTGRES_DB":       "sizegate",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres password=secret123 dbname=sizegate sslmode=disable", host, port.Port())
	exerciseStore(t, schema.PostgreSQLBackend, connStr)
}

// TestMigrateWithPostgreSQL runs the migration chain against PostgreSQL.
func TestMigrateWithPostgreSQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": "secret123",
			"POSTGRES_DB":       "sizegate",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres password=secret123 dbname=sizegate sslmode=disable", host, port.Port())

	// Up to latest, then all the way back down
	require.NoError(t, history.MigrateHistory(schema.PostgreSQLBackend, connStr, -1))
	require.NoError(t, history.MigrateHistory(schema.PostgreSQLBackend, connStr, 0))
}
