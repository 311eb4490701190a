package db

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// testDSN is empty when no database is reachable; DB tests skip then.
var testDSN string

// TestMain uses DB_ADDR when set, otherwise starts a throwaway PostgreSQL container.
func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	flag.Parse()
	if testDSN = os.Getenv("DB_ADDR"); testDSN != "" || testing.Short() {
		return m.Run()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := guarded(func() (testcontainers.Container, error) {
		return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:16-alpine",
				ExposedPorts: []string{"5432/tcp"},
				Env: map[string]string{
					"POSTGRES_USER":     "test",
					"POSTGRES_PASSWORD": "test",
					"POSTGRES_DB":       "testdb",
				},
				WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			},
			Started: true,
		})
	})
	if err != nil {
		slog.Warn("postgres container unavailable, database tests will skip", "error", err)
		return m.Run()
	}
	defer func() {
		_ = container.Terminate(context.Background())
	}()

	host, err := container.Host(ctx)
	if err != nil {
		slog.Error("getting container host", "error", err)
		return 1
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		slog.Error("getting container port", "error", err)
		return 1
	}
	testDSN = fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	return m.Run()
}

// guarded runs start and turns a panic into an error. testcontainers panics
// instead of returning an error when no Docker host can be found.
func guarded[T any](start func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("starting container: %v", r)
		}
	}()
	return start()
}
