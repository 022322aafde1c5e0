//go:build integration

// Package testutils starts throwaway Postgres and Redis containers for integration tests.
package testutils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startContainer(t *testing.T, req tc.ContainerRequest, port nat.Port) (host string, mapped nat.Port) {
	t.Helper()
	ctx := context.Background()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("docker недоступен, пропускаем: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Terminate(context.Background())
	})

	host, err = c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	mapped, err = c.MappedPort(ctx, port)
	if err != nil {
		t.Fatalf("mapped port %s: %v", port, err)
	}
	return host, mapped
}

// StartPostgres returns a DSN for a fresh Postgres database.
func StartPostgres(t *testing.T) string {
	t.Helper()
	port := nat.Port("5432/tcp")

	host, mapped := startContainer(t, tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{string(port)},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "weather_test",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort(port),
		).WithDeadline(60 * time.Second),
	}, port)

	return fmt.Sprintf("postgres://testuser:testpass@%s:%s/weather_test?sslmode=disable", host, mapped.Port())
}

// StartRedis returns a redis:// URL.
func StartRedis(t *testing.T) string {
	t.Helper()
	port := nat.Port("6379/tcp")

	host, mapped := startContainer(t, tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{string(port)},
		WaitingFor:   wait.ForListeningPort(port).WithStartupTimeout(30 * time.Second),
	}, port)

	return fmt.Sprintf("redis://%s:%s/0", host, mapped.Port())
}
