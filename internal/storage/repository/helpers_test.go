//go:build integration

package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/financeiro/internal/entitlement"
	"github.com/magabrotheeeer/financeiro/internal/migrations"
	"github.com/magabrotheeeer/financeiro/internal/models"
)

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start container")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	var port nat.Port
	port, err = container.MappedPort(ctx, nat.Port("5432/tcp"))
	require.NoError(t, err, "failed to get port")

	connStr := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())

	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	path, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, path))
	require.NoError(t, CheckDatabaseReady(ctx, storage))

	cleanup := func() {
		_ = storage.Close()
		_ = container.Terminate(ctx)
	}
	return storage, cleanup
}

// createTestUser сохраняет пользователя с пробным периодом и возвращает его UID.
func createTestUser(t *testing.T, s *Storage, username string) string {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	u := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		FullName:     "Usuário " + username,
		Active:       true,
		CreatedAt:    now,
		TrialStart:   now,
	}
	u.SetSubscription(entitlement.NewTrial(now))
	uid, err := s.CreateUser(context.Background(), u)
	require.NoError(t, err)
	_, err = uuid.Parse(uid)
	require.NoError(t, err)
	return uid
}
