//go:build integration

package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres runs a throwaway PostgreSQL container and returns its DSN.
// The container is terminated through t.Cleanup.
func startPostgres(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "testuser",
				"POSTGRES_PASSWORD": "testpass",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())
}

func TestPostgresStore_Integration(t *testing.T) {
	ctx := context.Background()
	store, err := ConnectPostgres(ctx, startPostgres(t))
	require.NoError(t, err)
	defer store.Close()

	adapter := NewAdapter(store)

	doc, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, doc)

	original := sampleDocument()
	require.NoError(t, adapter.Save(ctx, original))
	original.PersonalInfo.Phone = "555-0100"
	require.NoError(t, adapter.Save(ctx, original))

	loaded, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)

	require.NoError(t, adapter.Clear(ctx))
	loaded, err = adapter.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
