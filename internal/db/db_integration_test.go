package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"photoshare-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres runs a throwaway Postgres and returns a migrated pool.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Postgres integration test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "photoshare",
				"POSTGRES_PASSWORD": "photoshare",
				"POSTGRES_DB":       "photoshare",
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	pool, err := Connect(ctx, fmt.Sprintf("postgres://photoshare:photoshare@%s:%s/photoshare?sslmode=disable", host, port.Port()))
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool))
	// idempotent
	require.NoError(t, Migrate(ctx, pool))
	return pool
}

func TestRepositoriesAgainstPostgres(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	users := NewUserRepo(pool)
	photos := NewPhotoRepo(pool)

	owner := &models.User{LoginName: "malcolm", Password: "hash", FirstName: "Ian", LastName: "Malcolm", Location: "Austin, TX"}
	author := &models.User{LoginName: "ripley", Password: "hash", FirstName: "Ellen", LastName: "Ripley"}
	require.NoError(t, users.Create(ctx, owner))
	require.NoError(t, users.Create(ctx, author))

	t.Run("login_name is unique", func(t *testing.T) {
		err := users.Create(ctx, &models.User{LoginName: "malcolm", Password: "x", FirstName: "I", LastName: "M"})
		assert.ErrorIs(t, err, ErrLoginNameTaken)
	})

	t.Run("user projections", func(t *testing.T) {
		s, err := users.FindSummary(ctx, author.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AuthorSummary{ID: author.ID, FirstName: "Ellen", LastName: "Ripley"}, *s)

		p, err := users.FindProfile(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "Austin, TX", p.Location)

		_, err = users.FindSummary(ctx, uuid.New().String())
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = users.FindSummary(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrNotFound)

		u, err := users.FindByLoginName(ctx, "ripley")
		require.NoError(t, err)
		assert.Equal(t, author.ID, u.ID)
	})

	t.Run("embedded comments keep order", func(t *testing.T) {
		when := time.Date(2013, 9, 20, 17, 0, 0, 0, time.UTC)
		photo := &models.Photo{UserID: owner.ID, FileName: "malcolm1.jpg", DateTime: when,
			Comments: []models.StoredComment{{ID: "c1", Comment: "first", DateTime: when, UserID: author.ID}}}
		require.NoError(t, photos.Create(ctx, photo))

		require.NoError(t, photos.AppendComment(ctx, photo.ID, models.StoredComment{ID: "c2", Comment: "second", DateTime: when, UserID: owner.ID}))
		require.NoError(t, photos.AppendComment(ctx, photo.ID, models.StoredComment{ID: "c3", Comment: "third", DateTime: when, UserID: author.ID}))

		got, err := photos.FindByOwner(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Len(t, got[0].Comments, 3)
		assert.Equal(t, []string{"c1", "c2", "c3"}, []string{got[0].Comments[0].ID, got[0].Comments[1].ID, got[0].Comments[2].ID})
		assert.Equal(t, author.ID, got[0].Comments[2].UserID)
		assert.True(t, when.Equal(got[0].DateTime))

		err = photos.AppendComment(ctx, uuid.New().String(), models.StoredComment{ID: "x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("owner without photos", func(t *testing.T) {
		got, err := photos.FindByOwner(ctx, author.ID)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)

		got, err = photos.FindByOwner(ctx, "garbage")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
