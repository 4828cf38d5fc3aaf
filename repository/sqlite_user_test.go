package repository

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/pulse/database"
	"github.com/akinalp/pulse/models"
	"github.com/akinalp/pulse/pkg"
)

// setupDB, migration'ları uygulanmış geçici bir SQLite dosyası açar.
func setupDB(t *testing.T) *database.DB {
	t.Helper()

	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrationsFS)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteUserRepo(db.Conn)
	ctx := context.Background()

	u1 := &models.User{Email: "ayse@example.com", Name: "ayşe", PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, u1))
	assert.NotEmpty(t, u1.ID)
	assert.False(t, u1.CreatedAt.IsZero())

	u2 := &models.User{Email: "ayse@example.com", Name: "başka ayşe", PasswordHash: "x"}
	err := repo.Create(ctx, u2)
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)
}

func TestUserGet_NotFound(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteUserRepo(db.Conn)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "yok")
	assert.ErrorIs(t, err, pkg.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "yok@example.com")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestUserGetSummaries(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteUserRepo(db.Conn)
	ctx := context.Background()

	ayse := &models.User{Email: "ayse@example.com", Name: "ayşe", PasswordHash: "x"}
	mehmet := &models.User{Email: "mehmet@example.com", Name: "mehmet", PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, ayse))
	require.NoError(t, repo.Create(ctx, mehmet))

	// Boş liste için sorgu bile atılmaz
	summaries, err := repo.GetSummaries(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, summaries)

	summaries, err = repo.GetSummaries(ctx, []string{ayse.ID, mehmet.ID, "yok"})
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "ayşe", summaries[ayse.ID].Name)
	assert.Equal(t, "mehmet", summaries[mehmet.ID].Name)
}

func TestUserUpdatePassword(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteUserRepo(db.Conn)
	ctx := context.Background()

	u := &models.User{Email: "ayse@example.com", Name: "ayşe", PasswordHash: "eski"}
	require.NoError(t, repo.Create(ctx, u))

	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "yeni"))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "yeni", got.PasswordHash)
}
