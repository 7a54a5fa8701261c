package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/blogstack/internal/model"
	"github.com/sakif/blogstack/internal/repository"
	"github.com/sakif/blogstack/internal/repository/storagetest"
)

// newTestStore opens a fresh in-memory SQLite database. The pool is pinned
// to one connection, so the whole test sees the same database.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage_SQLite(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) repository.Storage {
		return newTestStore(t)
	})
}

// =========================================================================
// OPEN
// =========================================================================

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "mysql", DSN: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown driver "mysql"`)
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: DriverSQLite})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty DSN")
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.migrate(context.Background()))
	require.NoError(t, s.migrate(context.Background()))
	assert.Equal(t, DriverSQLite, s.Driver())
}

func TestOpen_FileDatabasePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "blog.db")

	s, err := Open(ctx, Config{Driver: DriverSQLite, DSN: path})
	require.NoError(t, err)

	f := storagetest.NewFixture(t, s)
	draft := f.Post("durable", storagetest.Day(7))
	draft.MetaTags = map[string]string{"og:title": "Durable"}
	created, err := s.CreatePost(ctx, draft)
	require.NoError(t, err)
	_, err = s.UpdatePostViews(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, Config{Driver: DriverSQLite, DSN: path})
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	got, found, err := reopened.GetPostBySlug(ctx, "durable")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(1), got.Views)
	assert.Equal(t, "Durable", got.MetaTags["og:title"])
	assert.True(t, got.PublishedAt.Equal(storagetest.Day(7)))

	author, found, err := reopened.GetUserByUsername(ctx, f.Author.Username)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, f.Author, author)
}

// =========================================================================
// SQLITE SPECIFICS
// =========================================================================

func TestMetaTags_EmptyAndNil(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := storagetest.NewFixture(t, s)

	withNil, err := s.CreatePost(ctx, f.Post("nil-meta", storagetest.Day(1)))
	require.NoError(t, err)
	assert.Nil(t, withNil.MetaTags)

	draft := f.Post("empty-meta", storagetest.Day(2))
	draft.MetaTags = map[string]string{}
	_, err = s.CreatePost(ctx, draft)
	require.NoError(t, err)

	got, _, err := s.GetPostBySlug(ctx, "nil-meta")
	require.NoError(t, err)
	assert.Nil(t, got.MetaTags)

	got, _, err = s.GetPostBySlug(ctx, "empty-meta")
	require.NoError(t, err)
	assert.NotNil(t, got.MetaTags)
	assert.Empty(t, got.MetaTags)
}

func TestGetPosts_UndatedRowsSortLast(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := storagetest.NewFixture(t, s)

	dated, err := s.CreatePost(ctx, f.Post("dated", storagetest.Day(1)))
	require.NoError(t, err)
	undated, err := s.CreatePost(ctx, f.Post("undated", storagetest.Day(9)))
	require.NoError(t, err)

	// Rows written by other tools may have no publish date.
	_, err = s.conn.Exec(`UPDATE posts SET published_at = NULL WHERE id = ?`, undated.ID)
	require.NoError(t, err)

	got, err := s.GetPosts(ctx, repository.ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, dated.ID, got[0].ID)
	assert.Equal(t, undated.ID, got[1].ID)
	assert.Nil(t, got[1].PublishedAt)
}

func TestCreateUser_CopiesDraftPointers(t *testing.T) {
	s := newTestStore(t)

	bio := "before"
	u, err := s.CreateUser(context.Background(), model.NewUser{Username: "u", Password: "p", Email: "u@x.com", Bio: &bio})
	require.NoError(t, err)

	bio = "after"
	assert.Equal(t, "before", *u.Bio)
}
