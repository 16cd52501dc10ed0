package session

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/gesan-dev/backoffice-cli/internal/client/models"
	"github.com/gesan-dev/backoffice-cli/internal/logging"
)

var dbSeq int

func setupStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:sessionstore%d?mode=memory&cache=shared", dbSeq)
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE session (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewStore(db, log), db
}

func testSession() *models.Session {
	return &models.Session{
		Token: "T",
		User: &models.UserProfile{
			Email:      "anna.rossi@gesan.it",
			GivenName:  "Anna",
			FamilyName: "Rossi",
			Role:       models.RoleManager,
			Username:   "arossi",
		},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	store.Set(ctx, testSession())

	got := store.Get(ctx)
	require.NotNil(t, got)
	assert.Equal(t, testSession(), got)
	assert.True(t, store.IsValid(ctx))
	assert.Equal(t, "T", store.Token(ctx))
}

func TestStore_GetAbsent(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	assert.Nil(t, store.Get(ctx))
	assert.False(t, store.IsValid(ctx))
	assert.Empty(t, store.Token(ctx))
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	store.Set(ctx, testSession())
	store.Clear(ctx)
	assert.False(t, store.IsValid(ctx))

	// clearing again must leave the same observable state
	store.Clear(ctx)
	assert.False(t, store.IsValid(ctx))
	assert.Nil(t, store.Get(ctx))
}

func TestStore_MalformedUserIsAbsent(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO session (key, value) VALUES ('token', 'T'), ('user', '{broken json')`)
	require.NoError(t, err)

	assert.Nil(t, store.Get(ctx), "malformed user record must read as no session")
	assert.False(t, store.IsValid(ctx))
}

func TestStore_TokenWithoutUserIsAbsent(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO session (key, value) VALUES ('token', 'T')`)
	require.NoError(t, err)

	assert.Nil(t, store.Get(ctx))
}

func TestStore_SetOverwritesPrevious(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	store.Set(ctx, testSession())

	next := testSession()
	next.Token = "T2"
	next.User.Email = "b@gesan.it"
	store.Set(ctx, next)

	got := store.Get(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "T2", got.Token)
	assert.Equal(t, "b@gesan.it", got.User.Email)
}

func TestStore_SetRejectsIncompleteSession(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	store.Set(ctx, &models.Session{Token: "T"})
	assert.False(t, store.IsValid(ctx))
}

func TestStore_SetDoesNotPanicOnStorageFailure(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()
	require.NoError(t, db.Close())

	// must log a warning, not propagate or panic
	store.Set(ctx, testSession())
	store.Clear(ctx)
	assert.Nil(t, store.Get(ctx))
}

func TestOpen_AppliesMigrations(t *testing.T) {
	dsn := "file:sessionopen?mode=memory&cache=shared"
	db, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`INSERT INTO session (key, value) VALUES ('token', 'T')`)
	require.NoError(t, err, "migrated schema must have the session table")
}
