package repositories

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	users, err := fs.ReadFile(migrations, "migrations/00001_create_users.sql")
	require.NoError(t, err)
	assert.Contains(t, string(users), "CONSTRAINT users_email_key UNIQUE (email)")
	assert.Contains(t, string(users), "CONSTRAINT users_username_key UNIQUE (username)")
}

func TestMigrate_UsesGoose(t *testing.T) {
	orig := gooseUp
	defer func() { gooseUp = orig }()

	db, _ := newMockDB(t)

	var gotDir string
	gooseUp = func(ctx context.Context, conn *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		assert.Same(t, db.DB, conn)
		return nil
	}
	require.NoError(t, Migrate(context.Background(), db))
	assert.Equal(t, "migrations", gotDir)

	gooseUp = func(ctx context.Context, conn *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	assert.EqualError(t, Migrate(context.Background(), db), "boom")
}
