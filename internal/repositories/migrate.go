package repositories

import (
	"context"
	"embed"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/sbilibin2017/gw-bookstore/internal/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// gooseUp is a seam for tests.
var gooseUp = goose.UpContext

// Migrate applies the embedded schema migrations.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	err := gooseUp(ctx, db.DB, "migrations")
	logger.Log.Infow("goose up", "dir", "migrations", "error", err)
	return err
}
