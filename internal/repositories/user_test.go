package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-bookstore/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

var userRowColumns = []string{"id", "email", "username", "password_hash", "confirmed", "created_at", "updated_at"}

func TestUserReadRepository_GetByEmail(t *testing.T) {
	now := time.Now()

	t.Run("Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserReadRepository(db, nil)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
			WithArgs("a@x.com").
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(int64(1), "a@x.com", "alice", "hash", false, now, now))

		user, err := repo.GetByEmail(context.Background(), "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "hash", user.PasswordHash)
		assert.False(t, user.Confirmed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserReadRepository(db, nil)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
			WithArgs("nobody@x.com").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetByEmail(context.Background(), "nobody@x.com")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, user)
	})

	t.Run("DBError", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserReadRepository(db, nil)

		mock.ExpectQuery("SELECT (.+) FROM users").
			WillReturnError(sql.ErrConnDone)

		_, err := repo.GetByEmail(context.Background(), "a@x.com")
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func TestUserReadRepository_GetByIDAndList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db, nil)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(int64(2), "b@x.com", "bob", "hash", true, now, now))

	user, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.True(t, user.Confirmed)

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY id").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(int64(1), "a@x.com", "alice", "h1", false, now, now).
			AddRow(int64(2), "b@x.com", "bob", "h2", true, now, now))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, int64(2), users[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Create(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{name: "Success"},
		{
			name:    "DuplicateEmail",
			dbErr:   &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			wantErr: ErrDuplicateEmail,
		},
		{
			name:    "DuplicateUsername",
			dbErr:   &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"},
			wantErr: ErrDuplicateUsername,
		},
		{
			name:    "DuplicateFromDetail",
			dbErr:   &pgconn.PgError{Code: "23505", Detail: "Key (username)=(alice) already exists."},
			wantErr: ErrDuplicateUsername,
		},
		{
			name:    "OtherConstraint",
			dbErr:   &pgconn.PgError{Code: "23505", ConstraintName: "something_else"},
			wantErr: ErrDuplicate,
		},
		{
			name:    "NotNullViolation",
			dbErr:   &pgconn.PgError{Code: "23502"},
			wantErr: &pgconn.PgError{Code: "23502"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewUserWriteRepository(db, nil)

			exp := mock.ExpectQuery("INSERT INTO users").
				WithArgs("a@x.com", "alice", "hash", false)
			if tt.dbErr != nil {
				exp.WillReturnError(tt.dbErr)
			} else {
				exp.WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
					AddRow(int64(10), now, now))
			}

			user := &models.User{Email: "a@x.com", Username: "alice", PasswordHash: "hash"}
			err := repo.Create(context.Background(), user)

			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, int64(10), user.ID)
				assert.Equal(t, now, user.CreatedAt)
				return
			}

			var pgErr *pgconn.PgError
			if errors.As(tt.wantErr, &pgErr) {
				var got *pgconn.PgError
				require.ErrorAs(t, err, &got)
				assert.Equal(t, pgErr.Code, got.Code)
				assert.NotErrorIs(t, err, ErrDuplicate)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrDuplicate)
		})
	}
}

func TestDuplicateError_Field(t *testing.T) {
	var dup interface{ Field() string }
	require.ErrorAs(t, error(ErrDuplicateEmail), &dup)
	assert.Equal(t, "email", dup.Field())
	assert.Equal(t, "username already exists", ErrDuplicateUsername.Error())
}

func TestUserWriteRepository_Update(t *testing.T) {
	now := time.Now()
	user := &models.User{ID: 3, Email: "c@x.com", Username: "carol", PasswordHash: "h", Confirmed: false}

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserWriteRepository(db, nil)

		mock.ExpectQuery("UPDATE users").
			WithArgs("c@x.com", "carol", "h", false, int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

		u := *user
		require.NoError(t, repo.Update(context.Background(), &u))
		assert.Equal(t, now, u.UpdatedAt)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserWriteRepository(db, nil)

		mock.ExpectQuery("UPDATE users").WillReturnError(sql.ErrNoRows)

		u := *user
		assert.ErrorIs(t, repo.Update(context.Background(), &u), ErrNotFound)
	})

	t.Run("Duplicate", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserWriteRepository(db, nil)

		mock.ExpectQuery("UPDATE users").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		u := *user
		assert.ErrorIs(t, repo.Update(context.Background(), &u), ErrDuplicateEmail)
	})
}

func TestUserWriteRepository_MarkConfirmed(t *testing.T) {
	tests := []struct {
		name    string
		rows    int64
		dbErr   error
		want    bool
		wantErr bool
	}{
		{name: "Flipped", rows: 1, want: true},
		{name: "AlreadyConfirmed", rows: 0, want: false},
		{name: "DBError", dbErr: sql.ErrConnDone, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewUserWriteRepository(db, nil)

			exp := mock.ExpectExec("UPDATE users SET confirmed = TRUE").WithArgs(int64(5))
			if tt.dbErr != nil {
				exp.WillReturnError(tt.dbErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.rows))
			}

			got, err := repo.MarkConfirmed(context.Background(), 5)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserWriteRepository_Delete(t *testing.T) {
	now := time.Now()

	t.Run("Deleted", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserWriteRepository(db, nil)

		mock.ExpectQuery("DELETE FROM users WHERE id = \\$1 RETURNING").
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(int64(4), "d@x.com", "dave", "h", true, now, now))

		user, err := repo.Delete(context.Background(), 4)
		require.NoError(t, err)
		assert.Equal(t, "dave", user.Username)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserWriteRepository(db, nil)

		mock.ExpectQuery("DELETE FROM users").WillReturnError(sql.ErrNoRows)

		user, err := repo.Delete(context.Background(), 4)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, user)
	})
}

func TestUserWriteRepository_UsesRequestTx(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	tx, err := db.Beginx()
	require.NoError(t, err)

	getter := func(ctx context.Context) *sqlx.Tx { return tx }
	repo := NewUserWriteRepository(db, getter)

	mock.ExpectExec("UPDATE users SET confirmed = TRUE").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.MarkConfirmed(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
