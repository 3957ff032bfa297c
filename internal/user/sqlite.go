package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/HighCheeseBaseball/trackman-portal-backend/pkg/logger"
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var log = logger.Get("UserStore")

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	username   TEXT NOT NULL UNIQUE COLLATE NOCASE,
	email      TEXT NOT NULL UNIQUE COLLATE NOCASE,
	password   TEXT NOT NULL,
	is_admin   BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP NOT NULL
);`

type sqliteStore struct {
	db *sqlx.DB
}

// NewSqliteStore opens (creating if needed) the sqlite-backed account
// store at the given path. The schema is applied on open; there is
// little enough of it that a migration tool would be ceremony.
func NewSqliteStore(path string) (Store, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open user database at %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply user schema: %w", err)
	}

	log.Debugf("Opened user database at %s\n", path)
	return &sqliteStore{db: db}, nil
}

func selectUserBuilder() squirrel.SelectBuilder {
	return squirrel.
		Select("id", "username", "email", "password", "is_admin", "created_at").
		From("users")
}

func (store *sqliteStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	return store.getWhere(ctx, squirrel.Eq{"username": strings.ToLower(username)})
}

func (store *sqliteStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	return store.getWhere(ctx, squirrel.Eq{"email": strings.ToLower(email)})
}

func (store *sqliteStore) getWhere(ctx context.Context, predicate squirrel.Eq) (*User, error) {
	query, args, err := selectUserBuilder().Where(predicate).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to construct select user query: %w", err)
	}

	var user User
	if err := store.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to select user: %w", err)
	}

	return &user, nil
}

func (store *sqliteStore) Insert(ctx context.Context, user *User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := store.db.ExecContext(ctx, `
		INSERT INTO users(id, username, email, password, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, strings.ToLower(user.Username), strings.ToLower(user.Email), user.Password, user.IsAdmin, user.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrUserExists
		}

		return fmt.Errorf("failed to insert new user: %w", err)
	}

	return nil
}

func (store *sqliteStore) List(ctx context.Context) ([]*User, error) {
	query, args, err := selectUserBuilder().OrderBy("username").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to construct list users query: %w", err)
	}

	var users []*User
	if err := store.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

func (store *sqliteStore) Delete(ctx context.Context, username string) error {
	result, err := store.db.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, strings.ToLower(username))
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", username, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrUserNotFound
	}

	return nil
}
