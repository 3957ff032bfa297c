// Package user holds the portal's account store. It is glue around
// the ingestion core: functionally a small key-value store keyed by
// username, injected in to the API layer so nothing depends on
// process-wide state.
package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user does not exist")
	ErrUserExists   = errors.New("user with that username or email already exists")
)

type (
	// User is an account record. Credentials are stored and compared
	// as-is; hardening the credential handling is explicitly out of
	// scope for this service.
	User struct {
		ID        uuid.UUID `db:"id" json:"id"`
		Username  string    `db:"username" json:"username"`
		Email     string    `db:"email" json:"email"`
		Password  string    `db:"password" json:"-"`
		IsAdmin   bool      `db:"is_admin" json:"isAdmin"`
		CreatedAt time.Time `db:"created_at" json:"createdAt"`
	}

	// Store is the account store capability. It mirrors the object
	// store pattern: a small interface, swappable between the durable
	// sqlite implementation and the in-memory one used by tests.
	Store interface {
		GetByUsername(ctx context.Context, username string) (*User, error)
		GetByEmail(ctx context.Context, email string) (*User, error)
		Insert(ctx context.Context, user *User) error
		List(ctx context.Context) ([]*User, error)
		Delete(ctx context.Context, username string) error
	}
)
