package user_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both implementations must satisfy the same contract, so the suite
// runs against each.
func stores(t *testing.T) map[string]user.Store {
	sqlite, err := user.NewSqliteStore(filepath.Join(t.TempDir(), "users.db"))
	require.Nil(t, err)

	return map[string]user.Store{
		"memory": user.NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func newUser(username string, email string) *user.User {
	return &user.User{Username: username, Email: email, Password: "hunter2"}
}

func Test_Store_InsertAndGet(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.Nil(t, store.Insert(ctx, newUser("coach", "coach@example.com")))

			byUsername, err := store.GetByUsername(ctx, "coach")
			require.Nil(t, err)
			assert.Equal(t, "coach@example.com", byUsername.Email)
			assert.Equal(t, "hunter2", byUsername.Password)

			byEmail, err := store.GetByEmail(ctx, "coach@example.com")
			require.Nil(t, err)
			assert.Equal(t, "coach", byEmail.Username)
		})
	}
}

func Test_Store_MissingUserIsTagged(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.GetByUsername(ctx, "nobody")
			assert.ErrorIs(t, err, user.ErrUserNotFound)

			_, err = store.GetByEmail(ctx, "nobody@example.com")
			assert.ErrorIs(t, err, user.ErrUserNotFound)

			assert.ErrorIs(t, store.Delete(ctx, "nobody"), user.ErrUserNotFound)
		})
	}
}

func Test_Store_DuplicatesRejected(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.Nil(t, store.Insert(ctx, newUser("coach", "coach@example.com")))

			assert.ErrorIs(t, store.Insert(ctx, newUser("coach", "other@example.com")), user.ErrUserExists)
			assert.ErrorIs(t, store.Insert(ctx, newUser("other", "coach@example.com")), user.ErrUserExists)

			// Same username, different casing, is still a duplicate.
			assert.ErrorIs(t, store.Insert(ctx, newUser("Coach", "third@example.com")), user.ErrUserExists)
		})
	}
}

func Test_Store_ListAndDelete(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.Nil(t, store.Insert(ctx, newUser("beta", "beta@example.com")))
			require.Nil(t, store.Insert(ctx, newUser("alpha", "alpha@example.com")))

			users, err := store.List(ctx)
			require.Nil(t, err)
			require.Len(t, users, 2)
			assert.Equal(t, "alpha", users[0].Username)
			assert.Equal(t, "beta", users[1].Username)

			require.Nil(t, store.Delete(ctx, "alpha"))

			users, err = store.List(ctx)
			require.Nil(t, err)
			require.Len(t, users, 1)
			assert.Equal(t, "beta", users[0].Username)
		})
	}
}
