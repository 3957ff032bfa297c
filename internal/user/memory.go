package user

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// memoryStore is the in-memory Store used by tests and as a stopgap
// when no database path is configured. Contents do not survive a
// restart.
type memoryStore struct {
	mu    sync.Mutex
	users map[string]User
}

func NewMemoryStore() Store {
	return &memoryStore{users: make(map[string]User)}
}

func (store *memoryStore) GetByUsername(_ context.Context, username string) (*User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if user, ok := store.users[strings.ToLower(username)]; ok {
		return &user, nil
	}

	return nil, ErrUserNotFound
}

func (store *memoryStore) GetByEmail(_ context.Context, email string) (*User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, user := range store.users {
		if strings.EqualFold(user.Email, email) {
			return &user, nil
		}
	}

	return nil, ErrUserNotFound
}

func (store *memoryStore) Insert(_ context.Context, user *User) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.users[strings.ToLower(user.Username)]; ok {
		return ErrUserExists
	}
	for _, existing := range store.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrUserExists
		}
	}

	store.users[strings.ToLower(user.Username)] = *user
	return nil
}

func (store *memoryStore) List(_ context.Context) ([]*User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	users := make([]*User, 0, len(store.users))
	for _, user := range store.users {
		user := user
		users = append(users, &user)
	}

	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (store *memoryStore) Delete(_ context.Context, username string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	key := strings.ToLower(username)
	if _, ok := store.users[key]; !ok {
		return ErrUserNotFound
	}

	delete(store.users, key)
	return nil
}
