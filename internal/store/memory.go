package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

type (
	memoryObject struct {
		contentType string
		data        []byte
	}

	// MemoryStore is a map-backed ObjectStore used as the test double
	// for the S3 implementation. Safe for concurrent use.
	MemoryStore struct {
		mu      sync.Mutex
		objects map[string]memoryObject
	}
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]memoryObject)}
}

func (store *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	_, ok := store.objects[key]
	return ok, nil
}

func (store *MemoryStore) Put(_ context.Context, key string, contentType string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return fmt.Errorf("failed to read content for %s: %w", key, err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	store.objects[key] = memoryObject{contentType: contentType, data: data}
	return nil
}

func (store *MemoryStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	object, ok := store.objects[key]
	if !ok {
		return nil, fmt.Errorf("object %s: %w", key, ErrObjectNotFound)
	}

	return io.NopCloser(bytes.NewReader(object.data)), nil
}

// Keys returns the keys currently held, for test assertions.
func (store *MemoryStore) Keys() []string {
	store.mu.Lock()
	defer store.mu.Unlock()

	keys := make([]string, 0, len(store.objects))
	for key := range store.objects {
		keys = append(keys, key)
	}

	return keys
}
