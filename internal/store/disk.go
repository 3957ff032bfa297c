package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

type diskStore struct {
	root string
}

// NewDiskStore returns an ObjectStore backed by a flat directory on
// the local filesystem. It serves as the legacy/bootstrap home for
// recordings which predate the durable store, and is what the delivery
// path falls back to. The directory is created if missing.
func NewDiskStore(root string) (ObjectStore, error) {
	if root == "" {
		return nil, errors.New("cannot construct disk store: no directory configured")
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create disk store directory %s: %w", root, err)
	}

	return &diskStore{root: root}, nil
}

func (store *diskStore) Exists(_ context.Context, key string) (bool, error) {
	path, err := store.resolve(key)
	if err != nil {
		return false, nil
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("failed to check existence of %s: %w", key, err)
	}

	return true, nil
}

func (store *diskStore) Put(_ context.Context, key string, _ string, content io.Reader) error {
	path, err := store.resolve(key)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", key, err)
	}

	if _, err := io.Copy(file, content); err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	return file.Close()
}

func (store *diskStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	path, err := store.resolve(key)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", key, ErrObjectNotFound)
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("object %s: %w", key, ErrObjectNotFound)
		}

		return nil, fmt.Errorf("failed to open %s: %w", key, err)
	}

	return file, nil
}

// resolve maps a key to its on-disk path, rejecting any key which
// would escape the store's root (path separators, traversal).
func (store *diskStore) resolve(key string) (string, error) {
	if key == "" || key != filepath.Base(key) {
		return "", fmt.Errorf("invalid object key %q", key)
	}

	return filepath.Join(store.root, key), nil
}
