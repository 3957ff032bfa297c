// Package store provides the durable object store capability used to
// cache session recordings. The production implementation is backed by
// S3; a local-disk implementation backs the delivery fallback path and
// an in-memory implementation exists for testing.
package store

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrObjectNotFound is returned by Get when no object exists under
	// the requested key. Callers branch on this kind rather than
	// inspecting backend-specific error codes.
	ErrObjectNotFound = errors.New("object does not exist in store")

	// ErrStoreNotConfigured is returned by every operation of the store
	// returned from Unconfigured. Store credentials being absent must
	// fail loudly, never silently no-op.
	ErrStoreNotConfigured = errors.New("object store is not configured")
)

// ObjectStore is the capability interface over a durable blob store.
//
// Exists reports whether an object is present under the key; a missing
// object is a normal (false, nil) result, NOT an error. Only
// transport/auth failures are reported as errors.
//
// Put streams the content of the reader in to the store under the
// given key. The write is not transactional: a failure partway through
// may leave a partial object behind, so callers must only treat the key
// as cached once Put returns nil.
//
// Get returns a streamed reader for the object, or an error wrapping
// ErrObjectNotFound when the key is absent. The caller owns closing
// the returned reader.
type ObjectStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	Put(ctx context.Context, key string, contentType string, content io.Reader) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

type unconfiguredStore struct{}

// Unconfigured returns an ObjectStore whose every operation fails with
// ErrStoreNotConfigured. It stands in when no store credentials were
// supplied so that dependent services degrade explicitly.
func Unconfigured() ObjectStore {
	return unconfiguredStore{}
}

func (unconfiguredStore) Exists(context.Context, string) (bool, error) {
	return false, ErrStoreNotConfigured
}

func (unconfiguredStore) Put(context.Context, string, string, io.Reader) error {
	return ErrStoreNotConfigured
}

func (unconfiguredStore) Get(context.Context, string) (io.ReadCloser, error) {
	return nil, ErrStoreNotConfigured
}
