package delivery_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/delivery"
	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errExpected = errors.New("test: expected error")

type failingGetter struct{ err error }

func (g failingGetter) Get(context.Context, string) (io.ReadCloser, error) {
	return nil, g.err
}

func populated(t *testing.T, key string, content string) *store.MemoryStore {
	t.Helper()
	memStore := store.NewMemoryStore()
	require.Nil(t, memStore.Put(context.Background(), key, "video/mp4", strings.NewReader(content)))
	return memStore
}

func readAll(t *testing.T, reader io.ReadCloser) string {
	t.Helper()
	defer reader.Close()
	content, err := io.ReadAll(reader)
	require.Nil(t, err)
	return string(content)
}

// The store is the durable source of truth; when it has the key the
// fallback must not even be consulted.
func Test_Resolve_PrefersObjectStore(t *testing.T) {
	objectStore := populated(t, "x.mp4", "from-store")
	fallback := populated(t, "x.mp4", "from-disk")

	resolver := delivery.New(objectStore, fallback)
	content, err := resolver.Resolve(context.Background(), "x.mp4")
	require.Nil(t, err)

	assert.Equal(t, "from-store", readAll(t, content))
}

func Test_Resolve_FallsBackOnStoreMiss(t *testing.T) {
	objectStore := store.NewMemoryStore()
	fallback := populated(t, "x.mp4", "from-disk")

	resolver := delivery.New(objectStore, fallback)
	content, err := resolver.Resolve(context.Background(), "x.mp4")
	require.Nil(t, err)

	assert.Equal(t, "from-disk", readAll(t, content))
}

func Test_Resolve_FallsBackWhenStoreUnconfigured(t *testing.T) {
	fallback := populated(t, "x.mp4", "from-disk")

	resolver := delivery.New(store.Unconfigured(), fallback)
	content, err := resolver.Resolve(context.Background(), "x.mp4")
	require.Nil(t, err)

	assert.Equal(t, "from-disk", readAll(t, content))
}

func Test_Resolve_MissEverywhereIsVideoNotFound(t *testing.T) {
	resolver := delivery.New(store.NewMemoryStore(), store.NewMemoryStore())

	_, err := resolver.Resolve(context.Background(), "missing.mp4")
	assert.ErrorIs(t, err, delivery.ErrVideoNotFound)
}

func Test_Resolve_NilFallbackIsVideoNotFound(t *testing.T) {
	resolver := delivery.New(store.NewMemoryStore(), nil)

	_, err := resolver.Resolve(context.Background(), "missing.mp4")
	assert.ErrorIs(t, err, delivery.ErrVideoNotFound)
}

// A store transport failure is not a miss: surfacing it beats quietly
// serving possibly stale fallback content.
func Test_Resolve_StoreTransportErrorSurfaces(t *testing.T) {
	fallback := populated(t, "x.mp4", "from-disk")

	resolver := delivery.New(failingGetter{err: errExpected}, fallback)
	_, err := resolver.Resolve(context.Background(), "x.mp4")

	assert.ErrorIs(t, err, errExpected)
	assert.NotErrorIs(t, err, delivery.ErrVideoNotFound)
}

// Traversal-looking filenames fed through a disk-backed fallback must
// come back as a plain not-found.
func Test_Resolve_TraversalFilenameNotFound(t *testing.T) {
	fallback, err := store.NewDiskStore(t.TempDir())
	require.Nil(t, err)

	resolver := delivery.New(store.NewMemoryStore(), fallback)
	_, err = resolver.Resolve(context.Background(), "../../etc/passwd")

	assert.ErrorIs(t, err, delivery.ErrVideoNotFound)
}
