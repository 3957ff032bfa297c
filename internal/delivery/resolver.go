// Package delivery resolves a requested video filename to a byte
// stream. The durable object store is the source of truth; a local
// videos directory acts as a legacy/bootstrap fallback for recordings
// that predate the store.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/store"
	"github.com/HighCheeseBaseball/trackman-portal-backend/pkg/logger"
)

// ErrVideoNotFound is returned when neither the object store nor the
// fallback directory holds the requested filename.
var ErrVideoNotFound = errors.New("video not found in store or fallback directory")

var log = logger.Get("Delivery")

type (
	objectGetter interface {
		Get(ctx context.Context, key string) (io.ReadCloser, error)
	}

	// Resolver looks a filename up in the object store first, and only
	// consults the fallback when the store reports the object missing
	// (or no store is configured at all).
	Resolver struct {
		store    objectGetter
		fallback objectGetter
	}
)

func New(objectStore objectGetter, fallback objectGetter) *Resolver {
	return &Resolver{store: objectStore, fallback: fallback}
}

// Resolve returns a streamed reader for the named video. Store
// transport failures surface as-is: the fallback only covers the
// store genuinely not holding (or not being configured for) the key,
// never the store being unreachable.
func (resolver *Resolver) Resolve(ctx context.Context, filename string) (io.ReadCloser, error) {
	content, err := resolver.store.Get(ctx, filename)
	if err == nil {
		return content, nil
	}

	if !errors.Is(err, store.ErrObjectNotFound) && !errors.Is(err, store.ErrStoreNotConfigured) {
		return nil, fmt.Errorf("failed to resolve %s against object store: %w", filename, err)
	}

	if resolver.fallback == nil {
		return nil, fmt.Errorf("%s: %w", filename, ErrVideoNotFound)
	}

	content, err = resolver.fallback.Get(ctx, filename)
	if err != nil {
		if errors.Is(err, store.ErrObjectNotFound) {
			return nil, fmt.Errorf("%s: %w", filename, ErrVideoNotFound)
		}

		return nil, fmt.Errorf("failed to resolve %s against fallback directory: %w", filename, err)
	}

	log.Verbosef("Served %s from fallback directory\n", filename)
	return content, nil
}
