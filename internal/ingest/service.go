// Package ingest implements the pipeline at the heart of the portal:
// reconcile the provider's session listing against the durable object
// store, fetch and store only the recordings that are missing, and
// assemble the response catalog.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/catalog"
	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/trackman"
	"github.com/HighCheeseBaseball/trackman-portal-backend/pkg/logger"
	"github.com/HighCheeseBaseball/trackman-portal-backend/pkg/worker"
)

var log = logger.Get("Ingest")

type (
	// sessionProvider is the slice of the TrackMan client this
	// service depends on.
	sessionProvider interface {
		ListSessions(ctx context.Context, from time.Time, to time.Time) ([]trackman.Session, error)
		FetchMedia(ctx context.Context, mediaURL string) (io.ReadCloser, error)
	}

	// objectStore is the slice of the store capability this service
	// depends on; reading cached objects back is the delivery
	// service's business, not ours.
	objectStore interface {
		Exists(ctx context.Context, key string) (bool, error)
		Put(ctx context.Context, key string, contentType string, content io.Reader) error
	}

	ingestService struct {
		config   Config
		provider sessionProvider
		store    objectStore
	}
)

// New constructs the ingestion service. The configured date window is
// validated eagerly so a bad deployment fails at startup rather than
// on the first catalog request.
func New(config Config, provider sessionProvider, store objectStore) (*ingestService, error) {
	if provider == nil || store == nil {
		return nil, errors.New("ingest service requires both a session provider and an object store")
	}

	if _, _, err := config.Window(); err != nil {
		return nil, err
	}

	return &ingestService{config: config, provider: provider, store: store}, nil
}

// FetchVideos runs one full ingestion cycle and returns the catalog of
// available videos, optionally filtered to a single player
// (case-insensitive exact match).
//
// The listing call is all-or-nothing: if it fails, the whole request
// fails and no store operation is attempted. Everything after that is
// per-item: a session whose fetch or store fails is logged, counted and
// skipped without disturbing its siblings. Callers therefore may
// receive a catalog that is silently missing entries for failed items.
//
// Catalog ordering always matches the provider's listing order, even
// when ingestion runs on multiple workers.
func (service *ingestService) FetchVideos(ctx context.Context, playerFilter string) ([]catalog.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, service.config.requestTimeout())
	defer cancel()

	from, to, err := service.config.Window()
	if err != nil {
		return nil, err
	}

	sessions, err := service.provider.ListSessions(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session listing: %w", err)
	}

	// Results are buffered positionally so that parallel ingestion
	// cannot reorder the catalog; a nil slot is a skipped session.
	results := make([]*catalog.Entry, len(sessions))
	var skipped atomic.Int32

	pool := worker.NewPool(service.config.parallelism())
	if err := pool.Start(); err != nil {
		return nil, err
	}

	for i, session := range sessions {
		if session.MediaURL == "" {
			continue
		}

		pool.Submit(func() {
			entry, err := service.ingestSession(ctx, session)
			if err != nil {
				skipped.Add(1)
				log.Warnf("Skipping session for %s on %s: %v\n", session.PlayerName, session.Date, err)
				return
			}

			results[i] = entry
		})
	}
	pool.Close()

	entries := make([]catalog.Entry, 0, len(results))
	for _, entry := range results {
		if entry != nil {
			entries = append(entries, *entry)
		}
	}

	if count := skipped.Load(); count > 0 {
		log.Warnf("Ingestion finished with %d of %d sessions skipped; catalog may be missing entries\n", count, len(sessions))
	}

	// Filtering happens uniformly here, regardless of whether an entry
	// came from a cache hit or a fresh upload.
	return catalog.Filter(entries, playerFilter), nil
}

// ingestSession resolves one session fully: existence check, then on a
// miss, a fetch piped straight through to the store. The media stream
// is never buffered in memory.
func (service *ingestService) ingestSession(parentCtx context.Context, session trackman.Session) (*catalog.Entry, error) {
	ctx, cancel := context.WithTimeout(parentCtx, service.config.itemTimeout())
	defer cancel()

	key := catalog.DeriveKey(session.PlayerName, session.Date)
	entry := catalog.NewEntry(session.PlayerName, session.Date)

	exists, err := service.store.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("existence check for %s failed: %w", key, err)
	}

	if exists {
		log.Verbosef("Session recording %s already cached\n", key)
		return &entry, nil
	}

	media, err := service.provider.FetchMedia(ctx, session.MediaURL)
	if err != nil {
		return nil, err
	}
	defer media.Close()

	if err := service.store.Put(ctx, key, "video/mp4", media); err != nil {
		return nil, err
	}

	log.Infof("Cached new session recording %s\n", key)
	return &entry, nil
}
