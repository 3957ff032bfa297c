// Package internal wires the portal's services together: the TrackMan
// provider client, the object store, the ingestion pipeline, video
// delivery, the account store and the REST gateway that fronts them.
package internal

import (
	"context"
	"fmt"

	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/api"
	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/delivery"
	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/ingest"
	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/store"
	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/trackman"
	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/user"
	"github.com/HighCheeseBaseball/trackman-portal-backend/pkg/logger"
)

var log = logger.Get("Core")

// Portal composes the portal's services. Construction validates all
// configuration eagerly; Run only blocks on the HTTP listener.
type Portal struct {
	config  PortalConfig
	gateway *api.RestGateway
}

func New(config PortalConfig) (*Portal, error) {
	ctx := context.Background()

	var objectStore store.ObjectStore
	if config.ObjectStore.IsConfigured() {
		s3Store, err := store.NewS3Store(ctx, config.ObjectStore)
		if err != nil {
			return nil, fmt.Errorf("failed to construct object store: %w", err)
		}

		objectStore = s3Store
	} else {
		// Deliberately not a silent no-op: every store operation will
		// report the missing configuration, and delivery will serve
		// from the local videos directory only.
		log.Warnf("No object store bucket configured; store operations will fail until one is provided\n")
		objectStore = store.Unconfigured()
	}

	provider, err := trackman.New(config.TrackMan)
	if err != nil {
		return nil, fmt.Errorf("failed to construct TrackMan client: %w", err)
	}

	ingestService, err := ingest.New(config.Ingest, provider, objectStore)
	if err != nil {
		return nil, fmt.Errorf("failed to construct ingest service: %w", err)
	}

	fallbackStore, err := store.NewDiskStore(config.VideosDirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to construct video fallback directory: %w", err)
	}

	userStore, err := user.NewSqliteStore(config.UserDatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to construct user store: %w", err)
	}

	gateway := api.NewRestGateway(
		&config.API,
		ingestService,
		delivery.New(objectStore, fallbackStore),
		userStore,
	)

	return &Portal{config: config, gateway: gateway}, nil
}

// Run starts the REST gateway and blocks until the context is
// cancelled or the gateway fails.
func (portal *Portal) Run(ctx context.Context) error {
	return portal.gateway.Run(ctx)
}
