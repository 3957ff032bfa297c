package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/catalog"
	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/delivery"
	"github.com/labstack/echo/v4"
)

type (
	// IngestService is the ingestion pipeline as this controller
	// consumes it: one call which reconciles the provider listing
	// against the store and returns the catalog.
	IngestService interface {
		FetchVideos(ctx context.Context, playerFilter string) ([]catalog.Entry, error)
	}

	// VideoResolver resolves a served filename to a byte stream,
	// store first with local fallback.
	VideoResolver interface {
		Resolve(ctx context.Context, filename string) (io.ReadCloser, error)
	}

	videosController struct {
		ingest   IngestService
		resolver VideoResolver
	}
)

func newVideosController(ingest IngestService, resolver VideoResolver) *videosController {
	return &videosController{ingest: ingest, resolver: resolver}
}

func (controller *videosController) SetRoutes(group *echo.Group) {
	group.GET("/api/fetch-videos", controller.fetchVideos)
	group.GET("/videos/:filename", controller.serveVideo)
}

// fetchVideos runs a full ingestion cycle and returns the catalog.
// Per-item ingestion failures are invisible here by design: the
// response is a 200 with whatever catalog was assembled. Only a
// listing failure produces an error response.
func (controller *videosController) fetchVideos(ec echo.Context) error {
	playerFilter := ec.QueryParam("player")

	entries, err := controller.ingest.FetchVideos(ec.Request().Context(), playerFilter)
	if err != nil {
		log.Errorf("Failed to fetch videos: %v\n", err)
		return ec.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to fetch session listing from provider"})
	}

	log.Infof("Returning %d videos for player filter %q\n", len(entries), playerFilter)
	return ec.JSON(http.StatusOK, entries)
}

func (controller *videosController) serveVideo(ec echo.Context) error {
	filename := ec.Param("filename")

	content, err := controller.resolver.Resolve(ec.Request().Context(), filename)
	if err != nil {
		if errors.Is(err, delivery.ErrVideoNotFound) {
			return ec.JSON(http.StatusNotFound, errorResponse{Error: fmt.Sprintf("video %s not found", filename)})
		}

		log.Errorf("Failed to resolve video %s: %v\n", filename, err)
		return ec.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to resolve video"})
	}
	defer content.Close()

	ec.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ec.Stream(http.StatusOK, "video/mp4", content)
}
