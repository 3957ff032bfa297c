package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/user"
	"github.com/HighCheeseBaseball/trackman-portal-backend/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var log = logger.Get("API")

type (
	RestConfig struct {
		HostAddr           string `yaml:"host_address" env:"API_HOST_ADDR" env-default:"0.0.0.0:3001"`
		AuthTokenSecret    string `yaml:"auth_token_secret" env:"AUTH_TOKEN_SECRET"`
		RefreshTokenSecret string `yaml:"refresh_token_secret" env:"REFRESH_TOKEN_SECRET"`
	}

	controller interface {
		SetRoutes(*echo.Group)
	}

	// The RestGateway is a thin wrapper around the Echo router. Its
	// sole responsibility is framing: routes, CORS, payload
	// validation and auth middleware. All behavior lives in the
	// services the controllers delegate to.
	RestGateway struct {
		config           *RestConfig
		ec               *echo.Echo
		videosController controller
		authController   controller
		usersController  controller
	}

	errorResponse struct {
		Error string `json:"error"`
	}

	requestValidator struct {
		validate *validator.Validate
	}
)

func (v *requestValidator) Validate(payload any) error {
	if err := v.validate.Struct(payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}

// NewRestGateway constructs the Echo router and populates it with the
// portal's routes. The video catalog and delivery routes are public,
// matching the frontend's unauthenticated access; user management is
// gated behind JWT auth (admin-only for the destructive routes).
func NewRestGateway(
	config *RestConfig,
	ingestService IngestService,
	videoResolver VideoResolver,
	userStore user.Store,
) *RestGateway {
	ec := echo.New()
	ec.HidePort = true
	ec.HideBanner = true
	ec.Validator = &requestValidator{validate: validator.New()}

	ec.Use(middleware.Recover())
	ec.Use(middleware.CORS())

	auth := newJwtAuth(config.AuthTokenSecret, config.RefreshTokenSecret)
	gateway := &RestGateway{
		config:           config,
		ec:               ec,
		videosController: newVideosController(ingestService, videoResolver),
		authController:   newAuthController(userStore, auth),
		usersController:  newUsersController(userStore, auth),
	}

	gateway.videosController.SetRoutes(ec.Group(""))
	gateway.authController.SetRoutes(ec.Group("/api"))
	gateway.usersController.SetRoutes(ec.Group("/api/users"))

	return gateway
}

// ServeHTTP dispatches a request through the gateway's router without
// a listening socket; primarily for tests.
func (gateway *RestGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gateway.ec.ServeHTTP(w, r)
}

// Run starts the HTTP listener and blocks until the given context is
// cancelled or the listener fails.
func (gateway *RestGateway) Run(parentCtx context.Context) error {
	ctx, ctxCancel := context.WithCancelCause(parentCtx)

	go func() {
		<-ctx.Done()
		gateway.ec.Close()
	}()

	log.Infof("REST gateway listening on %s\n", gateway.config.HostAddr)
	if err := gateway.ec.Start(gateway.config.HostAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		ctxCancel(err)
	}

	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		return cause
	}

	return nil
}
