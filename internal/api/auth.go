package api

import (
	"errors"
	"net/http"

	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/user"
	"github.com/labstack/echo/v4"
)

type (
	loginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	registerRequest struct {
		Username string `json:"username" validate:"required,min=3,max=64"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	authController struct {
		store user.Store
		auth  *jwtAuthProvider
	}
)

func newAuthController(store user.Store, auth *jwtAuthProvider) *authController {
	return &authController{store: store, auth: auth}
}

func (controller *authController) SetRoutes(group *echo.Group) {
	group.POST("/register", controller.register)
	group.POST("/login", controller.login)
	group.POST("/logout", controller.logout)
	group.GET("/current-user", controller.currentUser, controller.auth.GetJwtVerifierMiddleware())
}

func (controller *authController) register(ec echo.Context) error {
	var request registerRequest
	if err := ec.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed registration payload")
	}
	if err := ec.Validate(&request); err != nil {
		return err
	}

	newUser := &user.User{
		Username: request.Username,
		Email:    request.Email,
		Password: request.Password,
	}
	if err := controller.store.Insert(ec.Request().Context(), newUser); err != nil {
		if errors.Is(err, user.ErrUserExists) {
			return ec.JSON(http.StatusConflict, errorResponse{Error: "username or email already taken"})
		}

		log.Errorf("Failed to register user %s: %v\n", request.Username, err)
		return ec.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to register user"})
	}

	return ec.JSON(http.StatusCreated, newUser)
}

// login checks the supplied credentials against the account store and
// on success sets the JWT cookie pair on the response.
func (controller *authController) login(ec echo.Context) error {
	var request loginRequest
	if err := ec.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed login payload")
	}
	if err := ec.Validate(&request); err != nil {
		return err
	}

	account, err := controller.store.GetByUsername(ec.Request().Context(), request.Username)
	if err != nil || account.Password != request.Password {
		log.Warnf("Failed login attempt for username %s\n", request.Username)
		return ec.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid username or password"})
	}

	if err := controller.auth.GenerateTokensAndSetCookies(ec, account.Username, account.IsAdmin); err != nil {
		log.Errorf("Failed to generate tokens for user %s: %v\n", account.Username, err)
		return ec.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to establish session"})
	}

	return ec.JSON(http.StatusOK, account)
}

func (controller *authController) logout(ec echo.Context) error {
	controller.auth.RevokeTokensInContext(ec)
	return ec.NoContent(http.StatusOK)
}

func (controller *authController) currentUser(ec echo.Context) error {
	claims, err := controller.auth.GetClaimsFromContext(ec)
	if err != nil {
		return errUnauthorized
	}

	account, err := controller.store.GetByUsername(ec.Request().Context(), claims.Username)
	if err != nil {
		return errUnauthorized
	}

	return ec.JSON(http.StatusOK, account)
}
