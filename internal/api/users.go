package api

import (
	"errors"
	"net/http"

	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/user"
	"github.com/labstack/echo/v4"
)

// usersController exposes the admin-only user management surface.
type usersController struct {
	store user.Store
	auth  *jwtAuthProvider
}

func newUsersController(store user.Store, auth *jwtAuthProvider) *usersController {
	return &usersController{store: store, auth: auth}
}

func (controller *usersController) SetRoutes(group *echo.Group) {
	group.Use(controller.auth.GetJwtVerifierMiddleware())
	group.Use(controller.auth.GetAdminVerifierMiddleware())

	group.GET("", controller.listUsers)
	group.DELETE("/:username", controller.deleteUser)
}

func (controller *usersController) listUsers(ec echo.Context) error {
	users, err := controller.store.List(ec.Request().Context())
	if err != nil {
		log.Errorf("Failed to list users: %v\n", err)
		return ec.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list users"})
	}

	return ec.JSON(http.StatusOK, users)
}

func (controller *usersController) deleteUser(ec echo.Context) error {
	username := ec.Param("username")

	if err := controller.store.Delete(ec.Request().Context(), username); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return ec.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		}

		log.Errorf("Failed to delete user %s: %v\n", username, err)
		return ec.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to delete user"})
	}

	return ec.NoContent(http.StatusOK)
}
