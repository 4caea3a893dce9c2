package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"taskboard/internal/service"
)

// UserHandler handles user lookup endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// EmailCheck godoc
// @Summary Resolve an email address to a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email query string true "Email address"
// @Success 200 {object} view.UserCompact
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /email-check [get]
func (h *UserHandler) EmailCheck(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email query parameter is required")
	}
	if err := validator.New().Var(email, "email"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email format")
	}

	user, err := h.userService.EmailCheck(c.Request().Context(), email)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, user)
}
