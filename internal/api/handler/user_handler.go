package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homekeeper/account-service/internal/api/metrics"
	"github.com/homekeeper/account-service/internal/core/domain"
	"github.com/homekeeper/account-service/internal/core/ports"
)

// UserHandler handles the account management HTTP surface.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// --- Request types ---

// addUserRequest mirrors the signup payload: "role" carries the requested
// role names, order irrelevant, duplicates collapse, absent means default.
type addUserRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=50"`
	Email    string   `json:"email"    validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6,max=100"`
	Roles    []string `json:"role"`
}

type roleRequest struct {
	Name string `json:"name" validate:"required"`
}

// updateUserRequest is the patch applied to an existing user. The "id"
// field, if supplied, is ignored: the identity of the stored record always
// wins.
type updateUserRequest struct {
	ID       string        `json:"id"`
	Username string        `json:"username" validate:"required,min=3,max=50"`
	Email    string        `json:"email"    validate:"required,email"`
	Roles    []roleRequest `json:"roles"    validate:"dive"`
}

// List returns all users with full records.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/auth/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetInfo returns the record of the authenticated caller.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/auth/users/getUserInfo [get]
func (h *UserHandler) GetInfo(c echo.Context) error {
	username, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetProfile(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      addUserRequest  true  "Signup details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/users/addUser [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req addUserRequest
	if err := c.Bind(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid_input").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid_input").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		RoleNames: req.Roles,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registrationOutcome(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, user)
}

// Update applies a patch to the user identified by the path id. The
// identity field is never changed, even when the payload supplies one.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Updated fields"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	roles := make([]domain.Role, 0, len(req.Roles))
	for _, r := range req.Roles {
		roles = append(roles, domain.Role{Name: r.Name})
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateInput{
		ID:       req.ID,
		Username: req.Username,
		Email:    req.Email,
		Roles:    roles,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes the user identified by the path id.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/auth/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

func registrationOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		return "username_taken"
	case errors.Is(err, domain.ErrEmailTaken):
		return "email_taken"
	case errors.Is(err, domain.ErrRoleNotFound):
		return "role_not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}
