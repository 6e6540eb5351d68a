package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/accesshub/rbac-service/internal/api/metrics"
	"github.com/accesshub/rbac-service/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type createUserRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=50"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8,max=128"`
	Roles    []string `json:"roles"`
}

type assignRolesRequest struct {
	Roles []string `json:"roles"`
}

// List returns a page of users. Admin only.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        offset  query     int  false  "Pagination offset"
// @Param        limit   query     int  false  "Page size"
// @Success      200     {array}   userResponse
// @Failure      403     {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	offset, limit := pagination(c, 100)
	users, err := h.userService.List(c.Request().Context(), offset, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Create provisions an account with an explicit role set. Admin only.
// Role names without a definition are skipped silently.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      409   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.CreateByAdmin(c.Request().Context(), ports.CreateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		RoleNames: req.Roles,
	}, actor)
	if err != nil {
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("admin").Inc()

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// AssignRoles replaces a user's role set. Admin only.
//
// @Summary      Replace a user's roles
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "User id"
// @Param        body  body      assignRolesRequest  true  "New role set"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  map[string]string
// @Router       /users/{id}/roles [put]
func (h *UserHandler) AssignRoles(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req assignRolesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.userService.AssignRoles(c.Request().Context(), c.Param("id"), req.Roles, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Me returns the profile of the authenticated caller.
//
// @Summary      Own profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  userResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// pagination reads offset/limit query parameters, clamping limit to max.
func pagination(c echo.Context, max int64) (offset, limit int64) {
	offset, _ = strconv.ParseInt(c.QueryParam("offset"), 10, 64)
	limit, _ = strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > max {
		limit = max
	}
	return offset, limit
}
