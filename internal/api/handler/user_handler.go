package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/adminhub/identity-system/internal/api/metrics"
	"github.com/adminhub/identity-system/internal/core/domain"
	"github.com/adminhub/identity-system/internal/core/ports"
)

// UserHandler handles admin user management, self-service profiles, reverts,
// and statistics.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type userRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     string `json:"role" validate:"required,oneof=Admin User"`
	IsActive bool   `json:"is_active"`
}

type profileRequest struct {
	Email       string `json:"email" validate:"required,email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address     string `json:"address"`
	DateOfBirth string `json:"date_of_birth"`
}

// List returns all users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   userResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]*userResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get returns one user by id.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Create adds a user on behalf of an administrator.
//
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      userRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	_, actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}

	input := ports.UserInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		IsActive: req.IsActive,
	}
	user, err := h.userService.Create(c.Request().Context(), input, actor)
	if err != nil {
		return err
	}

	metrics.AuditEntriesTotal.WithLabelValues(string(domain.ActionInsert)).Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Update applies admin edits to a user.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Param        id    path  int          true  "User id"
// @Param        body  body  userRequest  true  "User details"
// @Success      204
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	_, actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.UserInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		IsActive: req.IsActive,
	}
	changed, err := h.userService.Update(c.Request().Context(), id, input, actor)
	if err != nil {
		return err
	}

	if changed {
		metrics.AuditEntriesTotal.WithLabelValues(string(domain.ActionUpdate)).Inc()
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a user. The audit trail and version history remain.
//
// @Summary      Delete user
// @Tags         users
// @Param        id   path  int  true  "User id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	_, actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), id, actor); err != nil {
		return err
	}

	metrics.AuditEntriesTotal.WithLabelValues(string(domain.ActionDelete)).Inc()
	return c.NoContent(http.StatusNoContent)
}

// Revert restores a user's fields from a named history snapshot.
//
// @Summary      Revert user to a prior version
// @Tags         users
// @Param        userId     path  int  true  "User id"
// @Param        versionId  path  int  true  "Version id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{userId}/revert/{versionId} [post]
func (h *UserHandler) Revert(c echo.Context) error {
	_, actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	versionID, err := pathID(c, "versionId")
	if err != nil {
		return err
	}

	if err := h.userService.Revert(c.Request().Context(), userID, versionID, actor); err != nil {
		return err
	}

	metrics.RevertsTotal.Inc()
	metrics.AuditEntriesTotal.WithLabelValues(string(domain.ActionRevert)).Inc()
	return c.JSON(http.StatusOK, map[string]string{"status": "reverted"})
}

// GetProfile returns the calling user's own profile.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  profileResponse
// @Router       /users/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(user))
}

// UpdateProfile applies self-service edits to the calling user's record.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Param        body  body  profileRequest  true  "Profile fields"
// @Success      200   {object}  map[string]string
// @Success      204
// @Failure      409   {object}  map[string]string
// @Router       /users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
	}

	input := ports.ProfileInput{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Address:     req.Address,
		DateOfBirth: dob,
	}
	changed, err := h.userService.UpdateProfile(c.Request().Context(), userID, input)
	if err != nil {
		return err
	}
	if !changed {
		return c.NoContent(http.StatusNoContent)
	}

	metrics.AuditEntriesTotal.WithLabelValues(string(domain.ActionUpdate)).Inc()
	return c.JSON(http.StatusOK, map[string]string{"status": "profile updated"})
}

// Statistics returns the active/inactive user counts.
//
// @Summary      User statistics
// @Tags         users
// @Produce      json
// @Success      200  {object}  ports.UserStatistics
// @Router       /users/statistics [get]
func (h *UserHandler) Statistics(c echo.Context) error {
	stats, err := h.userService.Statistics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
