package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teconect/accounts-api/internal/api/middleware"
	"github.com/teconect/accounts-api/internal/core/ports"
)

// AdminHandler handles the privileged user-management routes under /admin.
// The RBAC middleware guards the whole group; the service layer re-checks
// the caller's role anyway, so a misrouted registration cannot widen access.
type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

type adminUpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// ListUsers returns every user record.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.ListUsers(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// CountUsers returns the total number of accounts.
//
// @Summary      Total user count
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int64
// @Router       /admin/users/total [get]
func (h *AdminHandler) CountUsers(c echo.Context) error {
	total, err := h.admin.CountUsers(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int64{"total_users": total})
}

// CountOnline returns the number of active users seen within the window.
// The optional window_minutes query overrides the 5-minute default.
//
// @Summary      Online user count
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        window_minutes  query     int  false  "Window in minutes (default 5)"
// @Success      200             {object}  map[string]int64
// @Router       /admin/users/online [get]
func (h *AdminHandler) CountOnline(c echo.Context) error {
	var window time.Duration
	if raw := c.QueryParam("window_minutes"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "window_minutes must be a positive integer"})
		}
		window = time.Duration(minutes) * time.Minute
	}

	online, err := h.admin.CountOnline(c.Request().Context(), middleware.CurrentUser(c), window)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int64{"online_users": online})
}

// Suspend blocks the target account from logging in or resolving tokens.
//
// @Summary      Suspend a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id}/suspend [put]
func (h *AdminHandler) Suspend(c echo.Context) error {
	user, err := h.admin.Suspend(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user " + user.Username + " suspended successfully"})
}

// Activate lifts a suspension.
//
// @Summary      Activate a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id}/activate [put]
func (h *AdminHandler) Activate(c echo.Context) error {
	user, err := h.admin.Activate(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user " + user.Username + " activated successfully"})
}

// Delete removes the target account immediately.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	user, err := h.admin.Delete(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user " + user.Username + " deleted successfully"})
}

// Update edits the target account's name and/or email. No password changes
// through this path.
//
// @Summary      Edit a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "User id"
// @Param        body  body      adminUpdateRequest  true  "Fields to update; omitted fields are untouched"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /admin/users/{id}/edit [put]
func (h *AdminHandler) Update(c echo.Context) error {
	var req adminUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.admin.Update(c.Request().Context(), middleware.CurrentUser(c), c.Param("id"), ports.AdminUpdateInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user " + user.Username + " updated successfully"})
}
