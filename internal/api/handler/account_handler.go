package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teconect/accounts-api/internal/api/middleware"
	"github.com/teconect/accounts-api/internal/core/ports"
)

// AccountHandler handles the authenticated self-service routes under /me.
type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type updateSelfRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password"`
}

// Self returns the caller's own record. Passing the gate already refreshed
// last_activity, so the returned heartbeat is current.
//
// @Summary      Who am I
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Router       /me [get]
func (h *AccountHandler) Self(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// UpdateSelf applies a partial update to the caller's own record.
//
// @Summary      Update own account
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateSelfRequest  true  "Fields to update; omitted fields are untouched"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /me [put]
func (h *AccountHandler) UpdateSelf(c echo.Context) error {
	var req updateSelfRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	updated, err := h.accounts.SelfUpdate(c.Request().Context(), middleware.CurrentUser(c), ports.UserUpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteSelf removes the caller's own account immediately.
//
// @Summary      Delete own account
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Router       /me [delete]
func (h *AccountHandler) DeleteSelf(c echo.Context) error {
	if err := h.accounts.SelfDelete(c.Request().Context(), middleware.CurrentUser(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted successfully"})
}
