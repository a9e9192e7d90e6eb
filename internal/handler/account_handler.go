package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lcenhub/internal/auth"
	"lcenhub/internal/service"
)

// AccountHandler handles self-service profile endpoints and public member
// profile lookups.
type AccountHandler struct {
	accountService service.AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// UpdateProfileRequest represents a self-service profile edit.
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// ChangePasswordRequest represents a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// GetMember godoc
// @Summary Get a member's public profile by username
// @Tags members
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} model.Account
// @Failure 404 {object} errors.ErrorResponse
// @Router /members/{username} [get]
func (h *AccountHandler) GetMember(c echo.Context) error {
	account, err := h.accountService.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, account)
}

// UpdateProfile godoc
// @Summary Update the current account's name and email
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} model.Account
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /profile [put]
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, err := auth.SessionFromContext(c)
	if err != nil {
		return httpError(err)
	}

	account, err := h.accountService.UpdateProfile(c.Request().Context(), sess, req.Name, req.Email)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, account)
}

// ChangePassword godoc
// @Summary Change the current account's password
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Current and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile/password [put]
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, err := auth.SessionFromContext(c)
	if err != nil {
		return httpError(err)
	}

	if err := h.accountService.ChangePassword(c.Request().Context(), sess, req.CurrentPassword, req.NewPassword); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "password changed"})
}

// BackupEmail godoc
// @Summary Get the admin recovery email shown on the password reset page
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]string
// @Router /settings/backup-email [get]
func (h *AccountHandler) BackupEmail(c echo.Context) error {
	email, err := h.accountService.BackupEmail(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"backup_email": email})
}
