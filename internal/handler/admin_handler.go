package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"lcenhub/internal/auth"
	apperrors "lcenhub/internal/errors"
	"lcenhub/internal/model"
	"lcenhub/internal/service"
)

// AdminHandler handles the member-management console endpoints.
type AdminHandler struct {
	accountService service.AccountService
	programService service.ProgramService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(accountService service.AccountService, programService service.ProgramService) *AdminHandler {
	return &AdminHandler{accountService: accountService, programService: programService}
}

// RegisterMemberRequest represents an admin enrolling a new member.
type RegisterMemberRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AdminUpdateRequest represents an admin editing an account.
type AdminUpdateRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=member admin"`
}

// UpdateBackupEmailRequest represents a change to the recovery address.
type UpdateBackupEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func memberIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperrors.ErrNotFound
	}
	return id, nil
}

// ListAccounts godoc
// @Summary List all accounts, secrets stripped
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Account
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/accounts [get]
func (h *AdminHandler) ListAccounts(c echo.Context) error {
	sess, err := auth.SessionFromContext(c)
	if err != nil {
		return httpError(err)
	}
	accounts, err := h.accountService.List(c.Request().Context(), sess)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, accounts)
}

// RegisterMember godoc
// @Summary Enroll a new member with onboarding defaults
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegisterMemberRequest true "Member data"
// @Success 201 {object} model.Account
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/accounts [post]
func (h *AdminHandler) RegisterMember(c echo.Context) error {
	var req RegisterMemberRequest
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

	account, err := h.accountService.Register(c.Request().Context(), sess, service.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, account)
}

// UpdateAccount godoc
// @Summary Edit an account's name, email, and role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param request body AdminUpdateRequest true "Fields to apply"
// @Success 200 {object} model.Account
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/accounts/{id} [put]
func (h *AdminHandler) UpdateAccount(c echo.Context) error {
	var req AdminUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := memberIDParam(c, "id")
	if err != nil {
		return httpError(err)
	}
	sess, err := auth.SessionFromContext(c)
	if err != nil {
		return httpError(err)
	}

	account, err := h.accountService.AdminUpdate(c.Request().Context(), sess, service.AdminUpdateInput{
		ID:    id,
		Name:  req.Name,
		Email: req.Email,
		Role:  model.Role(req.Role),
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, account)
}

// DeleteAccount godoc
// @Summary Delete an account
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/accounts/{id} [delete]
func (h *AdminHandler) DeleteAccount(c echo.Context) error {
	id, err := memberIDParam(c, "id")
	if err != nil {
		return httpError(err)
	}
	sess, err := auth.SessionFromContext(c)
	if err != nil {
		return httpError(err)
	}

	if err := h.accountService.Delete(c.Request().Context(), sess, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AuditLog godoc
// @Summary List the audit trail, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.AuditEntry
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/audit-log [get]
func (h *AdminHandler) AuditLog(c echo.Context) error {
	sess, err := auth.SessionFromContext(c)
	if err != nil {
		return httpError(err)
	}
	entries, err := h.accountService.AuditLog(c.Request().Context(), sess)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// MemberPackages godoc
// @Summary List a member's availed livelihood packages
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {array} model.OpportunityPackage
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/members/{id}/packages [get]
func (h *AdminHandler) MemberPackages(c echo.Context) error {
	id, err := memberIDParam(c, "id")
	if err != nil {
		return httpError(err)
	}
	sess, err := auth.SessionFromContext(c)
	if err != nil {
		return httpError(err)
	}
	packages, err := h.programService.PackagesFor(c.Request().Context(), sess, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, packages)
}

// MemberTrainings godoc
// @Summary List a member's training sessions
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {array} model.TrainingSession
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/members/{id}/trainings [get]
func (h *AdminHandler) MemberTrainings(c echo.Context) error {
	id, err := memberIDParam(c, "id")
	if err != nil {
		return httpError(err)
	}
	sess, err := auth.SessionFromContext(c)
	if err != nil {
		return httpError(err)
	}
	trainings, err := h.programService.TrainingsFor(c.Request().Context(), sess, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, trainings)
}

// MemberFeedOrders godoc
// @Summary List a member's feed orders
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {array} model.FeedOrder
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/members/{id}/feed-orders [get]
func (h *AdminHandler) MemberFeedOrders(c echo.Context) error {
	id, err := memberIDParam(c, "id")
	if err != nil {
		return httpError(err)
	}
	sess, err := auth.SessionFromContext(c)
	if err != nil {
		return httpError(err)
	}
	orders, err := h.programService.FeedOrdersFor(c.Request().Context(), sess, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateBackupEmail godoc
// @Summary Update the admin recovery email
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateBackupEmailRequest true "New recovery address"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/settings/backup-email [put]
func (h *AdminHandler) UpdateBackupEmail(c echo.Context) error {
	var req UpdateBackupEmailRequest
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
	if err := h.accountService.UpdateBackupEmail(c.Request().Context(), sess, req.Email); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "backup email updated"})
}
