package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"lcenhub/internal/auth"
	"lcenhub/internal/service"
)

// ReminderHandler handles the member's farm task reminders.
type ReminderHandler struct {
	reminderService service.ReminderService
}

// NewReminderHandler creates a new reminder handler.
func NewReminderHandler(reminderService service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// AddReminderRequest represents a new reminder.
type AddReminderRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date" validate:"required"`
}

// SetCompletedRequest toggles a reminder's completion flag.
type SetCompletedRequest struct {
	IsCompleted bool `json:"is_completed"`
}

// List godoc
// @Summary List the current member's reminders, soonest due first
// @Tags reminders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Reminder
// @Failure 401 {object} errors.ErrorResponse
// @Router /reminders [get]
func (h *ReminderHandler) List(c echo.Context) error {
	sess, err := auth.SessionFromContext(c)
	if err != nil {
		return httpError(err)
	}
	reminders, err := h.reminderService.List(c.Request().Context(), sess)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reminders)
}

// Add godoc
// @Summary Create a reminder for the current member
// @Tags reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddReminderRequest true "Reminder data"
// @Success 201 {object} model.Reminder
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /reminders [post]
func (h *ReminderHandler) Add(c echo.Context) error {
	var req AddReminderRequest
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

	reminder, err := h.reminderService.Add(c.Request().Context(), sess, service.AddReminderInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, reminder)
}

// SetCompleted godoc
// @Summary Mark a reminder complete or incomplete
// @Tags reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reminder ID"
// @Param request body SetCompletedRequest true "Completion flag"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Router /reminders/{id}/status [put]
func (h *ReminderHandler) SetCompleted(c echo.Context) error {
	var req SetCompletedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	sess, err := auth.SessionFromContext(c)
	if err != nil {
		return httpError(err)
	}

	if err := h.reminderService.SetCompleted(c.Request().Context(), sess, id, req.IsCompleted); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete godoc
// @Summary Delete a reminder
// @Tags reminders
// @Security BearerAuth
// @Param id path string true "Reminder ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Router /reminders/{id} [delete]
func (h *ReminderHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	sess, err := auth.SessionFromContext(c)
	if err != nil {
		return httpError(err)
	}

	if err := h.reminderService.Delete(c.Request().Context(), sess, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
