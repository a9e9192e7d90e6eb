package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"lcenhub/internal/auth"
	"lcenhub/internal/model"
	"lcenhub/internal/service"
)

// ChatHandler handles assistant conversations and the ask endpoint.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SaveChatRequest upserts a conversation; omit id to create a new one.
type SaveChatRequest struct {
	ID       *uuid.UUID          `json:"id"`
	Title    string              `json:"title" validate:"required"`
	Messages []model.ChatMessage `json:"messages" validate:"required"`
}

// AskRequest represents one user turn sent to the assistant.
type AskRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// List godoc
// @Summary List the current member's chat sessions, most recent first
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ChatSession
// @Failure 401 {object} errors.ErrorResponse
// @Router /chat/sessions [get]
func (h *ChatHandler) List(c echo.Context) error {
	sess, err := auth.SessionFromContext(c)
	if err != nil {
		return httpError(err)
	}
	sessions, err := h.chatService.List(c.Request().Context(), sess)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sessions)
}

// Get godoc
// @Summary Get one chat session
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} model.ChatSession
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /chat/sessions/{id} [get]
func (h *ChatHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	sess, err := auth.SessionFromContext(c)
	if err != nil {
		return httpError(err)
	}

	session, err := h.chatService.Get(c.Request().Context(), sess, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, session)
}

// Save godoc
// @Summary Create or update a chat session
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SaveChatRequest true "Session data"
// @Success 200 {object} model.ChatSession
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /chat/sessions [put]
func (h *ChatHandler) Save(c echo.Context) error {
	var req SaveChatRequest
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

	session, err := h.chatService.Save(c.Request().Context(), sess, service.SaveChatInput{
		ID:       req.ID,
		Title:    req.Title,
		Messages: req.Messages,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, session)
}

// Delete godoc
// @Summary Delete a chat session
// @Tags chat
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Router /chat/sessions/{id} [delete]
func (h *ChatHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	sess, err := auth.SessionFromContext(c)
	if err != nil {
		return httpError(err)
	}

	if err := h.chatService.Delete(c.Request().Context(), sess, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Ask godoc
// @Summary Send one prompt to the poultry farming assistant
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AskRequest true "User prompt"
// @Success 200 {object} assistant.Reply
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /chat/ask [post]
func (h *ChatHandler) Ask(c echo.Context) error {
	var req AskRequest
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

	reply, err := h.chatService.Ask(c.Request().Context(), sess, req.Prompt)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reply)
}
