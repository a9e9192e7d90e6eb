package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lcenhub/internal/assistant"
	"lcenhub/internal/auth"
	apperrors "lcenhub/internal/errors"
	"lcenhub/internal/model"
	"lcenhub/internal/repository"
)

// SaveChatInput upserts a conversation: a nil ID creates a new session.
type SaveChatInput struct {
	ID       *uuid.UUID
	Title    string
	Messages []model.ChatMessage
}

// ChatService manages assistant conversations and the one outbound AI call
// per user turn. Conversations are owner-scoped like reminders.
type ChatService interface {
	List(ctx context.Context, sess *auth.Session) ([]model.ChatSession, error)
	Get(ctx context.Context, sess *auth.Session, id uuid.UUID) (*model.ChatSession, error)
	Save(ctx context.Context, sess *auth.Session, input SaveChatInput) (*model.ChatSession, error)
	Delete(ctx context.Context, sess *auth.Session, id uuid.UUID) error
	Ask(ctx context.Context, sess *auth.Session, prompt string) (*assistant.Reply, error)
}

type chatService struct {
	sessions  repository.ChatRepository
	assistant assistant.Client
}

// NewChatService builds a ChatService over the chat repository and the
// assistant client.
func NewChatService(sessions repository.ChatRepository, client assistant.Client) ChatService {
	return &chatService{sessions: sessions, assistant: client}
}

func (s *chatService) List(ctx context.Context, sess *auth.Session) ([]model.ChatSession, error) {
	if sess == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	return s.sessions.ListByOwner(ctx, sess.AccountID)
}

func (s *chatService) Get(ctx context.Context, sess *auth.Session, id uuid.UUID) (*model.ChatSession, error) {
	if sess == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	return s.sessions.FindByID(ctx, sess.AccountID, id)
}

func (s *chatService) Save(ctx context.Context, sess *auth.Session, input SaveChatInput) (*model.ChatSession, error) {
	if sess == nil {
		return nil, apperrors.ErrNotAuthenticated
	}

	session := &model.ChatSession{
		OwnerID:     sess.AccountID,
		Title:       input.Title,
		Messages:    input.Messages,
		LastUpdated: time.Now(),
	}
	if input.ID != nil {
		session.ID = *input.ID
	} else {
		session.ID = uuid.New()
	}

	if err := s.sessions.Upsert(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *chatService) Delete(ctx context.Context, sess *auth.Session, id uuid.UUID) error {
	if sess == nil {
		return apperrors.ErrNotAuthenticated
	}
	return s.sessions.Delete(ctx, sess.AccountID, id)
}

// Ask forwards one prompt to the assistant. The reply is returned to the
// caller as-is; storing it in a session is a separate Save.
func (s *chatService) Ask(ctx context.Context, sess *auth.Session, prompt string) (*assistant.Reply, error) {
	if sess == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	return s.assistant.Ask(ctx, prompt)
}
