package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lcenhub/internal/auth"
	apperrors "lcenhub/internal/errors"
	"lcenhub/internal/model"
	"lcenhub/internal/repository"
)

// AddReminderInput is the payload for creating a reminder.
type AddReminderInput struct {
	Title       string
	Description string
	DueDate     time.Time
}

// ReminderService exposes the session-scoped reminder operations. Mutations
// against rows the session does not own are silent no-ops.
type ReminderService interface {
	List(ctx context.Context, sess *auth.Session) ([]model.Reminder, error)
	Add(ctx context.Context, sess *auth.Session, input AddReminderInput) (*model.Reminder, error)
	SetCompleted(ctx context.Context, sess *auth.Session, id uuid.UUID, completed bool) error
	Delete(ctx context.Context, sess *auth.Session, id uuid.UUID) error
}

type reminderService struct {
	reminders repository.ReminderRepository
}

// NewReminderService builds a ReminderService.
func NewReminderService(reminders repository.ReminderRepository) ReminderService {
	return &reminderService{reminders: reminders}
}

func (s *reminderService) List(ctx context.Context, sess *auth.Session) ([]model.Reminder, error) {
	if sess == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	return s.reminders.ListByOwner(ctx, sess.AccountID)
}

func (s *reminderService) Add(ctx context.Context, sess *auth.Session, input AddReminderInput) (*model.Reminder, error) {
	if sess == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	reminder := &model.Reminder{
		ID:          uuid.New(),
		OwnerID:     sess.AccountID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
	}
	if err := s.reminders.Create(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *reminderService) SetCompleted(ctx context.Context, sess *auth.Session, id uuid.UUID, completed bool) error {
	if sess == nil {
		return apperrors.ErrNotAuthenticated
	}
	return s.reminders.SetCompleted(ctx, sess.AccountID, id, completed)
}

func (s *reminderService) Delete(ctx context.Context, sess *auth.Session, id uuid.UUID) error {
	if sess == nil {
		return apperrors.ErrNotAuthenticated
	}
	return s.reminders.Delete(ctx, sess.AccountID, id)
}
