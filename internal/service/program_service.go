package service

import (
	"context"

	"github.com/google/uuid"

	"lcenhub/internal/auth"
	apperrors "lcenhub/internal/errors"
	"lcenhub/internal/model"
	"lcenhub/internal/repository"
)

// ProgramService serves the per-member livelihood program data shown on the
// admin member-details view. Admin only.
type ProgramService interface {
	PackagesFor(ctx context.Context, sess *auth.Session, memberID uuid.UUID) ([]model.OpportunityPackage, error)
	TrainingsFor(ctx context.Context, sess *auth.Session, memberID uuid.UUID) ([]model.TrainingSession, error)
	FeedOrdersFor(ctx context.Context, sess *auth.Session, memberID uuid.UUID) ([]model.FeedOrder, error)
}

type programService struct {
	programs repository.ProgramRepository
}

// NewProgramService builds a ProgramService.
func NewProgramService(programs repository.ProgramRepository) ProgramService {
	return &programService{programs: programs}
}

func (s *programService) PackagesFor(ctx context.Context, sess *auth.Session, memberID uuid.UUID) ([]model.OpportunityPackage, error) {
	if !sess.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return s.programs.PackagesFor(ctx, memberID)
}

func (s *programService) TrainingsFor(ctx context.Context, sess *auth.Session, memberID uuid.UUID) ([]model.TrainingSession, error) {
	if !sess.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return s.programs.TrainingsFor(ctx, memberID)
}

func (s *programService) FeedOrdersFor(ctx context.Context, sess *auth.Session, memberID uuid.UUID) ([]model.FeedOrder, error) {
	if !sess.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return s.programs.FeedOrdersFor(ctx, memberID)
}
