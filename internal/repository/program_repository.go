package repository

import (
	"context"

	"github.com/google/uuid"

	"lcenhub/internal/model"
)

// ProgramRepository serves the read-only livelihood program data the admin
// console shows per member: availed packages, trainings, and feed orders.
// The data is seeded reference material and never mutated at runtime, so it
// is held in memory without a KV mirror.
type ProgramRepository interface {
	PackagesFor(ctx context.Context, ownerID uuid.UUID) ([]model.OpportunityPackage, error)
	TrainingsFor(ctx context.Context, ownerID uuid.UUID) ([]model.TrainingSession, error)
	FeedOrdersFor(ctx context.Context, ownerID uuid.UUID) ([]model.FeedOrder, error)
}

type programRepository struct {
	packages   []model.OpportunityPackage
	trainings  []model.TrainingSession
	feedOrders []model.FeedOrder
}

// NewProgramRepository builds the repository from the given datasets.
func NewProgramRepository(
	packages []model.OpportunityPackage,
	trainings []model.TrainingSession,
	feedOrders []model.FeedOrder,
) ProgramRepository {
	return &programRepository{
		packages:   packages,
		trainings:  trainings,
		feedOrders: feedOrders,
	}
}

func (r *programRepository) PackagesFor(ctx context.Context, ownerID uuid.UUID) ([]model.OpportunityPackage, error) {
	var out []model.OpportunityPackage
	for _, p := range r.packages {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *programRepository) TrainingsFor(ctx context.Context, ownerID uuid.UUID) ([]model.TrainingSession, error) {
	var out []model.TrainingSession
	for _, t := range r.trainings {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *programRepository) FeedOrdersFor(ctx context.Context, ownerID uuid.UUID) ([]model.FeedOrder, error) {
	var out []model.FeedOrder
	for _, o := range r.feedOrders {
		if o.OwnerID == ownerID {
			out = append(out, o)
		}
	}
	return out, nil
}
