package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"lcenhub/internal/model"
	"lcenhub/internal/store"
)

// ReminderRepository scopes every operation to one owner. Mutations on rows
// the owner does not hold are silent no-ops rather than errors, so callers
// learn nothing about other members' rows.
type ReminderRepository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Reminder, error)
	Create(ctx context.Context, reminder *model.Reminder) error
	SetCompleted(ctx context.Context, ownerID, id uuid.UUID, completed bool) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type reminderRepository struct {
	mu        sync.RWMutex
	kv        store.KV
	reminders []model.Reminder
}

// NewReminderRepository loads the reminder collection from the mirror.
func NewReminderRepository(kv store.KV) (ReminderRepository, error) {
	reminders, err := store.LoadCollection(kv, store.KeyReminders, store.DefaultReminders)
	if err != nil {
		return nil, err
	}
	return &reminderRepository{kv: kv, reminders: reminders}, nil
}

func (r *reminderRepository) persist() error {
	return store.SaveCollection(r.kv, store.KeyReminders, r.reminders)
}

func (r *reminderRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Reminder
	for _, rem := range r.reminders {
		if rem.OwnerID == ownerID {
			out = append(out, rem)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out, nil
}

func (r *reminderRepository) Create(ctx context.Context, reminder *model.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reminders = append(r.reminders, *reminder)
	return r.persist()
}

func (r *reminderRepository) SetCompleted(ctx context.Context, ownerID, id uuid.UUID, completed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rem := range r.reminders {
		if rem.ID == id && rem.OwnerID == ownerID {
			if r.reminders[i].IsCompleted == completed {
				return nil
			}
			r.reminders[i].IsCompleted = completed
			return r.persist()
		}
	}
	return nil
}

func (r *reminderRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rem := range r.reminders {
		if rem.ID == id && rem.OwnerID == ownerID {
			r.reminders = append(r.reminders[:i], r.reminders[i+1:]...)
			return r.persist()
		}
	}
	return nil
}
