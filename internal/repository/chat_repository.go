package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	apperrors "lcenhub/internal/errors"
	"lcenhub/internal/model"
	"lcenhub/internal/store"
)

// ChatRepository stores assistant conversations, owner-scoped like reminders.
type ChatRepository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.ChatSession, error)
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.ChatSession, error)
	Upsert(ctx context.Context, session *model.ChatSession) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type chatRepository struct {
	mu       sync.RWMutex
	kv       store.KV
	sessions []model.ChatSession
}

// NewChatRepository loads the chat session collection from the mirror.
func NewChatRepository(kv store.KV) (ChatRepository, error) {
	sessions, err := store.LoadCollection(kv, store.KeyChatSessions, store.DefaultChatSessions)
	if err != nil {
		return nil, err
	}
	return &chatRepository{kv: kv, sessions: sessions}, nil
}

func (r *chatRepository) persist() error {
	return store.SaveCollection(r.kv, store.KeyChatSessions, r.sessions)
}

func (r *chatRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.ChatSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.ChatSession
	for _, s := range r.sessions {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastUpdated.After(out[j].LastUpdated)
	})
	return out, nil
}

func (r *chatRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.ChatSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions {
		if s.ID == id && s.OwnerID == ownerID {
			found := s
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *chatRepository) Upsert(ctx context.Context, session *model.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.sessions {
		if s.ID != session.ID {
			continue
		}
		if s.OwnerID != session.OwnerID {
			// The ID names another owner's conversation; keep IDs unique by
			// storing the caller's copy under a fresh one.
			session.ID = uuid.New()
			break
		}
		r.sessions[i] = *session
		return r.persist()
	}
	// newest sessions go in front
	r.sessions = append([]model.ChatSession{*session}, r.sessions...)
	return r.persist()
}

func (r *chatRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.sessions {
		if s.ID == id && s.OwnerID == ownerID {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			return r.persist()
		}
	}
	return nil
}
