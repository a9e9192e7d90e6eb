package repository

import (
	"context"
	"sort"
	"sync"

	"lcenhub/internal/model"
	"lcenhub/internal/store"
)

// AuditRepository is append-only: entries are never mutated or deleted.
type AuditRepository interface {
	Append(ctx context.Context, entry model.AuditEntry) error
	// List returns all entries, newest first.
	List(ctx context.Context) ([]model.AuditEntry, error)
}

type auditRepository struct {
	mu      sync.RWMutex
	kv      store.KV
	entries []model.AuditEntry
}

// NewAuditRepository loads the audit trail from the mirror.
func NewAuditRepository(kv store.KV) (AuditRepository, error) {
	entries, err := store.LoadCollection(kv, store.KeyAuditLog, store.DefaultAuditLog)
	if err != nil {
		return nil, err
	}
	return &auditRepository{kv: kv, entries: entries}, nil
}

func (r *auditRepository) Append(ctx context.Context, entry model.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// newest first, matching read order
	r.entries = append([]model.AuditEntry{entry}, r.entries...)
	return store.SaveCollection(r.kv, store.KeyAuditLog, r.entries)
}

func (r *auditRepository) List(ctx context.Context) ([]model.AuditEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.AuditEntry, len(r.entries))
	copy(out, r.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}
