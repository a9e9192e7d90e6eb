package repository

import (
	"context"
	"encoding/json"
	"sync"

	"lcenhub/internal/store"
)

// SettingsRepository holds the handful of network-wide settings, currently
// just the admin recovery email.
type SettingsRepository interface {
	BackupEmail(ctx context.Context) (string, error)
	SetBackupEmail(ctx context.Context, email string) error
}

type settingsRepository struct {
	mu          sync.RWMutex
	kv          store.KV
	backupEmail string
}

// NewSettingsRepository loads settings from the mirror, falling back to the
// built-in defaults.
func NewSettingsRepository(kv store.KV) (SettingsRepository, error) {
	repo := &settingsRepository{kv: kv, backupEmail: store.DefaultBackupEmail}
	raw, ok, err := kv.Get(store.KeyBackupEmail)
	if err != nil {
		return nil, err
	}
	if ok {
		var email string
		if jsonErr := json.Unmarshal(raw, &email); jsonErr == nil && email != "" {
			repo.backupEmail = email
		}
	}
	return repo, nil
}

func (r *settingsRepository) BackupEmail(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.backupEmail, nil
}

func (r *settingsRepository) SetBackupEmail(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	raw, err := json.Marshal(email)
	if err != nil {
		return err
	}
	if err := r.kv.Put(store.KeyBackupEmail, raw); err != nil {
		return err
	}
	r.backupEmail = email
	return nil
}
