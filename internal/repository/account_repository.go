package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	apperrors "lcenhub/internal/errors"
	"lcenhub/internal/model"
	"lcenhub/internal/store"
)

// AccountRepository defines account persistence operations. Accounts include
// their password hash; stripping is the service layer's job.
type AccountRepository interface {
	List(ctx context.Context) ([]model.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	FindByUsername(ctx context.Context, username string) (*model.Account, error)
	// FindByEmail matches case-insensitively, optionally excluding one account.
	FindByEmail(ctx context.Context, email string, exclude uuid.UUID) (*model.Account, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, account *model.Account) error
	Update(ctx context.Context, account *model.Account) error
	Delete(ctx context.Context, id uuid.UUID) error
	AdminCount(ctx context.Context) (int, error)
}

type accountRepository struct {
	mu       sync.RWMutex
	kv       store.KV
	accounts []model.Account
}

// NewAccountRepository loads the account collection from the mirror, seeding
// the default roster when the stored document is absent or malformed.
func NewAccountRepository(kv store.KV) (AccountRepository, error) {
	accounts, err := store.LoadCollection(kv, store.KeyAccounts, store.DefaultAccounts)
	if err != nil {
		return nil, err
	}
	return &accountRepository{kv: kv, accounts: accounts}, nil
}

func (r *accountRepository) persist() error {
	return store.SaveCollection(r.kv, store.KeyAccounts, r.accounts)
}

func (r *accountRepository) List(ctx context.Context) ([]model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Account, len(r.accounts))
	copy(out, r.accounts)
	return out, nil
}

func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.ID == id {
			found := a
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *accountRepository) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.Username == username {
			found := a
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string, exclude uuid.UUID) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.ID != exclude && strings.EqualFold(a.Email, email) {
			found := a
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *accountRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if strings.EqualFold(a.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = append(r.accounts, *account)
	return r.persist()
}

func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.accounts {
		if a.ID == account.ID {
			r.accounts[i] = *account
			return r.persist()
		}
	}
	return apperrors.ErrNotFound
}

func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.accounts {
		if a.ID == id {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return r.persist()
		}
	}
	return apperrors.ErrNotFound
}

func (r *accountRepository) AdminCount(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, a := range r.accounts {
		if a.IsAdmin() {
			count++
		}
	}
	return count, nil
}
