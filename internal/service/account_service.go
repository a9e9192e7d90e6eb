package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"lcenhub/internal/auth"
	"lcenhub/internal/cache"
	apperrors "lcenhub/internal/errors"
	"lcenhub/internal/model"
	"lcenhub/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// RegisterInput is the data an admin supplies to enroll a new member.
type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

// AdminUpdateInput is an admin edit of another account.
type AdminUpdateInput struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  model.Role
}

// AccountService is the account-management side of the façade. Every method
// that needs a role checks it explicitly and returns Forbidden on mismatch;
// there is no capability object to inspect.
type AccountService interface {
	GetByUsername(ctx context.Context, username string) (*model.Account, error)
	UpdateProfile(ctx context.Context, sess *auth.Session, name, email string) (*model.Account, error)
	ChangePassword(ctx context.Context, sess *auth.Session, current, next string) error
	Register(ctx context.Context, sess *auth.Session, input RegisterInput) (*model.Account, error)
	AdminUpdate(ctx context.Context, sess *auth.Session, input AdminUpdateInput) (*model.Account, error)
	Delete(ctx context.Context, sess *auth.Session, id uuid.UUID) error
	List(ctx context.Context, sess *auth.Session) ([]model.Account, error)
	AuditLog(ctx context.Context, sess *auth.Session) ([]model.AuditEntry, error)
	BackupEmail(ctx context.Context) (string, error)
	UpdateBackupEmail(ctx context.Context, sess *auth.Session, email string) error
}

type accountService struct {
	// mu serializes account mutations: the uniqueness and last-admin guards
	// span several repository calls, and the repository lock only covers one
	// call at a time.
	mu       sync.Mutex
	accounts repository.AccountRepository
	audit    repository.AuditRepository
	settings repository.SettingsRepository
	cache    *cache.Client
}

// NewAccountService builds an AccountService with its repositories and cache.
func NewAccountService(
	accounts repository.AccountRepository,
	audit repository.AuditRepository,
	settings repository.SettingsRepository,
	cacheClient *cache.Client,
) AccountService {
	return &accountService{
		accounts: accounts,
		audit:    audit,
		settings: settings,
		cache:    cacheClient,
	}
}

func profileCacheKey(username string) string {
	return "member:" + username
}

// GetByUsername returns a public profile; available without a session. Reads
// go through the fail-safe cache.
func (s *accountService) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	if data, _ := s.cache.Get(ctx, profileCacheKey(username)); data != nil {
		var cached model.Account
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	public := account.Public()
	if payload, err := json.Marshal(public); err == nil {
		_ = s.cache.Set(ctx, profileCacheKey(username), payload, profileCacheTTL)
	}
	return &public, nil
}

// UpdateProfile lets the session's account change its own name and email. An
// UPDATE_USER entry is appended only when a field actually changed, and its
// details name every changed field.
func (s *accountService) UpdateProfile(ctx context.Context, sess *auth.Session, name, email string) (*model.Account, error) {
	if sess == nil {
		return nil, apperrors.ErrNotAuthenticated
	}

	account, err := s.accounts.FindByID(ctx, sess.AccountID)
	if err != nil {
		return nil, err
	}

	var changes []string
	if account.Name != name {
		changes = append(changes, fmt.Sprintf("name from %q to %q", account.Name, name))
	}
	if account.Email != email {
		changes = append(changes, fmt.Sprintf("email from %q to %q", account.Email, email))
	}

	account.Name = name
	account.Email = email
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, profileCacheKey(account.Username))

	if len(changes) > 0 {
		details := fmt.Sprintf("Updated their profile: %s.", strings.Join(changes, ", "))
		if err := appendAudit(ctx, s.audit, sess.Username, model.ActionUpdateUser, details); err != nil {
			return nil, err
		}
	}

	public := account.Public()
	return &public, nil
}

// ChangePassword replaces the session account's password after verifying the
// current one.
func (s *accountService) ChangePassword(ctx context.Context, sess *auth.Session, current, next string) error {
	if sess == nil {
		return apperrors.ErrNotAuthenticated
	}

	account, err := s.accounts.FindByID(ctx, sess.AccountID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(current)); err != nil {
		return fmt.Errorf("%w: current password does not match", apperrors.ErrInvalidCredential)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	account.PasswordHash = string(hash)
	if err := s.accounts.Update(ctx, account); err != nil {
		return err
	}

	return appendAudit(ctx, s.audit, sess.Username, model.ActionChangePassword, "User changed their password.")
}

// Register enrolls a new member with onboarding defaults. Admin only;
// username and email uniqueness is case-insensitive.
func (s *accountService) Register(ctx context.Context, sess *auth.Session, input RegisterInput) (*model.Account, error) {
	if !sess.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	taken, err := s.accounts.UsernameTaken(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: username already exists", apperrors.ErrConflict)
	}
	if _, err := s.accounts.FindByEmail(ctx, input.Email, uuid.Nil); err == nil {
		return nil, fmt.Errorf("%w: email is already in use", apperrors.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	account := &model.Account{
		ID:               uuid.New(),
		Username:         input.Username,
		Name:             input.Name,
		Email:            input.Email,
		PasswordHash:     string(hash),
		Role:             model.RoleMember,
		RegistrationDate: now,
		FarmLocation:     "Not Set",
		MembershipLevel:  model.LevelTrainee,
		Status:           model.StatusPendingOnboarding,
		LastActivityDate: now,
		TrainingStatus:   model.TrainingPendingOrientation,
		Milestones:       model.OnboardingMilestones(now),
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	details := fmt.Sprintf("Registered new member: %s", input.Username)
	if err := appendAudit(ctx, s.audit, sess.Username, model.ActionRegisterUser, details); err != nil {
		return nil, err
	}

	public := account.Public()
	return &public, nil
}

// AdminUpdate applies an admin edit to another account. Demoting the last
// remaining admin is rejected; the audit entry lists only the fields that
// changed, and nothing is logged when nothing changed.
func (s *accountService) AdminUpdate(ctx context.Context, sess *auth.Session, input AdminUpdateInput) (*model.Account, error) {
	if !sess.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.accounts.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if _, err := s.accounts.FindByEmail(ctx, input.Email, input.ID); err == nil {
		return nil, fmt.Errorf("%w: email is already in use by another account", apperrors.ErrConflict)
	}

	if account.Role == model.RoleAdmin && input.Role == model.RoleMember {
		count, err := s.accounts.AdminCount(ctx)
		if err != nil {
			return nil, err
		}
		if count <= 1 {
			return nil, apperrors.ErrLastAdmin
		}
	}

	var changes []string
	if account.Name != input.Name {
		changes = append(changes, fmt.Sprintf("name from %q to %q", account.Name, input.Name))
	}
	if account.Email != input.Email {
		changes = append(changes, fmt.Sprintf("email from %q to %q", account.Email, input.Email))
	}
	if account.Role != input.Role {
		changes = append(changes, fmt.Sprintf("role from %q to %q", account.Role, input.Role))
	}

	account.Name = input.Name
	account.Email = input.Email
	account.Role = input.Role
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, profileCacheKey(account.Username))

	if len(changes) > 0 {
		details := fmt.Sprintf("Updated user %s: %s.", account.Username, strings.Join(changes, ", "))
		if err := appendAudit(ctx, s.audit, sess.Username, model.ActionUpdateUser, details); err != nil {
			return nil, err
		}
	}

	public := account.Public()
	return &public, nil
}

// Delete removes an account. Admins cannot delete themselves, and the last
// remaining admin account cannot be deleted at all.
func (s *accountService) Delete(ctx context.Context, sess *auth.Session, id uuid.UUID) error {
	if !sess.IsAdmin() {
		return apperrors.ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if account.ID == sess.AccountID {
		return apperrors.ErrSelfDeletion
	}

	if account.Role == model.RoleAdmin {
		count, err := s.accounts.AdminCount(ctx)
		if err != nil {
			return err
		}
		if count <= 1 {
			return apperrors.ErrLastAdmin
		}
	}

	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, profileCacheKey(account.Username))

	details := fmt.Sprintf("Deleted user: %s (ID: %s)", account.Username, account.ID)
	return appendAudit(ctx, s.audit, sess.Username, model.ActionDeleteUser, details)
}

// List returns every account with secrets stripped. Admin only.
func (s *accountService) List(ctx context.Context, sess *auth.Session) ([]model.Account, error) {
	if !sess.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Account, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Public())
	}
	return out, nil
}

// AuditLog returns all audit entries newest first. Admin only.
func (s *accountService) AuditLog(ctx context.Context, sess *auth.Session) ([]model.AuditEntry, error) {
	if !sess.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return s.audit.List(ctx)
}

// BackupEmail returns the admin recovery address. It backs the password
// reset flow, so it is readable without a session.
func (s *accountService) BackupEmail(ctx context.Context) (string, error) {
	return s.settings.BackupEmail(ctx)
}

// UpdateBackupEmail changes the admin recovery address. Admin only.
func (s *accountService) UpdateBackupEmail(ctx context.Context, sess *auth.Session, email string) error {
	if !sess.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return s.settings.SetBackupEmail(ctx, email)
}
