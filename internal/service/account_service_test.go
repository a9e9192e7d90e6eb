package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"lcenhub/internal/auth"
	"lcenhub/internal/cache"
	apperrors "lcenhub/internal/errors"
	"lcenhub/internal/model"
	"lcenhub/internal/repository"
	"lcenhub/internal/store"
)

// accountFixture wires an AccountService over an in-memory mirror seeded with
// the given accounts and an empty audit log.
type accountFixture struct {
	service  AccountService
	accounts repository.AccountRepository
	audit    repository.AuditRepository
	settings repository.SettingsRepository
	kv       *store.MemKV
}

func newAccountFixture(t *testing.T, accounts []model.Account) *accountFixture {
	t.Helper()

	kv := store.NewMemKV()
	raw, err := json.Marshal(accounts)
	require.NoError(t, err)
	require.NoError(t, kv.Put(store.KeyAccounts, raw))
	require.NoError(t, kv.Put(store.KeyAuditLog, []byte("[]")))

	accountRepo, err := repository.NewAccountRepository(kv)
	require.NoError(t, err)
	auditRepo, err := repository.NewAuditRepository(kv)
	require.NoError(t, err)
	settingsRepo, err := repository.NewSettingsRepository(kv)
	require.NoError(t, err)

	return &accountFixture{
		service:  NewAccountService(accountRepo, auditRepo, settingsRepo, (*cache.Client)(nil)),
		accounts: accountRepo,
		audit:    auditRepo,
		settings: settingsRepo,
		kv:       kv,
	}
}

func fixtureAccount(username string, role model.Role) model.Account {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
	return model.Account{
		ID:           uuid.New(),
		Username:     username,
		Name:         "Fixture " + username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
}

func adminSession(a model.Account) *auth.Session {
	return &auth.Session{AccountID: a.ID, Username: a.Username, Role: a.Role}
}

func (f *accountFixture) lastAudit(t *testing.T) model.AuditEntry {
	t.Helper()
	entries, err := f.audit.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	return entries[0]
}

func TestAccountService_Register(t *testing.T) {
	admin := fixtureAccount("admin", model.RoleAdmin)
	member := fixtureAccount("farmer_juan", model.RoleMember)

	t.Run("applies onboarding defaults and records the enrollment", func(t *testing.T) {
		f := newAccountFixture(t, []model.Account{admin, member})

		got, err := f.service.Register(context.Background(), adminSession(admin), RegisterInput{
			Name:     "New Farmer",
			Username: "farmerA",
			Email:    "farmera@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)

		assert.Equal(t, model.RoleMember, got.Role)
		assert.Equal(t, "Not Set", got.FarmLocation)
		assert.Equal(t, model.LevelTrainee, got.MembershipLevel)
		assert.Equal(t, model.StatusPendingOnboarding, got.Status)
		assert.Equal(t, model.TrainingPendingOrientation, got.TrainingStatus)
		assert.Empty(t, got.PasswordHash)
		require.NotEmpty(t, got.Milestones)
		assert.Equal(t, model.MilestoneJoined, got.Milestones[0].Name)
		assert.Equal(t, model.MilestoneComplete, got.Milestones[0].Status)

		entry := f.lastAudit(t)
		assert.Equal(t, "admin", entry.Actor)
		assert.Equal(t, model.ActionRegisterUser, entry.Action)
		assert.Equal(t, "Registered new member: farmerA", entry.Details)

		// The stored record keeps a verifiable hash.
		stored, err := f.accounts.FindByUsername(context.Background(), "farmerA")
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
	})

	t.Run("username conflicts are case-insensitive", func(t *testing.T) {
		f := newAccountFixture(t, []model.Account{admin, member})

		_, err := f.service.Register(context.Background(), adminSession(admin), RegisterInput{
			Name:     "Impostor",
			Username: "FARMER_JUAN",
			Email:    "other@example.com",
			Password: "secret123",
		})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("email conflicts are case-insensitive", func(t *testing.T) {
		f := newAccountFixture(t, []model.Account{admin, member})

		_, err := f.service.Register(context.Background(), adminSession(admin), RegisterInput{
			Name:     "Impostor",
			Username: "someone_else",
			Email:    "Farmer_Juan@Example.com",
			Password: "secret123",
		})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("members cannot enroll accounts", func(t *testing.T) {
		f := newAccountFixture(t, []model.Account{admin, member})

		_, err := f.service.Register(context.Background(), adminSession(member), RegisterInput{
			Name:     "New Farmer",
			Username: "farmerB",
			Email:    "farmerb@example.com",
			Password: "secret123",
		})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestAccountService_AdminUpdate(t *testing.T) {
	admin := fixtureAccount("admin", model.RoleAdmin)
	member := fixtureAccount("farmer_juan", model.RoleMember)

	t.Run("records only the fields that changed", func(t *testing.T) {
		f := newAccountFixture(t, []model.Account{admin, member})

		got, err := f.service.AdminUpdate(context.Background(), adminSession(admin), AdminUpdateInput{
			ID:    member.ID,
			Name:  "Juan Dela Cruz",
			Email: member.Email,
			Role:  member.Role,
		})
		require.NoError(t, err)
		assert.Equal(t, "Juan Dela Cruz", got.Name)

		entry := f.lastAudit(t)
		assert.Equal(t, model.ActionUpdateUser, entry.Action)
		assert.Equal(t, fmt.Sprintf("Updated user farmer_juan: name from %q to %q.", member.Name, "Juan Dela Cruz"), entry.Details)
	})

	t.Run("no-op edit leaves no audit entry", func(t *testing.T) {
		f := newAccountFixture(t, []model.Account{admin, member})

		_, err := f.service.AdminUpdate(context.Background(), adminSession(admin), AdminUpdateInput{
			ID:    member.ID,
			Name:  member.Name,
			Email: member.Email,
			Role:  member.Role,
		})
		require.NoError(t, err)

		entries, err := f.audit.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("cannot demote the last admin", func(t *testing.T) {
		f := newAccountFixture(t, []model.Account{admin, member})

		_, err := f.service.AdminUpdate(context.Background(), adminSession(admin), AdminUpdateInput{
			ID:    admin.ID,
			Name:  admin.Name,
			Email: admin.Email,
			Role:  model.RoleMember,
		})
		assert.ErrorIs(t, err, apperrors.ErrLastAdmin)

		stored, findErr := f.accounts.FindByID(context.Background(), admin.ID)
		require.NoError(t, findErr)
		assert.Equal(t, model.RoleAdmin, stored.Role)
	})

	t.Run("demotion works with a second admin present", func(t *testing.T) {
		second := fixtureAccount("maria_santos", model.RoleAdmin)
		f := newAccountFixture(t, []model.Account{admin, second, member})

		got, err := f.service.AdminUpdate(context.Background(), adminSession(admin), AdminUpdateInput{
			ID:    second.ID,
			Name:  second.Name,
			Email: second.Email,
			Role:  model.RoleMember,
		})
		require.NoError(t, err)
		assert.Equal(t, model.RoleMember, got.Role)
	})

	t.Run("email collision with another account", func(t *testing.T) {
		f := newAccountFixture(t, []model.Account{admin, member})

		_, err := f.service.AdminUpdate(context.Background(), adminSession(admin), AdminUpdateInput{
			ID:    member.ID,
			Name:  member.Name,
			Email: admin.Email,
			Role:  member.Role,
		})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestAccountService_Delete(t *testing.T) {
	admin := fixtureAccount("admin", model.RoleAdmin)
	member := fixtureAccount("farmer_juan", model.RoleMember)

	t.Run("removes the account and records it", func(t *testing.T) {
		f := newAccountFixture(t, []model.Account{admin, member})

		err := f.service.Delete(context.Background(), adminSession(admin), member.ID)
		require.NoError(t, err)

		_, err = f.accounts.FindByID(context.Background(), member.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		entry := f.lastAudit(t)
		assert.Equal(t, model.ActionDeleteUser, entry.Action)
		assert.Equal(t, fmt.Sprintf("Deleted user: farmer_juan (ID: %s)", member.ID), entry.Details)
	})

	t.Run("admins cannot delete themselves", func(t *testing.T) {
		second := fixtureAccount("maria_santos", model.RoleAdmin)
		f := newAccountFixture(t, []model.Account{admin, second, member})

		err := f.service.Delete(context.Background(), adminSession(admin), admin.ID)
		assert.ErrorIs(t, err, apperrors.ErrSelfDeletion)
	})

	t.Run("sole admin deleting themselves reads as self-deletion", func(t *testing.T) {
		f := newAccountFixture(t, []model.Account{admin, member})

		err := f.service.Delete(context.Background(), adminSession(admin), admin.ID)
		assert.ErrorIs(t, err, apperrors.ErrSelfDeletion)

		stored, findErr := f.accounts.FindByID(context.Background(), admin.ID)
		require.NoError(t, findErr)
		assert.Equal(t, model.RoleAdmin, stored.Role)
	})

	t.Run("members cannot delete accounts", func(t *testing.T) {
		f := newAccountFixture(t, []model.Account{admin, member})

		err := f.service.Delete(context.Background(), adminSession(member), admin.ID)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("the last admin cannot be deleted", func(t *testing.T) {
		second := fixtureAccount("maria_santos", model.RoleAdmin)
		f := newAccountFixture(t, []model.Account{admin, second})

		require.NoError(t, f.service.Delete(context.Background(), adminSession(admin), second.ID))

		err := f.service.Delete(context.Background(), adminSession(second), admin.ID)
		assert.ErrorIs(t, err, apperrors.ErrLastAdmin)

		stored, findErr := f.accounts.FindByID(context.Background(), admin.ID)
		require.NoError(t, findErr)
		assert.Equal(t, "admin", stored.Username)
	})
}

// laggyAccountRepo stretches the gap between an invariant read and the write
// that follows it, so overlapping requests actually interleave.
type laggyAccountRepo struct {
	repository.AccountRepository
}

func (r *laggyAccountRepo) AdminCount(ctx context.Context) (int, error) {
	n, err := r.AccountRepository.AdminCount(ctx)
	time.Sleep(20 * time.Millisecond)
	return n, err
}

func (r *laggyAccountRepo) UsernameTaken(ctx context.Context, username string) (bool, error) {
	taken, err := r.AccountRepository.UsernameTaken(ctx, username)
	time.Sleep(20 * time.Millisecond)
	return taken, err
}

func TestAccountService_ConcurrentMutations(t *testing.T) {
	admin := fixtureAccount("admin", model.RoleAdmin)

	t.Run("simultaneous demotions leave one admin standing", func(t *testing.T) {
		second := fixtureAccount("maria_santos", model.RoleAdmin)
		f := newAccountFixture(t, []model.Account{admin, second})
		svc := NewAccountService(&laggyAccountRepo{AccountRepository: f.accounts}, f.audit, f.settings, (*cache.Client)(nil))

		demote := func(actor, target model.Account) error {
			_, err := svc.AdminUpdate(context.Background(), adminSession(actor), AdminUpdateInput{
				ID:    target.ID,
				Name:  target.Name,
				Email: target.Email,
				Role:  model.RoleMember,
			})
			return err
		}

		var wg sync.WaitGroup
		errs := make([]error, 2)
		wg.Add(2)
		go func() { defer wg.Done(); errs[0] = demote(admin, second) }()
		go func() { defer wg.Done(); errs[1] = demote(second, admin) }()
		wg.Wait()

		rejected := 0
		for _, err := range errs {
			if errors.Is(err, apperrors.ErrLastAdmin) {
				rejected++
			} else {
				assert.NoError(t, err)
			}
		}
		assert.Equal(t, 1, rejected)

		count, err := f.accounts.AdminCount(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("simultaneous registrations of one username store a single account", func(t *testing.T) {
		f := newAccountFixture(t, []model.Account{admin})
		svc := NewAccountService(&laggyAccountRepo{AccountRepository: f.accounts}, f.audit, f.settings, (*cache.Client)(nil))

		register := func(email string) error {
			_, err := svc.Register(context.Background(), adminSession(admin), RegisterInput{
				Name:     "New Farmer",
				Username: "farmerA",
				Email:    email,
				Password: "secret123",
			})
			return err
		}

		var wg sync.WaitGroup
		errs := make([]error, 2)
		wg.Add(2)
		go func() { defer wg.Done(); errs[0] = register("one@example.com") }()
		go func() { defer wg.Done(); errs[1] = register("two@example.com") }()
		wg.Wait()

		rejected := 0
		for _, err := range errs {
			if errors.Is(err, apperrors.ErrConflict) {
				rejected++
			} else {
				assert.NoError(t, err)
			}
		}
		assert.Equal(t, 1, rejected)

		accounts, err := f.accounts.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, accounts, 2)
	})
}

func TestAccountService_List(t *testing.T) {
	admin := fixtureAccount("admin", model.RoleAdmin)
	member := fixtureAccount("farmer_juan", model.RoleMember)
	f := newAccountFixture(t, []model.Account{admin, member})

	t.Run("strips password hashes", func(t *testing.T) {
		accounts, err := f.service.List(context.Background(), adminSession(admin))
		require.NoError(t, err)
		require.Len(t, accounts, 2)
		for _, a := range accounts {
			assert.Empty(t, a.PasswordHash)
		}
	})

	t.Run("members are rejected", func(t *testing.T) {
		_, err := f.service.List(context.Background(), adminSession(member))
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("nil session is rejected", func(t *testing.T) {
		_, err := f.service.List(context.Background(), nil)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestAccountService_UpdateProfile(t *testing.T) {
	admin := fixtureAccount("admin", model.RoleAdmin)
	member := fixtureAccount("farmer_juan", model.RoleMember)

	t.Run("records the change with before and after values", func(t *testing.T) {
		f := newAccountFixture(t, []model.Account{admin, member})

		got, err := f.service.UpdateProfile(context.Background(), adminSession(member), "Juan D.", member.Email)
		require.NoError(t, err)
		assert.Equal(t, "Juan D.", got.Name)

		entry := f.lastAudit(t)
		assert.Equal(t, "farmer_juan", entry.Actor)
		assert.Equal(t, model.ActionUpdateUser, entry.Action)
		assert.Equal(t, fmt.Sprintf("Updated their profile: name from %q to %q.", member.Name, "Juan D."), entry.Details)
	})

	t.Run("no changes, no audit entry", func(t *testing.T) {
		f := newAccountFixture(t, []model.Account{admin, member})

		_, err := f.service.UpdateProfile(context.Background(), adminSession(member), member.Name, member.Email)
		require.NoError(t, err)

		entries, err := f.audit.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("nil session is rejected", func(t *testing.T) {
		f := newAccountFixture(t, []model.Account{admin, member})
		_, err := f.service.UpdateProfile(context.Background(), nil, "X", "x@example.com")
		assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
	})
}

func TestAccountService_ChangePassword(t *testing.T) {
	admin := fixtureAccount("admin", model.RoleAdmin)
	member := fixtureAccount("farmer_juan", model.RoleMember)

	t.Run("replaces the hash and records the change", func(t *testing.T) {
		f := newAccountFixture(t, []model.Account{admin, member})

		err := f.service.ChangePassword(context.Background(), adminSession(member), "password123", "newpassword")
		require.NoError(t, err)

		stored, err := f.accounts.FindByID(context.Background(), member.ID)
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpassword")))

		entry := f.lastAudit(t)
		assert.Equal(t, model.ActionChangePassword, entry.Action)
		assert.Equal(t, "User changed their password.", entry.Details)
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := newAccountFixture(t, []model.Account{admin, member})

		err := f.service.ChangePassword(context.Background(), adminSession(member), "wrong", "newpassword")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)

		entries, listErr := f.audit.List(context.Background())
		require.NoError(t, listErr)
		assert.Empty(t, entries)
	})
}

func TestAccountService_GetByUsername(t *testing.T) {
	admin := fixtureAccount("admin", model.RoleAdmin)
	f := newAccountFixture(t, []model.Account{admin})

	got, err := f.service.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)
	assert.Empty(t, got.PasswordHash)

	_, err = f.service.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAccountService_BackupEmail(t *testing.T) {
	admin := fixtureAccount("admin", model.RoleAdmin)
	member := fixtureAccount("farmer_juan", model.RoleMember)
	f := newAccountFixture(t, []model.Account{admin, member})

	t.Run("defaults and reads without a session", func(t *testing.T) {
		email, err := f.service.BackupEmail(context.Background())
		require.NoError(t, err)
		assert.Equal(t, store.DefaultBackupEmail, email)
	})

	t.Run("admin can update, member cannot", func(t *testing.T) {
		err := f.service.UpdateBackupEmail(context.Background(), adminSession(member), "nope@example.com")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)

		require.NoError(t, f.service.UpdateBackupEmail(context.Background(), adminSession(admin), "recovery@lcen.com"))
		email, err := f.service.BackupEmail(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "recovery@lcen.com", email)
	})
}
