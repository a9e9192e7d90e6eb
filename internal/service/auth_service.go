package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"lcenhub/internal/auth"
	apperrors "lcenhub/internal/errors"
	"lcenhub/internal/model"
	"lcenhub/internal/repository"
)

const bcryptCost = 10

// AuthService handles session establishment and teardown. A failed login is
// indistinguishable to the caller whether the username or the password was
// wrong, and leaves no audit trace.
type AuthService interface {
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, account *model.Account, err error)
	Logout(ctx context.Context, sess *auth.Session, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	ForgotPassword(ctx context.Context, email string) error
}

type authService struct {
	accounts   repository.AccountRepository
	audit      repository.AuditRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	accounts repository.AccountRepository,
	audit repository.AuditRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
) AuthService {
	return &authService{
		accounts:   accounts,
		audit:      audit,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

func appendAudit(ctx context.Context, audit repository.AuditRepository, actor string, action model.AuditAction, details string) error {
	return audit.Append(ctx, model.AuditEntry{
		ID:        uuid.New(),
		Timestamp: time.Now(),
		Actor:     actor,
		Action:    action,
		Details:   details,
	})
}

// Login authenticates by exact username and password, establishes a session
// and records a LOGIN entry. Both unknown-username and wrong-password return
// the same error with no audit entry.
func (s *authService) Login(ctx context.Context, username, password string) (string, string, *model.Account, error) {
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		return "", "", nil, apperrors.ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, apperrors.ErrInvalidCredential
	}

	accessToken, err := s.jwtService.GenerateAccessToken(account)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(account)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	record := auth.RefreshRecord{
		AccountID: account.ID.String(),
		Username:  account.Username,
		Role:      account.Role,
	}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, record, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	if err := appendAudit(ctx, s.audit, account.Username, model.ActionLogin, "User signed in successfully."); err != nil {
		return "", "", nil, fmt.Errorf("append audit entry: %w", err)
	}

	public := account.Public()
	return accessToken, refreshToken, &public, nil
}

// Logout records a LOGOUT entry for the current session and revokes the
// refresh token. An invalid refresh token is ignored; the session entry is
// still written.
func (s *authService) Logout(ctx context.Context, sess *auth.Session, refreshToken string) error {
	if sess == nil {
		return apperrors.ErrNotAuthenticated
	}

	if tokenID, err := s.jwtService.ExtractTokenID(refreshToken); err == nil {
		_ = s.tokenStore.DeleteRefreshToken(ctx, tokenID)
	}

	return appendAudit(ctx, s.audit, sess.Username, model.ActionLogout, "User signed out successfully.")
}

// Refresh validates a refresh token and returns a new access token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidCredential
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidCredential
	}

	record, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", apperrors.ErrInvalidCredential
	}
	if record.AccountID != claims.AccountID || record.Username != claims.Username {
		return "", apperrors.ErrInvalidCredential
	}

	// Re-read the account so a role change or deletion takes effect on the
	// next refresh rather than living for the whole refresh window.
	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return "", apperrors.ErrInvalidCredential
	}
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return "", apperrors.ErrInvalidCredential
	}

	return s.jwtService.GenerateAccessToken(account)
}

// ForgotPassword is a stub: a real deployment would dispatch a reset email.
// It always succeeds so callers cannot probe which emails exist.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	return nil
}
