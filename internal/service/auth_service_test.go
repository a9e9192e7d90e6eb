package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"lcenhub/internal/auth"
	apperrors "lcenhub/internal/errors"
	"lcenhub/internal/model"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) List(ctx context.Context) ([]model.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string, exclude uuid.UUID) (*model.Account, error) {
	args := m.Called(ctx, email, exclude)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccountRepository) AdminCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Append(ctx context.Context, entry model.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) List(ctx context.Context) ([]model.AuditEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditEntry), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, record auth.RefreshRecord, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, record, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (*auth.RefreshRecord, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.RefreshRecord), args.Error(1)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func testAccount(username, password string, role model.Role) *model.Account {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return &model.Account{
		ID:           uuid.New(),
		Username:     username,
		Name:         "Test User",
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
}

func TestAuthService_Login(t *testing.T) {
	account := testAccount("farmer_juan", "password123", model.RoleMember)

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockAccountRepository, *MockAuditRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login records LOGIN entry",
			username: "farmer_juan",
			password: "password123",
			setupMock: func(mRepo *MockAccountRepository, mAudit *MockAuditRepository, mToken *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "farmer_juan").Return(account, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, auth.RefreshRecord{
					AccountID: account.ID.String(),
					Username:  "farmer_juan",
					Role:      model.RoleMember,
				}, auth.RefreshTokenExpiry).Return(nil)
				mAudit.On("Append", mock.Anything, mock.MatchedBy(func(e model.AuditEntry) bool {
					return e.Actor == "farmer_juan" &&
						e.Action == model.ActionLogin &&
						e.Details == "User signed in successfully."
				})).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown username",
			username: "nobody",
			password: "password123",
			setupMock: func(mRepo *MockAccountRepository, mAudit *MockAuditRepository, mToken *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "nobody").Return(nil, apperrors.ErrNotFound)
			},
			expectedError: apperrors.ErrInvalidCredential,
		},
		{
			name:     "wrong password leaves no audit trace",
			username: "farmer_juan",
			password: "wrong",
			setupMock: func(mRepo *MockAccountRepository, mAudit *MockAuditRepository, mToken *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "farmer_juan").Return(account, nil)
			},
			expectedError: apperrors.ErrInvalidCredential,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAccountRepository)
			mockAudit := new(MockAuditRepository)
			mockTokens := new(MockTokenStore)
			tt.setupMock(mockRepo, mockAudit, mockTokens)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, mockAudit, jwtService, mockTokens)

			accessToken, refreshToken, got, err := service.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, got)
				mockAudit.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.Equal(t, tt.username, got.Username)
				assert.Empty(t, got.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
			mockAudit.AssertExpectations(t)
			mockTokens.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	account := testAccount("maria_santos", "password123", model.RoleMember)
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(account)
	assert.NoError(t, err)

	t.Run("without a session", func(t *testing.T) {
		service := NewAuthService(new(MockAccountRepository), new(MockAuditRepository), jwtService, new(MockTokenStore))
		err := service.Logout(context.Background(), nil, refreshToken)
		assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
	})

	t.Run("revokes token and records LOGOUT entry", func(t *testing.T) {
		mockAudit := new(MockAuditRepository)
		mockTokens := new(MockTokenStore)
		mockTokens.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)
		mockAudit.On("Append", mock.Anything, mock.MatchedBy(func(e model.AuditEntry) bool {
			return e.Actor == "maria_santos" && e.Action == model.ActionLogout
		})).Return(nil)

		service := NewAuthService(new(MockAccountRepository), mockAudit, jwtService, mockTokens)
		sess := &auth.Session{AccountID: account.ID, Username: account.Username, Role: account.Role}
		err := service.Logout(context.Background(), sess, refreshToken)
		assert.NoError(t, err)

		mockAudit.AssertExpectations(t)
		mockTokens.AssertExpectations(t)
	})

	t.Run("garbage refresh token still logs out", func(t *testing.T) {
		mockAudit := new(MockAuditRepository)
		mockAudit.On("Append", mock.Anything, mock.Anything).Return(nil)

		service := NewAuthService(new(MockAccountRepository), mockAudit, jwtService, new(MockTokenStore))
		sess := &auth.Session{AccountID: account.ID, Username: account.Username, Role: account.Role}
		err := service.Logout(context.Background(), sess, "not-a-jwt")
		assert.NoError(t, err)

		mockAudit.AssertExpectations(t)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	account := testAccount("pedro_penduko", "password123", model.RoleMember)
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(account)
	assert.NoError(t, err)

	record := &auth.RefreshRecord{
		AccountID: account.ID.String(),
		Username:  account.Username,
		Role:      account.Role,
	}

	t.Run("issues a fresh access token", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		mockTokens := new(MockTokenStore)
		mockTokens.On("GetRefreshToken", mock.Anything, tokenID).Return(record, nil)
		mockRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)

		service := NewAuthService(mockRepo, new(MockAuditRepository), jwtService, mockTokens)
		accessToken, err := service.Refresh(context.Background(), refreshToken)
		assert.NoError(t, err)

		claims, err := jwtService.ValidateToken(accessToken)
		assert.NoError(t, err)
		assert.Equal(t, account.Username, claims.Username)
	})

	t.Run("revoked token is rejected", func(t *testing.T) {
		mockTokens := new(MockTokenStore)
		mockTokens.On("GetRefreshToken", mock.Anything, tokenID).Return(nil, assert.AnError)

		service := NewAuthService(new(MockAccountRepository), new(MockAuditRepository), jwtService, mockTokens)
		_, err := service.Refresh(context.Background(), refreshToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
	})

	t.Run("deleted account is rejected", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		mockTokens := new(MockTokenStore)
		mockTokens.On("GetRefreshToken", mock.Anything, tokenID).Return(record, nil)
		mockRepo.On("FindByID", mock.Anything, account.ID).Return(nil, apperrors.ErrNotFound)

		service := NewAuthService(mockRepo, new(MockAuditRepository), jwtService, mockTokens)
		_, err := service.Refresh(context.Background(), refreshToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		service := NewAuthService(new(MockAccountRepository), new(MockAuditRepository), jwtService, new(MockTokenStore))
		_, err := service.Refresh(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredential)
	})
}
