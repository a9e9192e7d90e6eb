package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lcenhub/internal/cache"
	"lcenhub/internal/model"
)

const refreshTokenKeyPrefix = "refresh_token:"

// RefreshRecord is the session snapshot stored per refresh token.
type RefreshRecord struct {
	AccountID string     `json:"account_id"`
	Username  string     `json:"username"`
	Role      model.Role `json:"role"`
}

// TokenStoreInterface defines the interface for refresh token storage.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID string, record RefreshRecord, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (*RefreshRecord, error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
}

// TokenStore handles storage and retrieval of refresh tokens in Redis.
type TokenStore struct {
	cache *cache.Client
}

var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// StoreRefreshToken stores a refresh token record in Redis with TTL.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID string, record RefreshRecord, ttl time.Duration) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal token record: %w", err)
	}
	return s.cache.Set(ctx, refreshTokenKeyPrefix+tokenID, payload, ttl)
}

// GetRefreshToken retrieves a refresh token record from Redis.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (*RefreshRecord, error) {
	data, err := s.cache.Get(ctx, refreshTokenKeyPrefix+tokenID)
	if err != nil || data == nil {
		return nil, fmt.Errorf("refresh token not found")
	}

	var record RefreshRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("unmarshal token record: %w", err)
	}
	return &record, nil
}

// DeleteRefreshToken removes a refresh token from Redis.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return s.cache.Delete(ctx, refreshTokenKeyPrefix+tokenID)
}
