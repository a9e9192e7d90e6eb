package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lcenhub/internal/auth"
	apperrors "lcenhub/internal/errors"
	"lcenhub/internal/model"
	"lcenhub/internal/repository"
)

// AddStockInput is the payload for listing stock on the marketplace.
type AddStockInput struct {
	Type     model.MarketStockType
	Quantity int
	Price    decimal.Decimal
}

// MarketService exposes the session-scoped marketplace operations.
type MarketService interface {
	List(ctx context.Context, sess *auth.Session) ([]model.MarketStock, error)
	Add(ctx context.Context, sess *auth.Session, input AddStockInput) (*model.MarketStock, error)
	Delete(ctx context.Context, sess *auth.Session, id uuid.UUID) error
}

type marketService struct {
	stocks repository.MarketStockRepository
}

// NewMarketService builds a MarketService.
func NewMarketService(stocks repository.MarketStockRepository) MarketService {
	return &marketService{stocks: stocks}
}

func (s *marketService) List(ctx context.Context, sess *auth.Session) ([]model.MarketStock, error) {
	if sess == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	return s.stocks.ListByOwner(ctx, sess.AccountID)
}

func (s *marketService) Add(ctx context.Context, sess *auth.Session, input AddStockInput) (*model.MarketStock, error) {
	if sess == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	stock := &model.MarketStock{
		ID:         uuid.New(),
		OwnerID:    sess.AccountID,
		Type:       input.Type,
		Quantity:   input.Quantity,
		Price:      input.Price,
		DateListed: time.Now(),
	}
	if err := s.stocks.Create(ctx, stock); err != nil {
		return nil, err
	}
	return stock, nil
}

func (s *marketService) Delete(ctx context.Context, sess *auth.Session, id uuid.UUID) error {
	if sess == nil {
		return apperrors.ErrNotAuthenticated
	}
	return s.stocks.Delete(ctx, sess.AccountID, id)
}
