package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"lcenhub/internal/model"
	"lcenhub/internal/store"
)

// MarketStockRepository holds marketplace listings with the same owner
// exclusivity as reminders: cross-owner deletes are silent no-ops.
type MarketStockRepository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.MarketStock, error)
	Create(ctx context.Context, stock *model.MarketStock) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type marketStockRepository struct {
	mu     sync.RWMutex
	kv     store.KV
	stocks []model.MarketStock
}

// NewMarketStockRepository loads the listing collection from the mirror.
func NewMarketStockRepository(kv store.KV) (MarketStockRepository, error) {
	stocks, err := store.LoadCollection(kv, store.KeyMarketStocks, store.DefaultMarketStocks)
	if err != nil {
		return nil, err
	}
	return &marketStockRepository{kv: kv, stocks: stocks}, nil
}

func (r *marketStockRepository) persist() error {
	return store.SaveCollection(r.kv, store.KeyMarketStocks, r.stocks)
}

func (r *marketStockRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.MarketStock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.MarketStock
	for _, s := range r.stocks {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateListed.After(out[j].DateListed)
	})
	return out, nil
}

func (r *marketStockRepository) Create(ctx context.Context, stock *model.MarketStock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stocks = append(r.stocks, *stock)
	return r.persist()
}

func (r *marketStockRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.stocks {
		if s.ID == id && s.OwnerID == ownerID {
			r.stocks = append(r.stocks[:i], r.stocks[i+1:]...)
			return r.persist()
		}
	}
	return nil
}
