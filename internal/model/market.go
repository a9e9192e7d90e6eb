package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MarketStockType is the product category of a marketplace listing.
type MarketStockType string

const (
	StockFertileEggs MarketStockType = "fertile_eggs"
	StockTableEggs   MarketStockType = "table_eggs"
	StockCulledMeat  MarketStockType = "culled_meat"
	StockLiveRIR     MarketStockType = "live_rir"
)

// MarketStock is a marketplace listing owned by exactly one account.
type MarketStock struct {
	ID         uuid.UUID       `json:"id"`
	OwnerID    uuid.UUID       `json:"userId"`
	Type       MarketStockType `json:"type"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	DateListed time.Time       `json:"dateListed"`
}
