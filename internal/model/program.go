package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpportunityPackage is a livelihood package a member has availed of.
// Packages are seeded reference data; the admin console reads them per member.
type OpportunityPackage struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"userId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	DateAvailed time.Time       `json:"dateAvailed"`
	Status      string          `json:"status"` // Active or Completed
	Cost        decimal.Decimal `json:"cost"`
}

// TrainingSession is a scheduled or completed training for one member.
type TrainingSession struct {
	ID      uuid.UUID `json:"id"`
	OwnerID uuid.UUID `json:"userId"`
	Topic   string    `json:"topic"`
	Date    time.Time `json:"date"`
	Status  string    `json:"status"` // Scheduled or Completed
}

// FeedOrder is a feed delivery scheduled for one member.
type FeedOrder struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"userId"`
	Product      string    `json:"product"`
	Quantity     string    `json:"quantity"` // e.g. "5 bags"
	DeliveryDate time.Time `json:"deliveryDate"`
	Status       string    `json:"status"` // Scheduled or Delivered
}
