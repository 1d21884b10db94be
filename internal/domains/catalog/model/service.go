package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a bookable catalog entry (party package, play zone pass).
// Prices here are authoritative: checkout never trusts client-supplied ones.
type Service struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	MenuOrder   int             `json:"menuOrder"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
