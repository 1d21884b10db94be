package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"funpark-backend/internal/domains/promo/model"
)

// PromoService is the promo-code reservation subsystem: eligibility checks,
// slot reservation, and the confirm/cancel/expire lifecycle.
type PromoService interface {
	// Validate checks whether a code is currently redeemable and returns its
	// discount terms.
	Validate(ctx context.Context, code string) (*model.ValidateResponse, error)

	// Reserve re-validates the code and holds one usage slot for
	// ReservationTTL while the customer completes checkout.
	Reserve(ctx context.Context, code string) (*model.ReserveResponse, error)

	// Confirm finalizes a reservation after a successful payment. Idempotent.
	Confirm(ctx context.Context, reservationID uuid.UUID, orderRef string) error

	// Cancel releases a reservation's slot. Safe to call in any state.
	Cancel(ctx context.Context, reservationID uuid.UUID) error

	GetReservation(ctx context.Context, reservationID uuid.UUID) (*model.ReservationWithTerms, error)

	// GetReservationByOrderReference is the callback reconciler's lookup:
	// it maps a gateway order reference back to the reservation it settles.
	GetReservationByOrderReference(ctx context.Context, orderRef string) (*model.Reservation, error)

	LinkOrder(ctx context.Context, reservationID uuid.UUID, orderRef string, finalAmount decimal.Decimal) error

	// CleanupExpired deletes a bounded batch of stale reservations and
	// returns how many were removed. It never returns an error: it runs
	// opportunistically after responses are already prepared.
	CleanupExpired(ctx context.Context) int
}
