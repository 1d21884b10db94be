package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"funpark-backend/internal/domains/promo/model"
)

// AdmitFunc decides whether a new reservation may be created, given the code
// definition and the count of other live reservations. It runs inside the
// reservation transaction while the code row is locked.
type AdmitFunc func(promo *model.PromoCode, activeReservations int) error

// PromoRepository persists promo codes and their reservations.
type PromoRepository interface {
	// FindByCodeWithActiveCount fetches a code together with the number of
	// live reservations against it, in one consistent read.
	FindByCodeWithActiveCount(ctx context.Context, code string) (*model.PromoCode, int, error)

	// ReserveSlot locks the code row, re-counts live reservations, runs
	// admit, and creates the reservation in one transaction, so two
	// concurrent reserves on the same code cannot both pass admission.
	ReserveSlot(ctx context.Context, code string, ttl time.Duration, admit AdmitFunc) (*model.Reservation, error)

	FindReservationByID(ctx context.Context, id uuid.UUID) (*model.ReservationWithTerms, error)
	FindReservationByOrderReference(ctx context.Context, orderRef string) (*model.Reservation, error)

	SetReservationStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus) error

	// LinkOrder records the order reference and priced amount on a
	// reservation so the payment callback can find it later.
	LinkOrder(ctx context.Context, id uuid.UUID, orderRef string, finalAmount decimal.Decimal) error

	// Confirm finalizes a reservation in one transaction: status, order
	// reference, usage counter, and deactivation for personal codes.
	// Confirming an already-confirmed reservation is a no-op.
	Confirm(ctx context.Context, id uuid.UUID, orderRef string) error

	// DeleteExpired removes up to limit stale reservations and returns how
	// many were deleted.
	DeleteExpired(ctx context.Context, limit int) (int, error)
}
