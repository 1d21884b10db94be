package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PromoKind distinguishes shareable campaign codes from single-customer ones.
type PromoKind string

const (
	KindReusable PromoKind = "reusable"
	KindPersonal PromoKind = "personal"
)

// ReservationTTL is how long a reserved discount slot is held while the
// customer completes checkout.
const ReservationTTL = 30 * time.Minute

// UnlimitedUses marks a code with no effective usage cap.
const UnlimitedUses = -1

// PromoCode is a discount definition. UsageCount only ever grows; slots are
// consumed by confirmed reservations.
type PromoCode struct {
	ID                 uuid.UUID  `json:"id"`
	Code               string     `json:"code"`
	DiscountPercent    int        `json:"discountPercent"`
	Kind               PromoKind  `json:"kind"`
	UsageLimit         *int       `json:"usageLimit"`
	UsageCount         int        `json:"usageCount"`
	IsActive           bool       `json:"isActive"`
	ValidFrom          *time.Time `json:"validFrom"`
	ValidUntil         *time.Time `json:"validUntil"`
	EligibleServiceIDs []string   `json:"eligibleServiceIds"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// Limit resolves the effective usage cap: the explicit limit when set,
// otherwise 1 for personal codes, otherwise unlimited.
func (p *PromoCode) Limit() int {
	if p.UsageLimit != nil {
		return *p.UsageLimit
	}
	if p.Kind == KindPersonal {
		return 1
	}
	return UnlimitedUses
}

// IsEligibleService reports whether the discount applies to a service id.
func (p *PromoCode) IsEligibleService(serviceID string) bool {
	for _, id := range p.EligibleServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

type ReservationStatus string

const (
	StatusReserved  ReservationStatus = "reserved"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusExpired   ReservationStatus = "expired"
)

// Reservation is a time-boxed claim on one slot of a promo code's usage cap.
// It references its code; it never owns the code record.
type Reservation struct {
	ID             uuid.UUID         `json:"id"`
	PromoCodeID    uuid.UUID         `json:"promoCodeId"`
	Status         ReservationStatus `json:"status"`
	ReservedAt     time.Time         `json:"reservedAt"`
	ValidUntil     time.Time         `json:"validUntil"`
	OrderReference *string           `json:"orderReference"`
	FinalAmount    *decimal.Decimal  `json:"finalAmount"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// IsLive reports whether the reservation still holds its slot.
func (r *Reservation) IsLive(now time.Time) bool {
	return r.Status == StatusReserved && now.Before(r.ValidUntil)
}

// ReservationWithTerms joins a reservation with the discount terms of its
// code, so checkout can price a cart from a single fetch.
type ReservationWithTerms struct {
	Reservation
	Code               string   `json:"code"`
	DiscountPercent    int      `json:"discountPercent"`
	EligibleServiceIDs []string `json:"eligibleServiceIds"`
}

// NormalizeCode canonicalizes user input so "  save20 " and "SAVE20" resolve
// to the same record.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
