package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ValidateRequest carries a user-entered promo code to check.
type ValidateRequest struct {
	Code string `json:"code"`
}

func (r ValidateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code,
			validation.Required.Error("promo code is required"),
			validation.Length(2, 50).Error("promo code must be 2-50 characters"),
		),
	)
}

// ReserveRequest holds a 30-minute slot on the code for this customer.
type ReserveRequest struct {
	Code string `json:"code"`
}

func (r ReserveRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code,
			validation.Required.Error("promo code is required"),
			validation.Length(2, 50).Error("promo code must be 2-50 characters"),
		),
	)
}

type CancelRequest struct {
	ReservationID string `json:"reservationId"`
}

func (r CancelRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ReservationID,
			validation.Required.Error("reservationId is required"),
			is.UUID.Error("reservationId must be a UUID"),
		),
	)
}

// ValidateResponse is the read-only projection of a code's terms the
// storefront uses to preview the discount.
type ValidateResponse struct {
	PromoCodeID        string   `json:"promoCodeId"`
	DiscountPercent    int      `json:"discountPercent"`
	EligibleServiceIDs []string `json:"eligibleServiceIds"`
}

type ReserveResponse struct {
	ReservationID   string    `json:"reservationId"`
	ValidUntil      time.Time `json:"validUntil"`
	DiscountPercent int       `json:"discountPercent"`
}

type CancelResponse struct {
	Success bool `json:"success"`
}
