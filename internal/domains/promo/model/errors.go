package model

import "net/http"

type ErrorCode string

const (
	// Promo validation rejections
	ErrCodeNotFound               ErrorCode = "NOT_FOUND"
	ErrCodeInactive               ErrorCode = "INACTIVE"
	ErrCodeNotStarted             ErrorCode = "NOT_STARTED"
	ErrCodeExpired                ErrorCode = "EXPIRED"
	ErrCodeLimitReached           ErrorCode = "LIMIT_REACHED"
	ErrCodeTemporarilyUnavailable ErrorCode = "TEMPORARILY_UNAVAILABLE"
	ErrCodeNoEligibleItems        ErrorCode = "NO_ELIGIBLE_ITEMS"

	// Reservation rejections
	ErrCodeReservationNotFound ErrorCode = "RESERVATION_NOT_FOUND"
	ErrCodeReservationInactive ErrorCode = "RESERVATION_INACTIVE"
	ErrCodeReservationExpired  ErrorCode = "RESERVATION_EXPIRED"
)

// AppError is a business-rule rejection. The HTTP boundary branches on it to
// relay the exact reason and code to the storefront; anything else is
// collapsed into a generic 500.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

var (
	ErrPromoNotFound = &AppError{
		Code:       ErrCodeNotFound,
		Message:    "Promo code not found",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrPromoInactive = &AppError{
		Code:       ErrCodeInactive,
		Message:    "Promo code is no longer active",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrPromoNotStarted = &AppError{
		Code:       ErrCodeNotStarted,
		Message:    "Promo code is not valid yet",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrPromoExpired = &AppError{
		Code:       ErrCodeExpired,
		Message:    "Promo code has expired",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrPromoLimitReached = &AppError{
		Code:       ErrCodeLimitReached,
		Message:    "Promo code usage limit reached",
		HTTPStatus: http.StatusBadRequest,
	}

	// All remaining slots are held by other customers' in-flight checkouts.
	ErrPromoTemporarilyUnavailable = &AppError{
		Code:       ErrCodeTemporarilyUnavailable,
		Message:    "Promo code is temporarily unavailable, try again in a few minutes",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrPromoNoEligibleItems = &AppError{
		Code:       ErrCodeNoEligibleItems,
		Message:    "Promo code has no eligible services configured",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrReservationNotFound = &AppError{
		Code:       ErrCodeReservationNotFound,
		Message:    "Reservation not found",
		HTTPStatus: http.StatusNotFound,
	}

	ErrReservationInactive = &AppError{
		Code:       ErrCodeReservationInactive,
		Message:    "Reservation is no longer active",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrReservationExpired = &AppError{
		Code:       ErrCodeReservationExpired,
		Message:    "Reservation has expired",
		HTTPStatus: http.StatusBadRequest,
	}
)
