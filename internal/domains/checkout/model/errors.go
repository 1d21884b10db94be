package model

import (
	"fmt"
	"net/http"
)

// AppError is a user-facing checkout rejection.
type AppError struct {
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

var (
	ErrEmptyCart = &AppError{
		Message:    "Cart is empty",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrMissingProductIDs = &AppError{
		Message:    "Invalid cart data: missing product IDs",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrPaymentURLMissing = &AppError{
		Message:    "Failed to generate payment URL",
		HTTPStatus: http.StatusBadGateway,
	}
)

func ErrProductNotFound(id string) *AppError {
	return &AppError{
		Message:    fmt.Sprintf("Product not found: %s", id),
		HTTPStatus: http.StatusBadRequest,
	}
}
