package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type CartItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

func (i CartItem) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.ID, validation.Required.Error("cart item id is required")),
		validation.Field(&i.Quantity,
			validation.Min(1).Error("quantity must be at least 1"),
			validation.Max(100).Error("quantity must be at most 100"),
		),
	)
}

type ClientInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (c ClientInfo) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required.Error("name is required")),
		validation.Field(&c.Phone, validation.Required.Error("phone is required")),
		validation.Field(&c.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("email must be valid"),
		),
	)
}

// PurchaseRequest starts a checkout. Promo is an optional code string. Item
// prices never come from the client; the catalog is the only price source.
type PurchaseRequest struct {
	CartItems  []CartItem `json:"cartItems"`
	ClientInfo ClientInfo `json:"clientInfo"`
	Promo      *string    `json:"promo"`
}

func (r PurchaseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CartItems,
			validation.Required.Error("cart is empty"),
			validation.Length(1, 100).Error("cart must have 1-100 items"),
		),
		validation.Field(&r.ClientInfo),
	)
}

type PurchaseResponse struct {
	URL string `json:"url"`
}
