package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogrepo "funpark-backend/internal/domains/catalog/repository"
	"funpark-backend/internal/domains/checkout/model"
	"funpark-backend/internal/domains/payment/gateway/wayforpay"
	promomodel "funpark-backend/internal/domains/promo/model"
	promoservice "funpark-backend/internal/domains/promo/service"
	"funpark-backend/internal/shared/utils"
	"funpark-backend/pkg/logger"
)

// PaymentGateway is the outbound side of checkout: exchange a signed order
// for a hosted-checkout URL.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, order *wayforpay.PaymentOrder) (string, error)
}

// CheckoutService prices a cart, applies a reserved discount, and forwards
// the signed order to the payment gateway.
type CheckoutService interface {
	CreateOrder(ctx context.Context, req *model.PurchaseRequest) (*model.PurchaseResponse, error)
}

type checkoutService struct {
	catalog catalogrepo.CatalogRepository
	promo   promoservice.PromoService
	gateway PaymentGateway
	now     func() time.Time
}

func NewCheckoutService(catalog catalogrepo.CatalogRepository, promo promoservice.PromoService, gateway PaymentGateway) CheckoutService {
	return &checkoutService{
		catalog: catalog,
		promo:   promo,
		gateway: gateway,
		now:     time.Now,
	}
}

func (s *checkoutService) CreateOrder(ctx context.Context, req *model.PurchaseRequest) (*model.PurchaseResponse, error) {
	if len(req.CartItems) == 0 {
		return nil, model.ErrEmptyCart
	}

	ids := make([]string, 0, len(req.CartItems))
	for _, item := range req.CartItems {
		if item.ID != "" {
			ids = append(ids, item.ID)
		}
	}
	if len(ids) == 0 {
		return nil, model.ErrMissingProductIDs
	}

	// A promo failure aborts the order outright. Falling back to full price
	// here would silently charge more than the customer expects.
	reservation, err := s.reservePromo(ctx, req.Promo)
	if err != nil {
		return nil, err
	}

	services, err := s.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// The discount applies only when it can actually reach the cart. A valid
	// code for services not in this cart is ignored, not an error.
	discountApplies := reservation != nil && intersects(reservation.EligibleServiceIDs, ids)

	now := s.now()
	var products []wayforpay.Product
	total := decimal.Zero

	for _, item := range req.CartItems {
		svc, ok := services[item.ID]
		if !ok {
			return nil, model.ErrProductNotFound(item.ID)
		}

		price := svc.Price
		if discountApplies && reservation.DiscountPercent > 0 &&
			containsID(reservation.EligibleServiceIDs, item.ID) {
			// Per-item discount: ineligible items in the same order stay at
			// full price.
			multiplier := decimal.NewFromInt(int64(100 - reservation.DiscountPercent)).
				Div(decimal.NewFromInt(100))
			price = svc.Price.Mul(multiplier)
		}
		price = price.Round(2)

		products = append(products, wayforpay.Product{
			Name:  svc.Title,
			Count: item.Quantity,
			Price: price,
		})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	total = total.Round(2)

	// Couple the gateway's order expiry to the reservation when a discount
	// is in play: the customer must not be able to pay after the discount
	// guarantee has lapsed.
	orderTimeout := wayforpay.DefaultOrderTimeout
	if discountApplies {
		orderTimeout = int(reservation.ValidUntil.Sub(now).Seconds())
	}

	order := &wayforpay.PaymentOrder{
		OrderReference: utils.GenerateOrderReference(),
		OrderDate:      now.Unix(),
		Amount:         total,
		Currency:       wayforpay.CurrencyUAH,
		Products:       products,
		ClientName:     req.ClientInfo.Name,
		ClientPhone:    req.ClientInfo.Phone,
		ClientEmail:    req.ClientInfo.Email,
		OrderTimeout:   orderTimeout,
	}

	// Best-effort link: payment works without it, but the callback needs it
	// to find the reservation.
	if reservation != nil {
		if err := s.promo.LinkOrder(ctx, reservation.ID, order.OrderReference, total); err != nil {
			logger.Error("failed to link order to reservation", err)
		}
	}

	// Opportunistic sweep, detached from this request's lifecycle.
	go func() {
		sweepCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.promo.CleanupExpired(sweepCtx)
	}()

	url, err := s.gateway.CreatePayment(ctx, order)
	if err != nil {
		return nil, err
	}

	return &model.PurchaseResponse{URL: url}, nil
}

// reservePromo reserves a slot for the supplied code and re-reads the
// reservation with its terms right before pricing, closing most of the
// window between reserve and use.
func (s *checkoutService) reservePromo(ctx context.Context, promo *string) (*promomodel.ReservationWithTerms, error) {
	if promo == nil || strings.TrimSpace(*promo) == "" {
		return nil, nil
	}

	reserved, err := s.promo.Reserve(ctx, *promo)
	if err != nil {
		return nil, err
	}

	reservationID, err := uuid.Parse(reserved.ReservationID)
	if err != nil {
		return nil, promomodel.ErrReservationNotFound
	}

	rt, err := s.promo.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if rt.Status != promomodel.StatusReserved {
		return nil, promomodel.ErrReservationInactive
	}
	if !now.Before(rt.ValidUntil) {
		return nil, promomodel.ErrReservationExpired
	}

	return rt, nil
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, v := range b {
		if containsID(a, v) {
			return true
		}
	}
	return false
}
