package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmodel "funpark-backend/internal/domains/catalog/model"
	"funpark-backend/internal/domains/checkout/model"
	"funpark-backend/internal/domains/payment/gateway/wayforpay"
	promomodel "funpark-backend/internal/domains/promo/model"
)

type fakeCatalog struct {
	services map[string]*catalogmodel.Service
}

func (f *fakeCatalog) GetByIDs(_ context.Context, ids []string) (map[string]*catalogmodel.Service, error) {
	result := make(map[string]*catalogmodel.Service)
	for _, id := range ids {
		if svc, ok := f.services[id]; ok {
			result[id] = svc
		}
	}
	return result, nil
}

func (f *fakeCatalog) ListActive(context.Context) ([]*catalogmodel.Service, error) {
	return nil, nil
}

type fakePromo struct {
	mu sync.Mutex

	reservation *promomodel.ReservationWithTerms
	reserveErr  error

	linkedOrderRef string
	linkedAmount   decimal.Decimal
	cleanupCalls   int
}

func (f *fakePromo) Validate(context.Context, string) (*promomodel.ValidateResponse, error) {
	return nil, nil
}

func (f *fakePromo) Reserve(_ context.Context, code string) (*promomodel.ReserveResponse, error) {
	if f.reserveErr != nil {
		return nil, f.reserveErr
	}
	return &promomodel.ReserveResponse{
		ReservationID:   f.reservation.ID.String(),
		ValidUntil:      f.reservation.ValidUntil,
		DiscountPercent: f.reservation.DiscountPercent,
	}, nil
}

func (f *fakePromo) Confirm(context.Context, uuid.UUID, string) error { return nil }
func (f *fakePromo) Cancel(context.Context, uuid.UUID) error          { return nil }

func (f *fakePromo) GetReservation(_ context.Context, id uuid.UUID) (*promomodel.ReservationWithTerms, error) {
	if f.reservation == nil || f.reservation.ID != id {
		return nil, promomodel.ErrReservationNotFound
	}
	return f.reservation, nil
}

func (f *fakePromo) GetReservationByOrderReference(context.Context, string) (*promomodel.Reservation, error) {
	return nil, promomodel.ErrReservationNotFound
}

func (f *fakePromo) LinkOrder(_ context.Context, _ uuid.UUID, orderRef string, amount decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.linkedOrderRef = orderRef
	f.linkedAmount = amount
	return nil
}

func (f *fakePromo) CleanupExpired(context.Context) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleanupCalls++
	return 0
}

type fakeGateway struct {
	mu        sync.Mutex
	lastOrder *wayforpay.PaymentOrder
	url       string
	err       error
}

func (f *fakeGateway) CreatePayment(_ context.Context, order *wayforpay.PaymentOrder) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastOrder = order
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

func newTestService(catalog *fakeCatalog, promo *fakePromo, gateway *fakeGateway, now time.Time) *checkoutService {
	return &checkoutService{
		catalog: catalog,
		promo:   promo,
		gateway: gateway,
		now:     func() time.Time { return now },
	}
}

func defaultCatalog() *fakeCatalog {
	return &fakeCatalog{services: map[string]*catalogmodel.Service{
		"svc1": {ID: "svc1", Title: "Play zone pass", Price: price("100")},
		"svc2": {ID: "svc2", Title: "Snack combo", Price: price("50")},
	}}
}

func reservationFor(now time.Time, discount int, remaining time.Duration, eligible ...string) *promomodel.ReservationWithTerms {
	return &promomodel.ReservationWithTerms{
		Reservation: promomodel.Reservation{
			ID:         uuid.New(),
			Status:     promomodel.StatusReserved,
			ReservedAt: now,
			ValidUntil: now.Add(remaining),
		},
		Code:               "SAVE20",
		DiscountPercent:    discount,
		EligibleServiceIDs: eligible,
	}
}

func TestCreateOrderPerItemDiscount(t *testing.T) {
	now := time.Now()
	promo := &fakePromo{reservation: reservationFor(now, 20, 20*time.Minute, "svc1")}
	gateway := &fakeGateway{url: "https://pay.example/checkout"}
	svc := newTestService(defaultCatalog(), promo, gateway, now)

	result, err := svc.CreateOrder(context.Background(), &model.PurchaseRequest{
		CartItems: []model.CartItem{
			{ID: "svc1", Quantity: 1},
			{ID: "svc2", Quantity: 1},
		},
		ClientInfo: model.ClientInfo{Name: "Olena", Phone: "+380501112233", Email: "olena@example.com"},
		Promo:      strPtr("SAVE20"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/checkout", result.URL)

	// Only the eligible item is discounted: 100*0.8 + 50 = 130, not 120.
	assert.Equal(t, "130.00", gateway.lastOrder.Amount.StringFixed(2))
	assert.Equal(t, "80.00", gateway.lastOrder.Products[0].Price.StringFixed(2))
	assert.Equal(t, "50.00", gateway.lastOrder.Products[1].Price.StringFixed(2))

	// Gateway order expiry is coupled to the reservation's remaining life.
	assert.InDelta(t, (20 * time.Minute).Seconds(), float64(gateway.lastOrder.OrderTimeout), 1)
}

func TestCreateOrderScenarioTotal(t *testing.T) {
	now := time.Now()
	promo := &fakePromo{reservation: reservationFor(now, 20, 30*time.Minute, "svc1")}
	gateway := &fakeGateway{url: "https://pay.example/checkout"}
	svc := newTestService(defaultCatalog(), promo, gateway, now)

	_, err := svc.CreateOrder(context.Background(), &model.PurchaseRequest{
		CartItems:  []model.CartItem{{ID: "svc1", Quantity: 2}},
		ClientInfo: model.ClientInfo{Name: "Olena", Phone: "+380501112233", Email: "olena@example.com"},
		Promo:      strPtr("SAVE20"),
	})
	require.NoError(t, err)

	// 100 * 0.8 * 2 = 160.00
	assert.Equal(t, "160.00", gateway.lastOrder.Amount.StringFixed(2))
}

func TestCreateOrderWithoutPromo(t *testing.T) {
	now := time.Now()
	promo := &fakePromo{}
	gateway := &fakeGateway{url: "https://pay.example/checkout"}
	svc := newTestService(defaultCatalog(), promo, gateway, now)

	_, err := svc.CreateOrder(context.Background(), &model.PurchaseRequest{
		CartItems:  []model.CartItem{{ID: "svc2", Quantity: 3}},
		ClientInfo: model.ClientInfo{Name: "Olena", Phone: "+380501112233", Email: "olena@example.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, "150.00", gateway.lastOrder.Amount.StringFixed(2))
	assert.Equal(t, wayforpay.DefaultOrderTimeout, gateway.lastOrder.OrderTimeout)
	assert.Empty(t, promo.linkedOrderRef)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	svc := newTestService(defaultCatalog(), &fakePromo{}, &fakeGateway{}, time.Now())

	_, err := svc.CreateOrder(context.Background(), &model.PurchaseRequest{})
	assert.ErrorIs(t, err, model.ErrEmptyCart)
}

func TestCreateOrderMissingProductIDs(t *testing.T) {
	svc := newTestService(defaultCatalog(), &fakePromo{}, &fakeGateway{}, time.Now())

	_, err := svc.CreateOrder(context.Background(), &model.PurchaseRequest{
		CartItems: []model.CartItem{{Quantity: 1}},
	})
	assert.ErrorIs(t, err, model.ErrMissingProductIDs)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	svc := newTestService(defaultCatalog(), &fakePromo{}, &fakeGateway{}, time.Now())

	_, err := svc.CreateOrder(context.Background(), &model.PurchaseRequest{
		CartItems: []model.CartItem{{ID: "ghost", Quantity: 1}},
	})

	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "ghost")
}

func TestCreateOrderPromoFailureAborts(t *testing.T) {
	promo := &fakePromo{reserveErr: promomodel.ErrPromoLimitReached}
	gateway := &fakeGateway{url: "https://pay.example/checkout"}
	svc := newTestService(defaultCatalog(), promo, gateway, time.Now())

	_, err := svc.CreateOrder(context.Background(), &model.PurchaseRequest{
		CartItems: []model.CartItem{{ID: "svc1", Quantity: 1}},
		Promo:     strPtr("SAVE20"),
	})

	// No silent fallback to full price: the order is rejected outright.
	var appErr *promomodel.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, promomodel.ErrCodeLimitReached, appErr.Code)
	assert.Nil(t, gateway.lastOrder)
}

func TestCreateOrderIgnoresInapplicablePromo(t *testing.T) {
	now := time.Now()
	// Code is valid but eligible only for a service not in this cart.
	promo := &fakePromo{reservation: reservationFor(now, 20, 20*time.Minute, "svc-other")}
	gateway := &fakeGateway{url: "https://pay.example/checkout"}
	svc := newTestService(defaultCatalog(), promo, gateway, now)

	_, err := svc.CreateOrder(context.Background(), &model.PurchaseRequest{
		CartItems: []model.CartItem{{ID: "svc1", Quantity: 1}},
		Promo:     strPtr("SAVE20"),
	})
	require.NoError(t, err)

	assert.Equal(t, "100.00", gateway.lastOrder.Amount.StringFixed(2))
	assert.Equal(t, wayforpay.DefaultOrderTimeout, gateway.lastOrder.OrderTimeout)
}

func TestCreateOrderExpiredReservation(t *testing.T) {
	now := time.Now()
	promo := &fakePromo{reservation: reservationFor(now, 20, -time.Minute, "svc1")}
	svc := newTestService(defaultCatalog(), promo, &fakeGateway{}, now)

	_, err := svc.CreateOrder(context.Background(), &model.PurchaseRequest{
		CartItems: []model.CartItem{{ID: "svc1", Quantity: 1}},
		Promo:     strPtr("SAVE20"),
	})

	var appErr *promomodel.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, promomodel.ErrCodeReservationExpired, appErr.Code)
}

func TestCreateOrderLinksReservation(t *testing.T) {
	now := time.Now()
	promo := &fakePromo{reservation: reservationFor(now, 20, 20*time.Minute, "svc1")}
	gateway := &fakeGateway{url: "https://pay.example/checkout"}
	svc := newTestService(defaultCatalog(), promo, gateway, now)

	_, err := svc.CreateOrder(context.Background(), &model.PurchaseRequest{
		CartItems: []model.CartItem{{ID: "svc1", Quantity: 1}},
		Promo:     strPtr("SAVE20"),
	})
	require.NoError(t, err)

	promo.mu.Lock()
	defer promo.mu.Unlock()
	assert.Equal(t, gateway.lastOrder.OrderReference, promo.linkedOrderRef)
	assert.Equal(t, "80.00", promo.linkedAmount.StringFixed(2))
}

func TestCreateOrderGatewayNoURL(t *testing.T) {
	promo := &fakePromo{}
	gateway := &fakeGateway{err: wayforpay.ErrNoPaymentURL}
	svc := newTestService(defaultCatalog(), promo, gateway, time.Now())

	_, err := svc.CreateOrder(context.Background(), &model.PurchaseRequest{
		CartItems: []model.CartItem{{ID: "svc1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, wayforpay.ErrNoPaymentURL)
}
