package service

import (
	"context"
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funpark-backend/internal/domains/payment/gateway/wayforpay"
	promomodel "funpark-backend/internal/domains/promo/model"
)

const testSecret = "callback-test-secret"

func signFields(secret string, fields ...string) string {
	mac := hmac.New(md5.New, []byte(secret))
	mac.Write([]byte(strings.Join(fields, ";")))
	return hex.EncodeToString(mac.Sum(nil))
}

type fakePromo struct {
	reservations map[string]*promomodel.Reservation

	confirmed []uuid.UUID
	cancelled []uuid.UUID
}

func newFakePromo(reservations ...*promomodel.Reservation) *fakePromo {
	f := &fakePromo{reservations: make(map[string]*promomodel.Reservation)}
	for _, r := range reservations {
		f.reservations[*r.OrderReference] = r
	}
	return f
}

func (f *fakePromo) Validate(context.Context, string) (*promomodel.ValidateResponse, error) {
	return nil, nil
}

func (f *fakePromo) Reserve(context.Context, string) (*promomodel.ReserveResponse, error) {
	return nil, nil
}

func (f *fakePromo) Confirm(_ context.Context, id uuid.UUID, _ string) error {
	f.confirmed = append(f.confirmed, id)
	return nil
}

func (f *fakePromo) Cancel(_ context.Context, id uuid.UUID) error {
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakePromo) GetReservation(context.Context, uuid.UUID) (*promomodel.ReservationWithTerms, error) {
	return nil, promomodel.ErrReservationNotFound
}

func (f *fakePromo) GetReservationByOrderReference(_ context.Context, orderRef string) (*promomodel.Reservation, error) {
	if r, ok := f.reservations[orderRef]; ok {
		return r, nil
	}
	return nil, promomodel.ErrReservationNotFound
}

func (f *fakePromo) LinkOrder(context.Context, uuid.UUID, string, decimal.Decimal) error {
	return nil
}

func (f *fakePromo) CleanupExpired(context.Context) int { return 0 }

type fakeNotifier struct {
	messages []string
	err      error
}

func (f *fakeNotifier) Send(_ context.Context, message string) error {
	f.messages = append(f.messages, message)
	return f.err
}

func signedCallback(orderRef, status string) *wayforpay.Callback {
	cb := &wayforpay.Callback{
		MerchantAccount:   "test_merch_n1",
		OrderReference:    orderRef,
		Amount:            json.Number("160"),
		Currency:          "UAH",
		AuthCode:          "541963",
		CardPan:           "44****1111",
		TransactionStatus: status,
		ReasonCode:        json.Number("1100"),
	}
	cb.MerchantSignature = signFields(testSecret,
		cb.MerchantAccount, cb.OrderReference, cb.Amount.String(), cb.Currency,
		cb.AuthCode, cb.CardPan, cb.TransactionStatus, cb.ReasonCode.String())
	return cb
}

func reservedFor(orderRef string, status promomodel.ReservationStatus) *promomodel.Reservation {
	return &promomodel.Reservation{
		ID:             uuid.New(),
		Status:         status,
		ReservedAt:     time.Now(),
		ValidUntil:     time.Now().Add(20 * time.Minute),
		OrderReference: &orderRef,
	}
}

func TestProcessCallbackRejectsBadSignatureBeforeMutation(t *testing.T) {
	reservation := reservedFor("ORDER_1", promomodel.StatusReserved)
	promo := newFakePromo(reservation)
	notifier := &fakeNotifier{}
	svc := NewCallbackService(testSecret, promo, notifier)

	cb := signedCallback("ORDER_1", wayforpay.StatusApproved)
	cb.Amount = json.Number("1") // tampered after signing

	_, err := svc.ProcessCallback(context.Background(), cb)
	require.ErrorIs(t, err, ErrInvalidSignature)

	assert.Empty(t, promo.confirmed)
	assert.Empty(t, promo.cancelled)
	assert.Empty(t, notifier.messages)
}

func TestProcessCallbackApproved(t *testing.T) {
	reservation := reservedFor("ORDER_1", promomodel.StatusReserved)
	promo := newFakePromo(reservation)
	notifier := &fakeNotifier{}
	svc := NewCallbackService(testSecret, promo, notifier)

	result, err := svc.ProcessCallback(context.Background(),
		signedCallback("ORDER_1", wayforpay.StatusApproved))
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{reservation.ID}, promo.confirmed)
	assert.Empty(t, promo.cancelled)
	assert.Len(t, notifier.messages, 1)

	assert.Equal(t, "ORDER_1", result.OrderReference)
	assert.Equal(t, "accept", result.Status)
	assert.Equal(t,
		signFields(testSecret, "ORDER_1", "accept", strconv.FormatInt(result.Time, 10)),
		result.Signature)
}

func TestProcessCallbackDeclinedCancelsReserved(t *testing.T) {
	reservation := reservedFor("ORDER_1", promomodel.StatusReserved)
	promo := newFakePromo(reservation)
	svc := NewCallbackService(testSecret, promo, &fakeNotifier{})

	result, err := svc.ProcessCallback(context.Background(),
		signedCallback("ORDER_1", "Declined"))
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{reservation.ID}, promo.cancelled)
	assert.Empty(t, promo.confirmed)
	assert.Equal(t, "decline", result.Status)
}

func TestProcessCallbackDeclinedLeavesSettledReservation(t *testing.T) {
	// A declined retry after a confirm must not cancel the settled slot.
	reservation := reservedFor("ORDER_1", promomodel.StatusConfirmed)
	promo := newFakePromo(reservation)
	svc := NewCallbackService(testSecret, promo, &fakeNotifier{})

	_, err := svc.ProcessCallback(context.Background(),
		signedCallback("ORDER_1", "Expired"))
	require.NoError(t, err)

	assert.Empty(t, promo.cancelled)
}

func TestProcessCallbackWithoutReservation(t *testing.T) {
	// Orders without a promo have no reservation; the gateway still gets a
	// signed acknowledgement.
	promo := newFakePromo()
	svc := NewCallbackService(testSecret, promo, &fakeNotifier{})

	result, err := svc.ProcessCallback(context.Background(),
		signedCallback("ORDER_NO_PROMO", wayforpay.StatusApproved))
	require.NoError(t, err)

	assert.Empty(t, promo.confirmed)
	assert.Equal(t, "accept", result.Status)
	assert.NotEmpty(t, result.Signature)
}

func TestProcessCallbackNotifierFailureIsNotFatal(t *testing.T) {
	reservation := reservedFor("ORDER_1", promomodel.StatusReserved)
	promo := newFakePromo(reservation)
	notifier := &fakeNotifier{err: assert.AnError}
	svc := NewCallbackService(testSecret, promo, notifier)

	result, err := svc.ProcessCallback(context.Background(),
		signedCallback("ORDER_1", wayforpay.StatusApproved))
	require.NoError(t, err)

	// Confirmation still happens and the response is still signed.
	assert.Equal(t, []uuid.UUID{reservation.ID}, promo.confirmed)
	assert.Equal(t, "accept", result.Status)
}
