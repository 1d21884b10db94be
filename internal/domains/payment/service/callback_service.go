package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"funpark-backend/internal/domains/payment/gateway/wayforpay"
	promomodel "funpark-backend/internal/domains/promo/model"
	promoservice "funpark-backend/internal/domains/promo/service"
	"funpark-backend/pkg/logger"
)

// ErrInvalidSignature rejects a callback whose digest does not match. It is
// the only error this service surfaces: everything after the signature check
// is reconciliation and must not fail the gateway's request.
var ErrInvalidSignature = errors.New("invalid callback signature")

// Notifier delivers order notifications. Failures are logged, never fatal.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// CallbackService reconciles asynchronous payment results against promo
// reservations.
type CallbackService interface {
	ProcessCallback(ctx context.Context, cb *wayforpay.Callback) (*wayforpay.CallbackResponse, error)
}

type callbackService struct {
	secretKey string
	promo     promoservice.PromoService
	notifier  Notifier
	now       func() time.Time
}

func NewCallbackService(secretKey string, promo promoservice.PromoService, notifier Notifier) CallbackService {
	return &callbackService{
		secretKey: secretKey,
		promo:     promo,
		notifier:  notifier,
		now:       time.Now,
	}
}

// ProcessCallback verifies authenticity, settles the linked reservation, and
// always answers with a signed acknowledgement. The signature check comes
// first: an unauthenticated payload must not touch any state.
func (s *callbackService) ProcessCallback(ctx context.Context, cb *wayforpay.Callback) (*wayforpay.CallbackResponse, error) {
	if !wayforpay.VerifyCallback(s.secretKey, cb) {
		logger.Warn("callback signature mismatch", map[string]interface{}{
			"order_reference": cb.OrderReference,
		})
		return nil, ErrInvalidSignature
	}

	logger.Info("payment callback received", map[string]interface{}{
		"order_reference":    cb.OrderReference,
		"transaction_status": cb.TransactionStatus,
	})

	// Orders without a promo have no reservation; that is normal.
	reservation, err := s.promo.GetReservationByOrderReference(ctx, cb.OrderReference)
	if err != nil {
		if !errors.Is(err, promomodel.ErrReservationNotFound) {
			logger.Error("reservation lookup failed during callback", err)
		}
		reservation = nil
	}

	status := "decline"
	if cb.TransactionStatus == wayforpay.StatusApproved {
		status = "accept"
		s.notifyApproved(ctx, cb)

		if reservation != nil {
			if err := s.promo.Confirm(ctx, reservation.ID, cb.OrderReference); err != nil {
				logger.Error("promo confirm failed during callback", err)
			}
		}
	} else if reservation != nil && reservation.Status == promomodel.StatusReserved {
		if err := s.promo.Cancel(ctx, reservation.ID); err != nil {
			logger.Error("promo cancel failed during callback", err)
		}
	}

	// The gateway marks the integration unhealthy without a prompt, signed
	// reply, so bookkeeping failures above never reach this point.
	responseTime := s.now().Unix()
	return &wayforpay.CallbackResponse{
		OrderReference: cb.OrderReference,
		Status:         status,
		Time:           responseTime,
		Signature:      wayforpay.SignResponse(s.secretKey, cb.OrderReference, status, responseTime),
	}, nil
}

func (s *callbackService) notifyApproved(ctx context.Context, cb *wayforpay.Callback) {
	message := fmt.Sprintf("✅ Payment received: order #%s paid, amount %s %s",
		cb.OrderReference, cb.Amount.String(), cb.Currency)

	if err := s.notifier.Send(ctx, message); err != nil {
		logger.Error("order notification failed", err)
	}
}
