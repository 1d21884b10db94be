package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"funpark-backend/internal/domains/promo/model"
	"funpark-backend/internal/domains/promo/repository"
	"funpark-backend/pkg/logger"
)

// cleanupBatchSize bounds each sweep so opportunistic invocations from hot
// paths stay cheap.
const cleanupBatchSize = 10

type promoService struct {
	repo repository.PromoRepository
}

func NewPromoService(repo repository.PromoRepository) PromoService {
	return &promoService{repo: repo}
}

// checkRedeemable is the admission decision for one code. activeReservations
// counts other customers' live holds; they are treated as provisionally
// consumed slots so a limited code cannot be oversold mid-checkout.
func checkRedeemable(p *model.PromoCode, activeReservations int, now time.Time) error {
	if !p.IsActive {
		return model.ErrPromoInactive
	}

	if p.ValidFrom != nil && now.Before(*p.ValidFrom) {
		return model.ErrPromoNotStarted
	}
	if p.ValidUntil != nil && now.After(*p.ValidUntil) {
		return model.ErrPromoExpired
	}

	if limit := p.Limit(); limit != model.UnlimitedUses {
		if p.UsageCount >= limit {
			return model.ErrPromoLimitReached
		}
		if p.UsageCount+activeReservations >= limit {
			return model.ErrPromoTemporarilyUnavailable
		}
	}

	// A code with no eligible services can never discount anything; surface
	// it as a misconfiguration instead of silently applying nothing.
	if len(p.EligibleServiceIDs) == 0 {
		return model.ErrPromoNoEligibleItems
	}

	return nil
}

func (s *promoService) Validate(ctx context.Context, code string) (*model.ValidateResponse, error) {
	normalized := model.NormalizeCode(code)

	p, activeCount, err := s.repo.FindByCodeWithActiveCount(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if err := checkRedeemable(p, activeCount, time.Now()); err != nil {
		return nil, err
	}

	return &model.ValidateResponse{
		PromoCodeID:        p.ID.String(),
		DiscountPercent:    p.DiscountPercent,
		EligibleServiceIDs: p.EligibleServiceIDs,
	}, nil
}

// Reserve runs the admission check again inside the reservation transaction.
// A client-side Validate may be minutes old; the authoritative decision is
// the one made while the code row is locked.
func (s *promoService) Reserve(ctx context.Context, code string) (*model.ReserveResponse, error) {
	normalized := model.NormalizeCode(code)

	var discountPercent int
	res, err := s.repo.ReserveSlot(ctx, normalized, model.ReservationTTL,
		func(p *model.PromoCode, activeReservations int) error {
			if err := checkRedeemable(p, activeReservations, time.Now()); err != nil {
				return err
			}
			discountPercent = p.DiscountPercent
			return nil
		})
	if err != nil {
		return nil, err
	}

	logger.Info("promo reservation created", map[string]interface{}{
		"reservation_id": res.ID.String(),
		"promo_code":     normalized,
		"valid_until":    res.ValidUntil,
	})

	return &model.ReserveResponse{
		ReservationID:   res.ID.String(),
		ValidUntil:      res.ValidUntil,
		DiscountPercent: discountPercent,
	}, nil
}

func (s *promoService) Confirm(ctx context.Context, reservationID uuid.UUID, orderRef string) error {
	if err := s.repo.Confirm(ctx, reservationID, orderRef); err != nil {
		return err
	}

	logger.Info("promo reservation confirmed", map[string]interface{}{
		"reservation_id":  reservationID.String(),
		"order_reference": orderRef,
	})
	return nil
}

func (s *promoService) Cancel(ctx context.Context, reservationID uuid.UUID) error {
	return s.repo.SetReservationStatus(ctx, reservationID, model.StatusCancelled)
}

func (s *promoService) GetReservation(ctx context.Context, reservationID uuid.UUID) (*model.ReservationWithTerms, error) {
	return s.repo.FindReservationByID(ctx, reservationID)
}

func (s *promoService) GetReservationByOrderReference(ctx context.Context, orderRef string) (*model.Reservation, error) {
	return s.repo.FindReservationByOrderReference(ctx, orderRef)
}

func (s *promoService) LinkOrder(ctx context.Context, reservationID uuid.UUID, orderRef string, finalAmount decimal.Decimal) error {
	return s.repo.LinkOrder(ctx, reservationID, orderRef, finalAmount)
}

// CleanupExpired swallows repository errors: it is called after responses
// have been built and from cron, and must never fail a request.
func (s *promoService) CleanupExpired(ctx context.Context) int {
	count, err := s.repo.DeleteExpired(ctx, cleanupBatchSize)
	if err != nil {
		logger.Error("reservation cleanup failed", err)
		return 0
	}

	if count > 0 {
		logger.Info("expired reservations removed", map[string]interface{}{
			"count": count,
		})
	}
	return count
}
