package job

import (
	"context"

	"github.com/hibiken/asynq"

	"funpark-backend/internal/domains/promo/service"
	"funpark-backend/internal/shared"
	"funpark-backend/pkg/logger"
)

// NewCleanupExpiredTask builds the scheduled sweep task. It carries no
// payload: each run just deletes the next batch of stale reservations.
func NewCleanupExpiredTask() *asynq.Task {
	return asynq.NewTask(shared.TypeCleanupExpiredReservations, nil)
}

// CleanupExpiredHandler processes the scheduled reservation sweep.
type CleanupExpiredHandler struct {
	service service.PromoService
}

func NewCleanupExpiredHandler(promoService service.PromoService) *CleanupExpiredHandler {
	return &CleanupExpiredHandler{service: promoService}
}

func (h *CleanupExpiredHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	count := h.service.CleanupExpired(ctx)

	logger.Info("scheduled reservation sweep finished", map[string]interface{}{
		"removed": count,
	})

	// CleanupExpired swallows its own errors; a failed sweep is retried on
	// the next schedule rather than through asynq's retry queue.
	return nil
}
