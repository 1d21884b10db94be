package main

import (
	"github.com/hibiken/asynq"

	"funpark-backend/internal/domains/promo/job"
	"funpark-backend/internal/shared"
	"funpark-backend/pkg/container"
)

// HandlerRegistry collects the task handlers the worker serves.
type HandlerRegistry struct {
	cleanupExpired *job.CleanupExpiredHandler
}

func newHandlerRegistry(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		cleanupExpired: job.NewCleanupExpiredHandler(c.PromoService),
	}
}

func (r *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.Handle(shared.TypeCleanupExpiredReservations, r.cleanupExpired)
}
