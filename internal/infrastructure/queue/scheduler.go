package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"funpark-backend/internal/domains/promo/job"
	"funpark-backend/internal/shared"
	"funpark-backend/pkg/logger"
)

// Scheduler registers the recurring background jobs with asynq.
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, redisPassword string, redisDB int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// RegisterJobs wires up all recurring jobs.
func (s *Scheduler) RegisterJobs() error {
	return s.registerReservationSweep()
}

// Reservation sweep every 15 minutes: stale holds release their promo slots
// at worst half a TTL after lazy expiry already stopped counting them.
func (s *Scheduler) registerReservationSweep() error {
	_, err := s.scheduler.Register(
		"*/15 * * * *",
		job.NewCleanupExpiredTask(),
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(2),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		logger.Error("failed to register reservation sweep", err)
		return err
	}

	logger.Info("registered reservation sweep: every 15 minutes", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
