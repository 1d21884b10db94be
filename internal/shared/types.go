package shared

const (
	// Background task types
	TypeCleanupExpiredReservations = "promo:cleanup_expired_reservations"

	// Queue names
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)
