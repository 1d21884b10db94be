package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"funpark-backend/internal/domains/promo/model"
	"funpark-backend/pkg/database"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) PromoRepository {
	return &PostgresRepository{db: db}
}

const promoColumns = `
	p.id, p.code, p.discount_percent, p.kind,
	p.usage_limit, p.usage_count, p.is_active,
	p.valid_from, p.valid_until, p.eligible_service_ids,
	p.created_at, p.updated_at
`

func scanPromo(row pgx.Row, extra ...interface{}) (*model.PromoCode, error) {
	var p model.PromoCode
	dest := []interface{}{
		&p.ID,
		&p.Code,
		&p.DiscountPercent,
		&p.Kind,
		&p.UsageLimit,
		&p.UsageCount,
		&p.IsActive,
		&p.ValidFrom,
		&p.ValidUntil,
		&p.EligibleServiceIDs,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByCodeWithActiveCount reads the code row and the live-reservation
// count in a single statement, so the count reflects the same snapshot as
// the row itself.
func (r *PostgresRepository) FindByCodeWithActiveCount(ctx context.Context, code string) (*model.PromoCode, int, error) {
	query := `
		SELECT ` + promoColumns + `,
			(
				SELECT COUNT(*)
				FROM promo_reservations pr
				WHERE pr.promo_code_id = p.id
				  AND pr.status = 'reserved'
				  AND pr.valid_until > NOW()
			) AS active_reservations
		FROM promo_codes p
		WHERE LOWER(p.code) = LOWER($1)
	`

	var activeCount int
	p, err := scanPromo(r.db.QueryRow(ctx, query, code), &activeCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, model.ErrPromoNotFound
		}
		return nil, 0, fmt.Errorf("find promo by code: %w", err)
	}

	return p, activeCount, nil
}

// ReserveSlot serializes admission per code via a row lock. Two concurrent
// reserves on the same code queue on the lock, so the second one sees the
// first one's reservation in its count.
func (r *PostgresRepository) ReserveSlot(ctx context.Context, code string, ttl time.Duration, admit AdmitFunc) (*model.Reservation, error) {
	return database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*model.Reservation, error) {
		lockQuery := `
			SELECT ` + promoColumns + `
			FROM promo_codes p
			WHERE LOWER(p.code) = LOWER($1)
			FOR UPDATE
		`

		p, err := scanPromo(tx.QueryRow(ctx, lockQuery, code))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrPromoNotFound
			}
			return nil, fmt.Errorf("lock promo row: %w", err)
		}

		var activeCount int
		countQuery := `
			SELECT COUNT(*)
			FROM promo_reservations
			WHERE promo_code_id = $1
			  AND status = 'reserved'
			  AND valid_until > NOW()
		`
		if err := tx.QueryRow(ctx, countQuery, p.ID).Scan(&activeCount); err != nil {
			return nil, fmt.Errorf("count active reservations: %w", err)
		}

		if err := admit(p, activeCount); err != nil {
			return nil, err
		}

		res := &model.Reservation{
			ID:          uuid.New(),
			PromoCodeID: p.ID,
			Status:      model.StatusReserved,
		}

		insertQuery := `
			INSERT INTO promo_reservations (
				id, promo_code_id, status, reserved_at, valid_until,
				created_at, updated_at
			) VALUES (
				$1, $2, $3, NOW(), NOW() + $4::interval, NOW(), NOW()
			)
			RETURNING reserved_at, valid_until, created_at, updated_at
		`

		interval := fmt.Sprintf("%d seconds", int(ttl.Seconds()))
		err = tx.QueryRow(ctx, insertQuery,
			res.ID,
			res.PromoCodeID,
			res.Status,
			interval,
		).Scan(&res.ReservedAt, &res.ValidUntil, &res.CreatedAt, &res.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("create reservation: %w", err)
		}

		return res, nil
	})
}

func (r *PostgresRepository) FindReservationByID(ctx context.Context, id uuid.UUID) (*model.ReservationWithTerms, error) {
	query := `
		SELECT
			r.id, r.promo_code_id, r.status, r.reserved_at, r.valid_until,
			r.order_reference, r.final_amount, r.created_at, r.updated_at,
			p.code, p.discount_percent, p.eligible_service_ids
		FROM promo_reservations r
		JOIN promo_codes p ON p.id = r.promo_code_id
		WHERE r.id = $1
	`

	var rt model.ReservationWithTerms
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rt.ID,
		&rt.PromoCodeID,
		&rt.Status,
		&rt.ReservedAt,
		&rt.ValidUntil,
		&rt.OrderReference,
		&rt.FinalAmount,
		&rt.CreatedAt,
		&rt.UpdatedAt,
		&rt.Code,
		&rt.DiscountPercent,
		&rt.EligibleServiceIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReservationNotFound
		}
		return nil, fmt.Errorf("find reservation by id: %w", err)
	}

	return &rt, nil
}

func (r *PostgresRepository) FindReservationByOrderReference(ctx context.Context, orderRef string) (*model.Reservation, error) {
	query := `
		SELECT
			id, promo_code_id, status, reserved_at, valid_until,
			order_reference, final_amount, created_at, updated_at
		FROM promo_reservations
		WHERE order_reference = $1
	`

	var res model.Reservation
	err := r.db.QueryRow(ctx, query, orderRef).Scan(
		&res.ID,
		&res.PromoCodeID,
		&res.Status,
		&res.ReservedAt,
		&res.ValidUntil,
		&res.OrderReference,
		&res.FinalAmount,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReservationNotFound
		}
		return nil, fmt.Errorf("find reservation by order reference: %w", err)
	}

	return &res, nil
}

// SetReservationStatus writes the status unconditionally. Used by cancel,
// which is an idempotent set rather than a guarded transition.
func (r *PostgresRepository) SetReservationStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus) error {
	query := `
		UPDATE promo_reservations
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("set reservation status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrReservationNotFound
	}

	return nil
}

func (r *PostgresRepository) LinkOrder(ctx context.Context, id uuid.UUID, orderRef string, finalAmount decimal.Decimal) error {
	query := `
		UPDATE promo_reservations
		SET order_reference = $2, final_amount = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, orderRef, finalAmount)
	if err != nil {
		return fmt.Errorf("link order to reservation: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrReservationNotFound
	}

	return nil
}

// Confirm applies the whole finalization as one transaction. Partial
// application (usage incremented without the status flip, or vice versa)
// would corrupt the admission math.
func (r *PostgresRepository) Confirm(ctx context.Context, id uuid.UUID, orderRef string) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var status model.ReservationStatus
		var promoID uuid.UUID
		var kind model.PromoKind

		query := `
			SELECT r.status, r.promo_code_id, p.kind
			FROM promo_reservations r
			JOIN promo_codes p ON p.id = r.promo_code_id
			WHERE r.id = $1
			FOR UPDATE OF r, p
		`

		err := tx.QueryRow(ctx, query, id).Scan(&status, &promoID, &kind)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrReservationNotFound
			}
			return fmt.Errorf("lock reservation: %w", err)
		}

		// Already confirmed: the usage count was incremented on the first
		// confirm, do nothing.
		if status == model.StatusConfirmed {
			return nil
		}

		updateRes := `
			UPDATE promo_reservations
			SET status = $2, order_reference = $3, updated_at = NOW()
			WHERE id = $1
		`
		if _, err := tx.Exec(ctx, updateRes, id, model.StatusConfirmed, orderRef); err != nil {
			return fmt.Errorf("confirm reservation: %w", err)
		}

		// Personal codes are one-shot: deactivate on first confirmed use
		// regardless of the numeric limit.
		updatePromo := `
			UPDATE promo_codes
			SET usage_count = usage_count + 1,
				is_active = CASE WHEN kind = 'personal' THEN false ELSE is_active END,
				updated_at = NOW()
			WHERE id = $1
		`
		if _, err := tx.Exec(ctx, updatePromo, promoID); err != nil {
			return fmt.Errorf("increment promo usage: %w", err)
		}

		return nil
	})
}

func (r *PostgresRepository) DeleteExpired(ctx context.Context, limit int) (int, error) {
	query := `
		DELETE FROM promo_reservations
		WHERE id IN (
			SELECT id
			FROM promo_reservations
			WHERE status IN ('reserved', 'expired')
			  AND valid_until < NOW()
			LIMIT $1
		)
	`

	result, err := r.db.Exec(ctx, query, limit)
	if err != nil {
		return 0, fmt.Errorf("delete expired reservations: %w", err)
	}

	return int(result.RowsAffected()), nil
}
