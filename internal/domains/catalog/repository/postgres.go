package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"funpark-backend/internal/domains/catalog/model"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) CatalogRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*model.Service, error) {
	if len(ids) == 0 {
		return map[string]*model.Service{}, nil
	}

	query := `
		SELECT id, title, description, price, menu_order, is_active,
			created_at, updated_at
		FROM services
		WHERE id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get services by ids: %w", err)
	}
	defer rows.Close()

	services := make(map[string]*model.Service, len(ids))
	for rows.Next() {
		var s model.Service
		err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.Description,
			&s.Price,
			&s.MenuOrder,
			&s.IsActive,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services[s.ID] = &s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", err)
	}

	return services, nil
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]*model.Service, error) {
	query := `
		SELECT id, title, description, price, menu_order, is_active,
			created_at, updated_at
		FROM services
		WHERE is_active = true
		ORDER BY menu_order ASC, title ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active services: %w", err)
	}
	defer rows.Close()

	var services []*model.Service
	for rows.Next() {
		var s model.Service
		err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.Description,
			&s.Price,
			&s.MenuOrder,
			&s.IsActive,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", err)
	}

	return services, nil
}
