package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/comandapos/comanda-api/internal/domain"
	"github.com/comandapos/comanda-api/internal/domain/entity"
	"github.com/comandapos/comanda-api/internal/domain/repository"
)

var _ repository.TableRepository = (*TableRepo)(nil)

// TableRepo implementación de TableRepository sobre PostgreSQL.
type TableRepo struct {
	q Querier
}

// NewTableRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTableRepository(q Querier) *TableRepo {
	return &TableRepo{q: q}
}

// Create inserta una mesa / slot de atención.
func (r *TableRepo) Create(t *entity.Table) error {
	query := `
		INSERT INTO tables (id, business_id, name, type, capacity, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.BusinessID, t.Name, t.Type, t.Capacity, t.Active, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

// GetByID obtiene una mesa por ID.
func (r *TableRepo) GetByID(id string) (*entity.Table, error) {
	query := `
		SELECT id, business_id, name, type, capacity, active, created_at, updated_at
		FROM tables WHERE id = $1`
	var t entity.Table
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.BusinessID, &t.Name, &t.Type, &t.Capacity, &t.Active, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get table: %w", err)
	}
	return &t, nil
}

// ListByBusiness lista las mesas del negocio.
func (r *TableRepo) ListByBusiness(businessID string, onlyActive bool) ([]*entity.Table, error) {
	query := `
		SELECT id, business_id, name, type, capacity, active, created_at, updated_at
		FROM tables WHERE business_id = $1`
	if onlyActive {
		query += ` AND active = true`
	}
	query += ` ORDER BY name`

	rows, err := r.q.Query(context.Background(), query, businessID)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var out []*entity.Table
	for rows.Next() {
		var t entity.Table
		if err := rows.Scan(&t.ID, &t.BusinessID, &t.Name, &t.Type, &t.Capacity, &t.Active, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// Update actualiza una mesa.
func (r *TableRepo) Update(t *entity.Table) error {
	query := `
		UPDATE tables
		SET name = $2, type = $3, capacity = $4, active = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, t.ID, t.Name, t.Type, t.Capacity, t.Active, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update table: %w", err)
	}
	return nil
}

// SoftDelete marca la mesa como inactiva.
func (r *TableRepo) SoftDelete(id string) error {
	query := `UPDATE tables SET active = false, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete table: %w", err)
	}
	return nil
}
