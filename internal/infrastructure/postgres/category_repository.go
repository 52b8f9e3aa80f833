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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create inserta una categoría del menú.
func (r *CategoryRepo) Create(c *entity.Category) error {
	query := `
		INSERT INTO categories (id, business_id, name, icon, color, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.BusinessID, c.Name, c.Icon, c.Color, c.Active, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `
		SELECT id, business_id, name, icon, color, active, created_at, updated_at
		FROM categories WHERE id = $1`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.BusinessID, &c.Name, &c.Icon, &c.Color, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// ListByBusiness lista categorías del negocio, opcionalmente solo activas.
func (r *CategoryRepo) ListByBusiness(businessID string, onlyActive bool) ([]*entity.Category, error) {
	query := `
		SELECT id, business_id, name, icon, color, active, created_at, updated_at
		FROM categories WHERE business_id = $1`
	if onlyActive {
		query += ` AND active = true`
	}
	query += ` ORDER BY name`

	rows, err := r.q.Query(context.Background(), query, businessID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.BusinessID, &c.Name, &c.Icon, &c.Color, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Update actualiza una categoría.
func (r *CategoryRepo) Update(c *entity.Category) error {
	query := `
		UPDATE categories
		SET name = $2, icon = $3, color = $4, active = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Name, c.Icon, c.Color, c.Active, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// CountActiveProducts cuenta productos activos de la categoría (guardia de borrado).
func (r *CategoryRepo) CountActiveProducts(categoryID string) (int, error) {
	query := `SELECT COUNT(*) FROM products WHERE category_id = $1 AND active = true`
	var count int
	if err := r.q.QueryRow(context.Background(), query, categoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active products: %w", err)
	}
	return count, nil
}

// SoftDelete marca la categoría como inactiva.
func (r *CategoryRepo) SoftDelete(id string) error {
	query := `UPDATE categories SET active = false, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
