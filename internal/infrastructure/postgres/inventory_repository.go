package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/comandapos/comanda-api/internal/domain"
	"github.com/comandapos/comanda-api/internal/domain/entity"
	"github.com/comandapos/comanda-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)
var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryItemRepo implementación de InventoryItemRepository sobre PostgreSQL.
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemColumns = `id, business_id, name, category, unit, current_stock, min_stock,
	purchase_price, supplier, location, active, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var i entity.InventoryItem
	err := row.Scan(
		&i.ID, &i.BusinessID, &i.Name, &i.Category, &i.Unit, &i.CurrentStock, &i.MinStock,
		&i.PurchasePrice, &i.Supplier, &i.Location, &i.Active, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create inserta un insumo.
func (r *InventoryItemRepo) Create(i *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, business_id, name, category, unit, current_stock, min_stock,
			purchase_price, supplier, location, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		i.ID, i.BusinessID, i.Name, i.Category, i.Unit, i.CurrentStock, i.MinStock,
		i.PurchasePrice, i.Supplier, i.Location, i.Active, i.CreatedAt, i.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo por ID.
func (r *InventoryItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	i, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return i, nil
}

// GetForUpdate obtiene el insumo y bloquea la fila (SELECT FOR UPDATE); usar dentro de una tx.
func (r *InventoryItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`
	i, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item for update: %w", err)
	}
	return i, nil
}

// ListByBusiness lista los insumos del negocio.
func (r *InventoryItemRepo) ListByBusiness(businessID string, onlyActive bool) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE business_id = $1`
	if onlyActive {
		query += ` AND active = true`
	}
	query += ` ORDER BY name`
	return r.queryItems(query, businessID)
}

// ListLowStock lista los insumos activos con stock por debajo del mínimo.
func (r *InventoryItemRepo) ListLowStock(businessID string) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE business_id = $1 AND active = true AND current_stock < min_stock
		ORDER BY name`
	return r.queryItems(query, businessID)
}

func (r *InventoryItemRepo) queryItems(query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryItem
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// Update actualiza los metadatos del insumo. No toca current_stock.
func (r *InventoryItemRepo) Update(i *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, category = $3, unit = $4, min_stock = $5, purchase_price = $6,
			supplier = $7, location = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		i.ID, i.Name, i.Category, i.Unit, i.MinStock, i.PurchasePrice, i.Supplier, i.Location, i.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// UpdateStock fija el stock actual. Solo lo invoca el motor de movimientos, con la fila bloqueada.
func (r *InventoryItemRepo) UpdateStock(id string, stock decimal.Decimal) error {
	query := `UPDATE inventory_items SET current_stock = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, stock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// SoftDelete marca el insumo como inactivo.
func (r *InventoryItemRepo) SoftDelete(id string) error {
	query := `UPDATE inventory_items SET active = false, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}

// InventoryMovementRepo implementación de InventoryMovementRepository sobre PostgreSQL.
// El libro es inmutable: no hay UPDATE ni DELETE.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create inserta una fila del libro de movimientos.
func (r *InventoryMovementRepo) Create(m *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (id, business_id, item_id, type, quantity,
			stock_before, stock_after, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.BusinessID, m.ItemID, m.Type, m.Quantity,
		m.StockBefore, m.StockAfter, m.Reason, m.CreatedBy, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByItem lista los movimientos de un ítem, del más reciente al más antiguo.
func (r *InventoryMovementRepo) ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, business_id, item_id, type, quantity, stock_before, stock_after, reason, created_by, created_at
		FROM inventory_movements WHERE item_id = $1`
	args := []any{itemID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND created_at < $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.BusinessID, &m.ItemID, &m.Type, &m.Quantity,
			&m.StockBefore, &m.StockAfter, &m.Reason, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
