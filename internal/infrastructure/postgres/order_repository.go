package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/comandapos/comanda-api/internal/domain/entity"
	"github.com/comandapos/comanda-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrdersChannel canal de pg_notify donde se publica cada cambio de comanda.
// El listener de la app lo reenvía a los websockets suscritos.
const OrdersChannel = "orders_feed"

// OrderRepo implementación de OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, business_id, daily_number, table_id, table_name, status, total,
	payment_method, is_delivery, delivery_address, delivery_fee, customer_name, note,
	created_by, modified_by, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.BusinessID, &o.DailyNumber, &o.TableID, &o.TableName, &o.Status, &o.Total,
		&o.PaymentMethod, &o.IsDelivery, &o.DeliveryAddress, &o.DeliveryFee, &o.CustomerName, &o.Note,
		&o.CreatedBy, &o.ModifiedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// notify publica el evento en el canal de comandas dentro de la misma conexión
// (y transacción, si aplica): solo se emite si la escritura hace commit.
func (r *OrderRepo) notify(event, orderID, businessID, status string) {
	payload, err := json.Marshal(map[string]string{
		"event":       event,
		"order_id":    orderID,
		"business_id": businessID,
		"status":      status,
	})
	if err != nil {
		return
	}
	// Mejor esfuerzo: un NOTIFY fallido no invalida la comanda.
	_, _ = r.q.Exec(context.Background(), `SELECT pg_notify($1, $2)`, OrdersChannel, string(payload))
}

// Create inserta una comanda y notifica su creación.
func (r *OrderRepo) Create(o *entity.Order) error {
	query := `
		INSERT INTO orders (id, business_id, daily_number, table_id, table_name, status, total,
			payment_method, is_delivery, delivery_address, delivery_fee, customer_name, note,
			created_by, modified_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.BusinessID, o.DailyNumber, o.TableID, o.TableName, o.Status, o.Total,
		o.PaymentMethod, o.IsDelivery, o.DeliveryAddress, o.DeliveryFee, o.CustomerName, o.Note,
		o.CreatedBy, o.ModifiedBy, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	r.notify("order_created", o.ID, o.BusinessID, o.Status)
	return nil
}

// GetByID obtiene una comanda por ID.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetForUpdate obtiene la comanda y bloquea su fila hasta el fin de la transacción.
// Agregados concurrentes sobre la misma comanda se serializan en este lock.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	return o, nil
}

// ListByBusiness lista comandas del negocio con filtros, de la más reciente a la más antigua.
func (r *OrderRepo) ListByBusiness(businessID string, f repository.OrderFilter) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE business_id = $1`
	args := []any{businessID}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += fmt.Sprintf(" AND created_at < $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	args = append(args, f.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// NextDailyNumber calcula max+1 del consecutivo del día para el negocio. Antes de
// leer toma un advisory lock transaccional por negocio: bajo READ COMMITTED dos
// transacciones concurrentes verían el mismo MAX, el lock las serializa y el número
// no se repite. Debe invocarse dentro de la transacción que inserta la comanda.
func (r *OrderRepo) NextDailyNumber(businessID string, day time.Time) (int, error) {
	_, err := r.q.Exec(context.Background(),
		`SELECT pg_advisory_xact_lock(hashtext('orders_daily_number:' || $1))`, businessID)
	if err != nil {
		return 0, fmt.Errorf("lock daily number: %w", err)
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	query := `
		SELECT COALESCE(MAX(daily_number), 0) + 1
		FROM orders
		WHERE business_id = $1 AND created_at >= $2 AND created_at < $3`
	var next int
	if err := r.q.QueryRow(context.Background(), query, businessID, dayStart, dayEnd).Scan(&next); err != nil {
		return 0, fmt.Errorf("next daily number: %w", err)
	}
	return next, nil
}

// UpdateStatus cambia el estado de una comanda y notifica el cambio.
func (r *OrderRepo) UpdateStatus(id, status string) error {
	query := `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1 RETURNING business_id`
	var businessID string
	err := r.q.QueryRow(context.Background(), query, id, status).Scan(&businessID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	r.notify("order_status", id, businessID, status)
	return nil
}

// UpdateTotal fija el nuevo total y estampa el último modificador.
func (r *OrderRepo) UpdateTotal(id string, total decimal.Decimal, modifiedBy string) error {
	query := `
		UPDATE orders SET total = $2, modified_by = $3, updated_at = now()
		WHERE id = $1 RETURNING business_id, status`
	var businessID, status string
	err := r.q.QueryRow(context.Background(), query, id, total, modifiedBy).Scan(&businessID, &status)
	if err != nil {
		return fmt.Errorf("update order total: %w", err)
	}
	r.notify("order_updated", id, businessID, status)
	return nil
}

// CreateItem inserta una línea de comanda.
func (r *OrderRepo) CreateItem(it *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price, subtotal, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		it.ID, it.OrderID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.Subtotal, it.Note, it.CreatedAt)
	if err != nil {
		return fmt.Errorf("create order item: %w", err)
	}
	return nil
}

// ListItems lista las líneas de una comanda en orden de inserción.
func (r *OrderRepo) ListItems(orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, subtotal, note, created_at
		FROM order_items WHERE order_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var out []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.Subtotal, &it.Note, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// SalesSummary agrega total y conteo de comandas no canceladas del rango.
func (r *OrderRepo) SalesSummary(businessID string, from, to time.Time) (*repository.SalesSummary, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM orders
		WHERE business_id = $1 AND status <> 'cancelado' AND created_at >= $2 AND created_at < $3`
	var s repository.SalesSummary
	err := r.q.QueryRow(context.Background(), query, businessID, from, to).Scan(&s.Total, &s.OrderCount)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	return &s, nil
}
