package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del menú. El precio de venta vive aquí, pero cada
// línea de comanda captura su propio precio al momento de la venta: cambiar Price
// nunca altera comandas históricas.
type Product struct {
	ID         string
	BusinessID string
	CategoryID string
	Name       string
	Price      decimal.Decimal
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
