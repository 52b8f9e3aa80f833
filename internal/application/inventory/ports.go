package inventory

import (
	"context"

	"github.com/comandapos/comanda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que el stock del ítem y su fila del libro de movimientos
// sean indivisibles: un lector nunca ve uno sin el otro.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}
