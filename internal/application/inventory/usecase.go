package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/comandapos/comanda-api/internal/application/dto"
	"github.com/comandapos/comanda-api/internal/domain"
	"github.com/comandapos/comanda-api/internal/domain/entity"
	"github.com/comandapos/comanda-api/internal/domain/repository"
)

// InventoryUseCase administra insumos y su libro de movimientos. El stock actual de
// un ítem solo cambia a través de RegisterMovement, nunca por edición directa.
type InventoryUseCase struct {
	txRunner TxRunner
	itemRepo repository.InventoryItemRepository
	movRepo  repository.InventoryMovementRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(txRunner TxRunner, itemRepo repository.InventoryItemRepository, movRepo repository.InventoryMovementRepository) *InventoryUseCase {
	return &InventoryUseCase{txRunner: txRunner, itemRepo: itemRepo, movRepo: movRepo}
}

// signedQuantity normaliza el signo del delta según el tipo de movimiento:
// entrada suma, salida y merma restan, ajuste respeta el signo del usuario.
func signedQuantity(movType string, quantity decimal.Decimal) decimal.Decimal {
	switch movType {
	case entity.MovementTypeEntrada:
		return quantity.Abs()
	case entity.MovementTypeSalida, entity.MovementTypeMerma:
		return quantity.Abs().Neg()
	default: // ajuste
		return quantity
	}
}

// RegisterMovement registra un movimiento: bloquea la fila del ítem
// (SELECT FOR UPDATE), calcula el nuevo stock, rechaza sin escribir si quedaría
// negativo y, si procede, actualiza el stock e inserta la fila del libro con los
// snapshots antes/después — todo en una transacción.
func (uc *InventoryUseCase) RegisterMovement(ctx context.Context, businessID, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if in.ItemID == "" || !entity.ValidMovementType(in.Type) || in.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil || item == nil {
		return nil, domain.ErrNotFound
	}
	if item.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}

	delta := signedQuantity(in.Type, in.Quantity)
	now := time.Now()
	var mov *entity.InventoryMovement

	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		locked, err := itemRepo.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		newStock := locked.CurrentStock.Add(delta)
		if newStock.IsNegative() {
			return domain.ErrInsufficientStock
		}
		if err := itemRepo.UpdateStock(locked.ID, newStock); err != nil {
			return err
		}
		mov = &entity.InventoryMovement{
			ID:          uuid.New().String(),
			BusinessID:  businessID,
			ItemID:      locked.ID,
			Type:        in.Type,
			Quantity:    delta,
			StockBefore: locked.CurrentStock,
			StockAfter:  newStock,
			Reason:      in.Reason,
			CreatedBy:   userID,
			CreatedAt:   now,
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// CreateItem crea un insumo con stock cero; el stock inicial entra como movimiento.
func (uc *InventoryUseCase) CreateItem(ctx context.Context, businessID string, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock.IsNegative() || in.PurchasePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:            uuid.New().String(),
		BusinessID:    businessID,
		Name:          in.Name,
		Category:      in.Category,
		Unit:          in.Unit,
		CurrentStock:  decimal.Zero,
		MinStock:      in.MinStock,
		PurchasePrice: in.PurchasePrice,
		Supplier:      in.Supplier,
		Location:      in.Location,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// UpdateItem modifica metadatos del insumo. CurrentStock queda fuera a propósito.
func (uc *InventoryUseCase) UpdateItem(ctx context.Context, businessID, itemID string, in dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil || item == nil {
		return nil, domain.ErrNotFound
	}
	if item.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.MinStock = *in.MinStock
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.PurchasePrice = *in.PurchasePrice
	}
	if in.Supplier != nil {
		item.Supplier = *in.Supplier
	}
	if in.Location != nil {
		item.Location = *in.Location
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// DeleteItem desactiva el insumo (soft delete). No se valida contra movimientos:
// son historial inmutable, no referencias vivas.
func (uc *InventoryUseCase) DeleteItem(ctx context.Context, businessID, itemID string) error {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil || item == nil {
		return domain.ErrNotFound
	}
	if item.BusinessID != businessID {
		return domain.ErrForbidden
	}
	return uc.itemRepo.SoftDelete(itemID)
}

// ListItems lista los insumos del negocio.
func (uc *InventoryUseCase) ListItems(ctx context.Context, businessID string, onlyActive bool) ([]dto.InventoryItemResponse, error) {
	list, err := uc.itemRepo.ListByBusiness(businessID, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, *toItemResponse(it))
	}
	return out, nil
}

// LowStockItems lista los insumos activos con stock por debajo del mínimo.
func (uc *InventoryUseCase) LowStockItems(ctx context.Context, businessID string) ([]dto.InventoryItemResponse, error) {
	list, err := uc.itemRepo.ListLowStock(businessID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, *toItemResponse(it))
	}
	return out, nil
}

// ListMovements lista el libro de movimientos de un ítem, del más reciente al más antiguo.
func (uc *InventoryUseCase) ListMovements(ctx context.Context, businessID, itemID string, from, to *time.Time, limit, offset int) ([]dto.MovementResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil || item == nil {
		return nil, domain.ErrNotFound
	}
	if item.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	list, err := uc.movRepo.ListByItem(itemID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMovementResponse(m))
	}
	return out, nil
}

func toItemResponse(i *entity.InventoryItem) *dto.InventoryItemResponse {
	if i == nil {
		return nil
	}
	return &dto.InventoryItemResponse{
		ID:            i.ID,
		Name:          i.Name,
		Category:      i.Category,
		Unit:          i.Unit,
		CurrentStock:  i.CurrentStock,
		MinStock:      i.MinStock,
		PurchasePrice: i.PurchasePrice,
		Supplier:      i.Supplier,
		Location:      i.Location,
		LowStock:      i.IsLowStock(),
		Active:        i.Active,
		CreatedAt:     i.CreatedAt,
	}
}

func toMovementResponse(m *entity.InventoryMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:          m.ID,
		ItemID:      m.ItemID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Reason:      m.Reason,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}
