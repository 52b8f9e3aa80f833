package reporting

import (
	"context"
	"time"

	"github.com/comandapos/comanda-api/internal/application/dto"
	"github.com/comandapos/comanda-api/internal/domain/repository"
)

// ReportingUseCase agregados de solo lectura para el tablero del día.
type ReportingUseCase struct {
	orderRepo repository.OrderRepository
	itemRepo  repository.InventoryItemRepository
}

// NewReportingUseCase construye el caso de uso.
func NewReportingUseCase(orderRepo repository.OrderRepository, itemRepo repository.InventoryItemRepository) *ReportingUseCase {
	return &ReportingUseCase{orderRepo: orderRepo, itemRepo: itemRepo}
}

// Dashboard resume el día en curso: ventas (comandas canceladas excluidas en la
// agregación) y los insumos bajo el mínimo.
func (uc *ReportingUseCase) Dashboard(ctx context.Context, businessID string) (*dto.DashboardResponse, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	summary, err := uc.orderRepo.SalesSummary(businessID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.itemRepo.ListLowStock(businessID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.InventoryItemResponse, 0, len(lowStock))
	for _, it := range lowStock {
		items = append(items, dto.InventoryItemResponse{
			ID:            it.ID,
			Name:          it.Name,
			Category:      it.Category,
			Unit:          it.Unit,
			CurrentStock:  it.CurrentStock,
			MinStock:      it.MinStock,
			PurchasePrice: it.PurchasePrice,
			Supplier:      it.Supplier,
			Location:      it.Location,
			LowStock:      true,
			Active:        it.Active,
			CreatedAt:     it.CreatedAt,
		})
	}

	return &dto.DashboardResponse{
		Date:          dayStart.Format("2006-01-02"),
		SalesTotal:    summary.Total,
		OrderCount:    summary.OrderCount,
		LowStockCount: len(items),
		LowStockItems: items,
	}, nil
}
