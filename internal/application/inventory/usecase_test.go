package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comandapos/comanda-api/internal/application/dto"
	"github.com/comandapos/comanda-api/internal/domain"
	"github.com/comandapos/comanda-api/internal/domain/entity"
	"github.com/comandapos/comanda-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items        map[string]*entity.InventoryItem
	stockUpdates int
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.InventoryItem)}
}

func (r *fakeItemRepo) Create(i *entity.InventoryItem) error {
	cp := *i
	r.items[i.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	i, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (r *fakeItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	return r.GetByID(id)
}

func (r *fakeItemRepo) ListByBusiness(businessID string, onlyActive bool) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, i := range r.items {
		if i.BusinessID != businessID || (onlyActive && !i.Active) {
			continue
		}
		cp := *i
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeItemRepo) ListLowStock(businessID string) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, i := range r.items {
		if i.BusinessID == businessID && i.Active && i.IsLowStock() {
			cp := *i
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Update(i *entity.InventoryItem) error {
	stored, ok := r.items[i.ID]
	if !ok {
		return domain.ErrNotFound
	}
	// El stock actual no viaja por Update, igual que en el adaptador real
	keep := stored.CurrentStock
	cp := *i
	cp.CurrentStock = keep
	r.items[i.ID] = &cp
	return nil
}

func (r *fakeItemRepo) UpdateStock(id string, stock decimal.Decimal) error {
	i, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	i.CurrentStock = stock
	r.stockUpdates++
	return nil
}

func (r *fakeItemRepo) SoftDelete(id string) error {
	i, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	i.Active = false
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.InventoryMovement
}

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

// fakeInvTxRunner pasa los repos directamente al callback (sin tx real).
type fakeInvTxRunner struct {
	itemRepo *fakeItemRepo
	movRepo  *fakeMovementRepo
}

func (r *fakeInvTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	return fn(r.itemRepo, r.movRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const invBizID = "biz-1"

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func newInvFixture(stock string) (*InventoryUseCase, *fakeItemRepo, *fakeMovementRepo) {
	itemRepo := newFakeItemRepo()
	movRepo := &fakeMovementRepo{}
	itemRepo.items["i-harina"] = &entity.InventoryItem{
		ID:           "i-harina",
		BusinessID:   invBizID,
		Name:         "Harina de maíz",
		Unit:         "kg",
		CurrentStock: dec(stock),
		MinStock:     dec("5"),
		Active:       true,
	}
	uc := NewInventoryUseCase(&fakeInvTxRunner{itemRepo: itemRepo, movRepo: movRepo}, itemRepo, movRepo)
	return uc, itemRepo, movRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_EntradaSumaYDejaSnapshots(t *testing.T) {
	uc, itemRepo, movRepo := newInvFixture("10")

	out, err := uc.RegisterMovement(context.Background(), invBizID, "user-1", dto.RegisterMovementRequest{
		ItemID:   "i-harina",
		Type:     entity.MovementTypeEntrada,
		Quantity: dec("4"),
		Reason:   "compra semanal",
	})
	require.NoError(t, err)

	assert.True(t, dec("4").Equal(out.Quantity))
	assert.True(t, dec("10").Equal(out.StockBefore))
	assert.True(t, dec("14").Equal(out.StockAfter))

	stored, _ := itemRepo.GetByID("i-harina")
	assert.True(t, dec("14").Equal(stored.CurrentStock))
	require.Len(t, movRepo.movements, 1)
	assert.Equal(t, "user-1", movRepo.movements[0].CreatedBy)
}

func TestRegisterMovement_SignoNormalizadoPorTipo(t *testing.T) {
	cases := []struct {
		name     string
		movType  string
		quantity string
		want     string // delta esperado con signo
	}{
		{"entrada absolutiza", entity.MovementTypeEntrada, "-3", "3"},
		{"salida siempre resta", entity.MovementTypeSalida, "3", "-3"},
		{"merma siempre resta", entity.MovementTypeMerma, "-2", "-2"},
		{"ajuste positivo respeta signo", entity.MovementTypeAjuste, "2.5", "2.5"},
		{"ajuste negativo respeta signo", entity.MovementTypeAjuste, "-1.5", "-1.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, _, _ := newInvFixture("10")
			out, err := uc.RegisterMovement(context.Background(), invBizID, "user-1", dto.RegisterMovementRequest{
				ItemID:   "i-harina",
				Type:     tc.movType,
				Quantity: dec(tc.quantity),
			})
			require.NoError(t, err)
			assert.True(t, dec(tc.want).Equal(out.Quantity),
				"delta esperado %s, fue %s", tc.want, out.Quantity)
			assert.True(t, out.StockBefore.Add(out.Quantity).Equal(out.StockAfter),
				"StockAfter == StockBefore + Quantity")
		})
	}
}

func TestRegisterMovement_StockInsuficiente_NoEscribeNada(t *testing.T) {
	uc, itemRepo, movRepo := newInvFixture("2")

	_, err := uc.RegisterMovement(context.Background(), invBizID, "user-1", dto.RegisterMovementRequest{
		ItemID:   "i-harina",
		Type:     entity.MovementTypeSalida,
		Quantity: dec("3"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, _ := itemRepo.GetByID("i-harina")
	assert.True(t, dec("2").Equal(stored.CurrentStock), "el stock no se toca")
	assert.Empty(t, movRepo.movements, "no se escribe fila en el libro")
	assert.Zero(t, itemRepo.stockUpdates)
}

func TestRegisterMovement_SalidaHastaCero_Permitida(t *testing.T) {
	uc, itemRepo, _ := newInvFixture("3")

	out, err := uc.RegisterMovement(context.Background(), invBizID, "user-1", dto.RegisterMovementRequest{
		ItemID:   "i-harina",
		Type:     entity.MovementTypeSalida,
		Quantity: dec("3"),
	})
	require.NoError(t, err, "llegar exactamente a cero es válido")
	assert.True(t, out.StockAfter.IsZero())

	stored, _ := itemRepo.GetByID("i-harina")
	assert.True(t, stored.CurrentStock.IsZero())
}

func TestRegisterMovement_CantidadCero_Rechazada(t *testing.T) {
	uc, _, _ := newInvFixture("10")
	_, err := uc.RegisterMovement(context.Background(), invBizID, "user-1", dto.RegisterMovementRequest{
		ItemID:   "i-harina",
		Type:     entity.MovementTypeEntrada,
		Quantity: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_TipoInvalido_Rechazado(t *testing.T) {
	uc, _, _ := newInvFixture("10")
	_, err := uc.RegisterMovement(context.Background(), invBizID, "user-1", dto.RegisterMovementRequest{
		ItemID:   "i-harina",
		Type:     "devolucion",
		Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_ItemDeOtroNegocio_Prohibido(t *testing.T) {
	uc, _, _ := newInvFixture("10")
	_, err := uc.RegisterMovement(context.Background(), "biz-ajeno", "user-1", dto.RegisterMovementRequest{
		ItemID:   "i-harina",
		Type:     entity.MovementTypeEntrada,
		Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateItem / UpdateItem
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateItem_NaceConStockCero(t *testing.T) {
	uc, _, _ := newInvFixture("0")

	out, err := uc.CreateItem(context.Background(), invBizID, dto.CreateInventoryItemRequest{
		Name:     "Queso costeño",
		Unit:     "kg",
		MinStock: dec("2"),
	})
	require.NoError(t, err)
	assert.True(t, out.CurrentStock.IsZero(), "el stock inicial entra como movimiento, no como campo")
	assert.True(t, out.Active)
	assert.True(t, out.LowStock, "0 < mínimo 2")
}

func TestCreateItem_MinimoNegativo_Rechazado(t *testing.T) {
	uc, _, _ := newInvFixture("0")
	_, err := uc.CreateItem(context.Background(), invBizID, dto.CreateInventoryItemRequest{
		Name:     "Queso",
		Unit:     "kg",
		MinStock: dec("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateItem_NoPuedeTocarElStock(t *testing.T) {
	uc, itemRepo, _ := newInvFixture("10")

	name := "Harina precocida"
	minStock := dec("8")
	out, err := uc.UpdateItem(context.Background(), invBizID, "i-harina", dto.UpdateInventoryItemRequest{
		Name:     &name,
		MinStock: &minStock,
	})
	require.NoError(t, err)
	assert.Equal(t, "Harina precocida", out.Name)

	stored, _ := itemRepo.GetByID("i-harina")
	assert.True(t, dec("10").Equal(stored.CurrentStock), "editar metadatos no cambia el stock")
	assert.True(t, dec("8").Equal(stored.MinStock))
}

// ──────────────────────────────────────────────────────────────────────────────
// Low stock
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStockItems_SoloBajoElMinimoYActivos(t *testing.T) {
	uc, itemRepo, _ := newInvFixture("3") // 3 < mínimo 5
	itemRepo.items["i-ok"] = &entity.InventoryItem{
		ID: "i-ok", BusinessID: invBizID, Name: "Aceite", Unit: "lt",
		CurrentStock: dec("9"), MinStock: dec("5"), Active: true,
	}
	itemRepo.items["i-off"] = &entity.InventoryItem{
		ID: "i-off", BusinessID: invBizID, Name: "Retirado", Unit: "und",
		CurrentStock: dec("0"), MinStock: dec("5"), Active: false,
	}

	out, err := uc.LowStockItems(context.Background(), invBizID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "i-harina", out[0].ID)
	assert.True(t, out[0].LowStock)
}

// En el límite exacto el ítem no está bajo mínimo (LessThan, no LessThanOrEqual).
func TestLowStock_EnElMinimoExactoNoAlerta(t *testing.T) {
	uc, _, _ := newInvFixture("5")
	out, err := uc.LowStockItems(context.Background(), invBizID)
	require.NoError(t, err)
	assert.Empty(t, out)
}
