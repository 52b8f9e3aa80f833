package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comandapos/comanda-api/internal/application/dto"
	"github.com/comandapos/comanda-api/internal/domain"
	"github.com/comandapos/comanda-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCategoryRepo struct {
	categories     map[string]*entity.Category
	activeProducts map[string]int // categoryID -> conteo
	softDeleted    []string
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories:     make(map[string]*entity.Category),
		activeProducts: make(map[string]int),
	}
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) ListByBusiness(businessID string, onlyActive bool) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		if c.BusinessID != businessID || (onlyActive && !c.Active) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) CountActiveProducts(categoryID string) (int, error) {
	return r.activeProducts[categoryID], nil
}

func (r *fakeCategoryRepo) SoftDelete(id string) error {
	c, ok := r.categories[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Active = false
	r.softDeleted = append(r.softDeleted, id)
	return nil
}

type fakeProductStore struct {
	products map[string]*entity.Product
}

func (r *fakeProductStore) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductStore) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductStore) ListByBusiness(businessID string, onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.BusinessID != businessID || (onlyActive && !p.Active) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductStore) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductStore) SoftDelete(id string) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Active = false
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const catBizID = "biz-1"

func newCatalogFixture() (*CatalogUseCase, *fakeCategoryRepo, *fakeProductStore) {
	catRepo := newFakeCategoryRepo()
	catRepo.categories["c-platos"] = &entity.Category{
		ID: "c-platos", BusinessID: catBizID, Name: "Platos fuertes", Active: true,
	}
	prodRepo := &fakeProductStore{products: map[string]*entity.Product{
		"p-bandeja": {
			ID: "p-bandeja", BusinessID: catBizID, CategoryID: "c-platos",
			Name: "Bandeja paisa", Price: decimal.NewFromInt(28000), Active: true,
		},
	}}
	return NewCatalogUseCase(catRepo, prodRepo), catRepo, prodRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Guardia de borrado de categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteCategory_ConProductosActivos_Rechazada(t *testing.T) {
	uc, catRepo, _ := newCatalogFixture()
	catRepo.activeProducts["c-platos"] = 3

	err := uc.DeleteCategory(context.Background(), catBizID, "c-platos")
	assert.ErrorIs(t, err, domain.ErrCategoryInUse)
	assert.Empty(t, catRepo.softDeleted, "la categoría no se toca")

	stored, _ := catRepo.GetByID("c-platos")
	assert.True(t, stored.Active)
}

func TestDeleteCategory_SinProductosActivos_Desactivada(t *testing.T) {
	uc, catRepo, _ := newCatalogFixture()
	catRepo.activeProducts["c-platos"] = 0

	err := uc.DeleteCategory(context.Background(), catBizID, "c-platos")
	require.NoError(t, err)
	assert.Equal(t, []string{"c-platos"}, catRepo.softDeleted)

	stored, _ := catRepo.GetByID("c-platos")
	assert.False(t, stored.Active, "borrado lógico, la fila sigue existiendo")
}

func TestDeleteCategory_DeOtroNegocio_Prohibida(t *testing.T) {
	uc, _, _ := newCatalogFixture()
	err := uc.DeleteCategory(context.Background(), "biz-ajeno", "c-platos")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_EnCategoriaDeOtroNegocio_Prohibido(t *testing.T) {
	uc, _, _ := newCatalogFixture()
	_, err := uc.CreateProduct(context.Background(), "biz-ajeno", dto.CreateProductRequest{
		CategoryID: "c-platos",
		Name:       "Ajiaco",
		Price:      decimal.NewFromInt(22000),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateProduct_PrecioNegativo_Rechazado(t *testing.T) {
	uc, _, _ := newCatalogFixture()
	_, err := uc.CreateProduct(context.Background(), catBizID, dto.CreateProductRequest{
		CategoryID: "c-platos",
		Name:       "Ajiaco",
		Price:      decimal.NewFromInt(-100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateProduct_ActualizacionParcial(t *testing.T) {
	uc, _, prodRepo := newCatalogFixture()

	newPrice := decimal.NewFromInt(30000)
	out, err := uc.UpdateProduct(context.Background(), catBizID, "p-bandeja", dto.UpdateProductRequest{
		Price: &newPrice,
	})
	require.NoError(t, err)

	assert.True(t, newPrice.Equal(out.Price))
	assert.Equal(t, "Bandeja paisa", out.Name, "los campos no enviados no cambian")

	stored, _ := prodRepo.GetByID("p-bandeja")
	assert.Equal(t, "c-platos", stored.CategoryID)
}

func TestUpdateProduct_NombreVacio_Rechazado(t *testing.T) {
	uc, _, _ := newCatalogFixture()
	empty := ""
	_, err := uc.UpdateProduct(context.Background(), catBizID, "p-bandeja", dto.UpdateProductRequest{
		Name: &empty,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteProduct_EsBorradoLogico(t *testing.T) {
	uc, _, prodRepo := newCatalogFixture()

	require.NoError(t, uc.DeleteProduct(context.Background(), catBizID, "p-bandeja"))

	stored, _ := prodRepo.GetByID("p-bandeja")
	require.NotNil(t, stored, "la fila queda para las líneas históricas")
	assert.False(t, stored.Active)
}
