package catalog

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

// CatalogUseCase CRUD del menú: categorías y productos. Todo borrado es lógico
// (active=false) para no dejar huérfanas las líneas de comandas históricas.
type CatalogUseCase struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{categoryRepo: categoryRepo, productRepo: productRepo}
}

// ── Categorías ────────────────────────────────────────────────────────────────

// CreateCategory crea una categoría del menú.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, businessID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	cat := &entity.Category{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		Name:       in.Name,
		Icon:       in.Icon,
		Color:      in.Color,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.categoryRepo.Create(cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// ListCategories lista las categorías activas del negocio.
func (uc *CatalogUseCase) ListCategories(ctx context.Context, businessID string) ([]dto.CategoryResponse, error) {
	list, err := uc.categoryRepo.ListByBusiness(businessID, true)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// UpdateCategory modifica nombre o metadatos de presentación.
func (uc *CatalogUseCase) UpdateCategory(ctx context.Context, businessID, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	cat, err := uc.categoryRepo.GetByID(id)
	if err != nil || cat == nil {
		return nil, domain.ErrNotFound
	}
	if cat.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		cat.Name = *in.Name
	}
	if in.Icon != nil {
		cat.Icon = *in.Icon
	}
	if in.Color != nil {
		cat.Color = *in.Color
	}
	cat.UpdatedAt = time.Now()
	if err := uc.categoryRepo.Update(cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// DeleteCategory desactiva la categoría. Se rechaza con ErrCategoryInUse si aún
// tiene productos activos asociados; no se escribe nada en ese caso.
func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, businessID, id string) error {
	cat, err := uc.categoryRepo.GetByID(id)
	if err != nil || cat == nil {
		return domain.ErrNotFound
	}
	if cat.BusinessID != businessID {
		return domain.ErrForbidden
	}
	count, err := uc.categoryRepo.CountActiveProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCategoryInUse
	}
	return uc.categoryRepo.SoftDelete(id)
}

// ── Productos ─────────────────────────────────────────────────────────────────

// CreateProduct crea un producto del menú dentro de una categoría activa.
func (uc *CatalogUseCase) CreateProduct(ctx context.Context, businessID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.CategoryID == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	cat, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil || cat == nil {
		return nil, domain.ErrNotFound
	}
	if cat.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		CategoryID: in.CategoryID,
		Name:       in.Name,
		Price:      in.Price,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProduct obtiene un producto por ID.
func (uc *CatalogUseCase) GetProduct(ctx context.Context, businessID, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	return toProductResponse(product), nil
}

// ListProducts lista productos del negocio con paginación.
func (uc *CatalogUseCase) ListProducts(ctx context.Context, businessID string, onlyActive bool, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.productRepo.ListByBusiness(businessID, onlyActive, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// UpdateProduct modifica un producto. Cambiar el precio no afecta comandas ya
// tomadas: cada línea capturó su precio al venderse.
func (uc *CatalogUseCase) UpdateProduct(ctx context.Context, businessID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	if in.CategoryID != nil {
		cat, err := uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil || cat == nil || cat.BusinessID != businessID {
			return nil, domain.ErrNotFound
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// DeleteProduct desactiva el producto (soft delete).
func (uc *CatalogUseCase) DeleteProduct(ctx context.Context, businessID, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil || product == nil {
		return domain.ErrNotFound
	}
	if product.BusinessID != businessID {
		return domain.ErrForbidden
	}
	return uc.productRepo.SoftDelete(id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Icon:      c.Icon,
		Color:     c.Color,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:         p.ID,
		CategoryID: p.CategoryID,
		Name:       p.Name,
		Price:      p.Price,
		Active:     p.Active,
		CreatedAt:  p.CreatedAt,
	}
}
