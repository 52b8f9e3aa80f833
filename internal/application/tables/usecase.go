package tables

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/comandapos/comanda-api/internal/application/dto"
	"github.com/comandapos/comanda-api/internal/domain"
	"github.com/comandapos/comanda-api/internal/domain/entity"
	"github.com/comandapos/comanda-api/internal/domain/repository"
)

// TableUseCase registro de mesas y slots de atención (domicilio, para llevar).
type TableUseCase struct {
	repo repository.TableRepository
}

// NewTableUseCase construye el caso de uso.
func NewTableUseCase(repo repository.TableRepository) *TableUseCase {
	return &TableUseCase{repo: repo}
}

// Create crea una mesa. El tipo queda explícito desde la creación: si el request no
// lo trae, se deriva una única vez del nombre (compatibilidad con datos donde el
// nombre codificaba el tipo); las lecturas jamás vuelven a mirar el nombre.
func (uc *TableUseCase) Create(ctx context.Context, businessID string, in dto.CreateTableRequest) (*dto.TableResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	tableType := in.Type
	if tableType == "" {
		tableType = entity.DeriveTableType(in.Name)
	} else if !entity.ValidTableType(tableType) {
		return nil, domain.ErrInvalidInput
	}
	if in.Capacity < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	table := &entity.Table{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		Name:       in.Name,
		Type:       tableType,
		Capacity:   in.Capacity,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(table); err != nil {
		return nil, err
	}
	return toResponse(table), nil
}

// List lista las mesas activas del negocio.
func (uc *TableUseCase) List(ctx context.Context, businessID string) ([]dto.TableResponse, error) {
	list, err := uc.repo.ListByBusiness(businessID, true)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TableResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toResponse(t))
	}
	return out, nil
}

// Update modifica una mesa. Renombrar no cambia el tipo: el tipo solo cambia si
// viene explícito en el request.
func (uc *TableUseCase) Update(ctx context.Context, businessID, id string, in dto.UpdateTableRequest) (*dto.TableResponse, error) {
	table, err := uc.repo.GetByID(id)
	if err != nil || table == nil {
		return nil, domain.ErrNotFound
	}
	if table.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		table.Name = *in.Name
	}
	if in.Type != nil {
		if !entity.ValidTableType(*in.Type) {
			return nil, domain.ErrInvalidInput
		}
		table.Type = *in.Type
	}
	if in.Capacity != nil {
		if *in.Capacity < 0 {
			return nil, domain.ErrInvalidInput
		}
		table.Capacity = *in.Capacity
	}
	if in.Active != nil {
		table.Active = *in.Active
	}
	table.UpdatedAt = time.Now()
	if err := uc.repo.Update(table); err != nil {
		return nil, err
	}
	return toResponse(table), nil
}

// Delete desactiva la mesa (soft delete); las comandas históricas la siguen referenciando.
func (uc *TableUseCase) Delete(ctx context.Context, businessID, id string) error {
	table, err := uc.repo.GetByID(id)
	if err != nil || table == nil {
		return domain.ErrNotFound
	}
	if table.BusinessID != businessID {
		return domain.ErrForbidden
	}
	return uc.repo.SoftDelete(id)
}

func toResponse(t *entity.Table) *dto.TableResponse {
	if t == nil {
		return nil
	}
	return &dto.TableResponse{
		ID:        t.ID,
		Name:      t.Name,
		Type:      t.Type,
		Capacity:  t.Capacity,
		Active:    t.Active,
		CreatedAt: t.CreatedAt,
	}
}
