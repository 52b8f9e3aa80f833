package business

import (
	"context"
	"io"
	"time"

	"github.com/comandapos/comanda-api/internal/application/dto"
	"github.com/comandapos/comanda-api/internal/domain"
	"github.com/comandapos/comanda-api/internal/domain/entity"
	"github.com/comandapos/comanda-api/internal/domain/repository"
)

// LogoStore almacena el logo del negocio y devuelve su URL pública.
// La validación de tamaño y formato vive en el adaptador de almacenamiento.
type LogoStore interface {
	SaveLogo(businessID, filename string, r io.Reader, size int64) (string, error)
}

// BusinessUseCase perfil del negocio: datos de contacto y logo del ticket.
type BusinessUseCase struct {
	repo  repository.BusinessRepository
	logos LogoStore
}

// NewBusinessUseCase construye el caso de uso.
func NewBusinessUseCase(repo repository.BusinessRepository, logos LogoStore) *BusinessUseCase {
	return &BusinessUseCase{repo: repo, logos: logos}
}

// Get devuelve el perfil del negocio.
func (uc *BusinessUseCase) Get(ctx context.Context, businessID string) (*dto.BusinessResponse, error) {
	b, err := uc.repo.GetByID(businessID)
	if err != nil || b == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(b), nil
}

// Update modifica nombre, dirección o teléfono del negocio.
func (uc *BusinessUseCase) Update(ctx context.Context, businessID string, in dto.UpdateBusinessRequest) (*dto.BusinessResponse, error) {
	b, err := uc.repo.GetByID(businessID)
	if err != nil || b == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		b.Name = *in.Name
	}
	if in.Address != nil {
		b.Address = *in.Address
	}
	if in.Phone != nil {
		b.Phone = *in.Phone
	}
	b.UpdatedAt = time.Now()
	if err := uc.repo.Update(b); err != nil {
		return nil, err
	}
	return toResponse(b), nil
}

// UploadLogo guarda el logo en el almacenamiento y persiste su URL pública.
func (uc *BusinessUseCase) UploadLogo(ctx context.Context, businessID, filename string, r io.Reader, size int64) (*dto.BusinessResponse, error) {
	b, err := uc.repo.GetByID(businessID)
	if err != nil || b == nil {
		return nil, domain.ErrNotFound
	}
	logoURL, err := uc.logos.SaveLogo(businessID, filename, r, size)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateLogoURL(businessID, logoURL); err != nil {
		return nil, err
	}
	b.LogoURL = logoURL
	return toResponse(b), nil
}

func toResponse(b *entity.Business) *dto.BusinessResponse {
	return &dto.BusinessResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		LogoURL:   b.LogoURL,
		CreatedAt: b.CreatedAt,
	}
}
