package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/comandapos/comanda-api/internal/application/business"
	"github.com/comandapos/comanda-api/internal/domain"
	"github.com/comandapos/comanda-api/pkg/config"
)

var _ business.LogoStore = (*LocalLogoStore)(nil)

// Extensiones de imagen aceptadas para el logo.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// LocalLogoStore guarda logos en disco local bajo un directorio por negocio y los
// expone vía la URL pública configurada (el router sirve el directorio como estático).
type LocalLogoStore struct {
	dir           string
	publicBaseURL string
	maxSize       int64
}

// NewLocalLogoStore construye el almacenamiento de logos.
func NewLocalLogoStore(cfg config.StorageConfig) *LocalLogoStore {
	return &LocalLogoStore{
		dir:           cfg.Dir,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		maxSize:       cfg.MaxUploadSize,
	}
}

// SaveLogo valida tamaño y extensión, escribe el archivo y devuelve la URL pública.
// El nombre en disco es fijo por negocio (logo.<ext>): subir de nuevo reemplaza.
func (s *LocalLogoStore) SaveLogo(businessID, filename string, r io.Reader, size int64) (string, error) {
	if size <= 0 || size > s.maxSize {
		return "", domain.ErrInvalidInput
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", domain.ErrInvalidInput
	}

	businessDir := filepath.Join(s.dir, businessID)
	if err := os.MkdirAll(businessDir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de logos: %w", err)
	}

	path := filepath.Join(businessDir, "logo"+ext)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("crear archivo de logo: %w", err)
	}
	defer f.Close()

	// LimitReader corta en maxSize+1 para detectar un body más grande de lo declarado.
	written, err := io.Copy(f, io.LimitReader(r, s.maxSize+1))
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("escribir logo: %w", err)
	}
	if written > s.maxSize {
		_ = os.Remove(path)
		return "", domain.ErrInvalidInput
	}

	return fmt.Sprintf("%s/%s/logo%s", s.publicBaseURL, businessID, ext), nil
}
