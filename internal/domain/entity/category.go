package entity

import "time"

// Category agrupa productos del menú. Icon y Color son metadatos de presentación.
// Se desactiva con Active=false (soft delete) para no romper el historial de comandas.
type Category struct {
	ID         string
	BusinessID string
	Name       string
	Icon       string
	Color      string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
