package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin  = "admin"
	RoleMesero = "mesero"
)

// User representa un miembro del personal del negocio.
type User struct {
	ID           string
	BusinessID   string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, mesero
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
