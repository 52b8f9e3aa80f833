package entity

import "time"

// Business representa un negocio (restaurante); todas las entidades se aíslan por BusinessID.
type Business struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	LogoURL   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
