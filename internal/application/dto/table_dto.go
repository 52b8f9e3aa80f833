package dto

import "time"

// CreateTableRequest alta de mesa / slot de atención.
// Type es opcional: si viene vacío se deriva una sola vez del nombre
// ("domicilio" -> delivery, "llevar" -> takeout, si no dine_in).
type CreateTableRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
}

// UpdateTableRequest campos opcionales a modificar.
type UpdateTableRequest struct {
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	Capacity *int    `json:"capacity"`
	Active   *bool   `json:"active"`
}

// TableResponse mesa / slot de atención.
type TableResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Capacity  int       `json:"capacity"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
