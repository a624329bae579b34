package domain

import "time"

// Operator é quem vende vouchers em uma localidade
type Operator struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"fullName"`
	LocationID   string    `json:"locationId"`
	LocationName string    `json:"locationName"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UpdateOperatorRequest permite atualização parcial de um operador
type UpdateOperatorRequest struct {
	ID         string  `json:"id"`
	FullName   *string `json:"fullName"`
	LocationID *string `json:"locationId"`
	Active     *bool   `json:"active"`
}
