package dto

import "github.com/aarondl/null/v8"

type CreateEquipmentOrderDTO struct {
	InstallationID uint64      `json:"installation_id" validate:"required"`
	Name           string      `json:"name" validate:"required"`
	Quantity       int         `json:"quantity" validate:"required,min=1"`
	Supplier       null.String `json:"supplier"`
	ExpectedAt     null.Time   `json:"expected_at"`
}

type UpdateEquipmentOrderDTO struct {
	Name       *string     `json:"name"`
	Quantity   *int        `json:"quantity" validate:"omitempty,min=1"`
	Supplier   null.String `json:"supplier"`
	Status     *string     `json:"status" validate:"omitempty,oneof=draft ordered in_transit received cancelled"`
	OrderedAt  null.Time   `json:"ordered_at"`
	ExpectedAt null.Time   `json:"expected_at"`
	ReceivedAt null.Time   `json:"received_at"`
}

type EquipmentOrderResponseDTO struct {
	ID             uint64  `json:"id"`
	InstallationID uint64  `json:"installation_id"`
	Name           string  `json:"name"`
	Quantity       int     `json:"quantity"`
	Supplier       *string `json:"supplier,omitempty"`
	Status         string  `json:"status"`
	OrderedAt      string  `json:"ordered_at,omitempty"`
	ExpectedAt     string  `json:"expected_at,omitempty"`
	ReceivedAt     string  `json:"received_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
}
