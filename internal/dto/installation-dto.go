package dto

import "github.com/aarondl/null/v8"

type CreateInstallationDTO struct {
	Name          string       `json:"name" validate:"required"`
	Priority      string       `json:"priority" validate:"required,priority"`
	Status        string       `json:"status" validate:"omitempty,lifecycle_status"`
	CapacityKW    null.Float64 `json:"capacity_kw"`
	TotalCost     null.Float64 `json:"total_cost"`
	PaidAmount    null.Float64 `json:"paid_amount"`
	ResponsibleID null.Int64   `json:"responsible_id"`
	ClientID      uint64       `json:"client_id" validate:"required"`
}

type UpdateInstallationDTO struct {
	Name          *string      `json:"name"`
	Priority      *string      `json:"priority" validate:"omitempty,priority"`
	Status        *string      `json:"status" validate:"omitempty,lifecycle_status"`
	CurrentStage  null.String  `json:"current_stage"`
	CapacityKW    null.Float64 `json:"capacity_kw"`
	TotalCost     null.Float64 `json:"total_cost"`
	PaidAmount    null.Float64 `json:"paid_amount"`
	ResponsibleID null.Int64   `json:"responsible_id"`
}

type InstallationResponseDTO struct {
	ID              uint64   `json:"id"`
	Name            string   `json:"name"`
	Priority        string   `json:"priority"`
	Status          string   `json:"status"`
	CurrentStage    *string  `json:"current_stage,omitempty"`
	StageLabel      string   `json:"stage_label,omitempty"`
	CapacityKW      *float64 `json:"capacity_kw,omitempty"`
	TotalCost       *float64 `json:"total_cost,omitempty"`
	PaidAmount      *float64 `json:"paid_amount,omitempty"`
	ResponsibleID   *uint64  `json:"responsible_id,omitempty"`
	ResponsibleName *string  `json:"responsible_name,omitempty"`
	ClientID        uint64   `json:"client_id"`
	ClientName      *string  `json:"client_name,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at,omitempty"`
}
