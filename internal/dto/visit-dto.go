package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type CreateVisitDTO struct {
	InstallationID uint64      `json:"installation_id" validate:"required"`
	EmployeeID     uint64      `json:"employee_id" validate:"required"`
	VisitDate      time.Time   `json:"visit_date" validate:"required"`
	VisitType      string      `json:"visit_type" validate:"required,oneof=site_survey installation maintenance warranty"`
	Note           null.String `json:"note"`
}

type UpdateVisitDTO struct {
	VisitDate *time.Time  `json:"visit_date"`
	VisitType *string     `json:"visit_type" validate:"omitempty,oneof=site_survey installation maintenance warranty"`
	Note      null.String `json:"note"`
	IsDone    *bool       `json:"is_done"`
}

type VisitResponseDTO struct {
	ID               uint64  `json:"id"`
	InstallationID   uint64  `json:"installation_id"`
	InstallationName *string `json:"installation_name,omitempty"`
	EmployeeID       uint64  `json:"employee_id"`
	EmployeeName     *string `json:"employee_name,omitempty"`
	VisitDate        string  `json:"visit_date"`
	VisitType        string  `json:"visit_type"`
	Note             *string `json:"note,omitempty"`
	IsDone           bool    `json:"is_done"`
	CreatedAt        string  `json:"created_at"`
}
