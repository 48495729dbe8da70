package dto

import "github.com/aarondl/null/v8"

type CreateMicrotaskDTO struct {
	Title          string    `json:"title" validate:"required"`
	InstallationID null.Int64 `json:"installation_id"`
	AssigneeID     uint64    `json:"assignee_id" validate:"required"`
	DueDate        null.Time `json:"due_date"`
}

type UpdateMicrotaskDTO struct {
	Title      *string   `json:"title"`
	AssigneeID *uint64   `json:"assignee_id"`
	DueDate    null.Time `json:"due_date"`
	IsDone     *bool     `json:"is_done"`
}

type MicrotaskResponseDTO struct {
	ID               uint64  `json:"id"`
	Title            string  `json:"title"`
	InstallationID   *uint64 `json:"installation_id,omitempty"`
	InstallationName *string `json:"installation_name,omitempty"`
	AssigneeID       uint64  `json:"assignee_id"`
	DueDate          string  `json:"due_date,omitempty"`
	IsDone           bool    `json:"is_done"`
	CreatedAt        string  `json:"created_at"`
}
