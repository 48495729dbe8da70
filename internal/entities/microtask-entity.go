package entities

import "time"

type Microtask struct {
	ID             uint64     `json:"id"`
	Title          string     `json:"title"`
	InstallationID *uint64    `json:"installation_id"`
	AssigneeID     uint64     `json:"assignee_id"`
	DueDate        *time.Time `json:"due_date"`
	IsDone         bool       `json:"is_done"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`

	InstallationName *string `json:"installation_name,omitempty"`
}
