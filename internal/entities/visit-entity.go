package entities

import "time"

type Visit struct {
	ID             uint64    `json:"id"`
	InstallationID uint64    `json:"installation_id"`
	EmployeeID     uint64    `json:"employee_id"`
	VisitDate      time.Time `json:"visit_date"`
	VisitType      string    `json:"visit_type"`
	Note           *string   `json:"note"`
	IsDone         bool      `json:"is_done"`
	CreatedAt      time.Time `json:"created_at"`

	InstallationName *string `json:"installation_name,omitempty"`
	EmployeeName     *string `json:"employee_name,omitempty"`
}
