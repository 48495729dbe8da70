package entities

import "time"

// Приоритеты и жизненный цикл объекта. Совпадают с CHECK-ограничениями в БД.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"

	InstallationPlanning   = "planning"
	InstallationInProgress = "in_progress"
	InstallationOnHold     = "on_hold"
	InstallationCompleted  = "completed"
	InstallationCancelled  = "cancelled"
)

type Installation struct {
	ID            uint64     `json:"id"`
	Name          string     `json:"name"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	CurrentStage  *string    `json:"current_stage"`
	CapacityKW    *float64   `json:"capacity_kw"`
	TotalCost     *float64   `json:"total_cost"`
	PaidAmount    *float64   `json:"paid_amount"`
	ResponsibleID *uint64    `json:"responsible_id"`
	ClientID      uint64     `json:"client_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`

	// Заполняются JOIN-ом в списках
	ClientName      *string `json:"client_name,omitempty"`
	ResponsibleName *string `json:"responsible_name,omitempty"`
}
