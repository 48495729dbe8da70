package entities

import "time"

// Статусы закупки. Совпадают с CHECK-ограничением в БД.
const (
	EquipmentDraft     = "draft"
	EquipmentOrdered   = "ordered"
	EquipmentInTransit = "in_transit"
	EquipmentReceived  = "received"
	EquipmentCancelled = "cancelled"
)

type EquipmentOrder struct {
	ID             uint64     `json:"id"`
	InstallationID uint64     `json:"installation_id"`
	Name           string     `json:"name"`
	Quantity       int        `json:"quantity"`
	Supplier       *string    `json:"supplier"`
	Status         string     `json:"status"`
	OrderedAt      *time.Time `json:"ordered_at"`
	ExpectedAt     *time.Time `json:"expected_at"`
	ReceivedAt     *time.Time `json:"received_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}
