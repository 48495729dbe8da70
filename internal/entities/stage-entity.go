package entities

import (
	"time"

	"github.com/google/uuid"
)

// StageRecord - текущее состояние одного этапа объекта.
// Пара (installation_id, stage_key) уникальна.
type StageRecord struct {
	ID             uint64    `json:"id"`
	InstallationID uint64    `json:"installation_id"`
	StageKey       string    `json:"stage_key"`
	Status         string    `json:"status"`
	ResponsibleID  *uint64   `json:"responsible_id"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// StageEvent - неизменяемая запись журнала изменений этапа.
type StageEvent struct {
	ID               uint64     `json:"id"`
	InstallationID   uint64     `json:"installation_id"`
	StageKey         string     `json:"stage_key"`
	OldStatus        *string    `json:"old_status"`
	NewStatus        *string    `json:"new_status"`
	OldResponsibleID *uint64    `json:"old_responsible_id"`
	NewResponsibleID *uint64    `json:"new_responsible_id"`
	Comment          *string    `json:"comment"`
	Photos           []string   `json:"photos"`
	PhotoFileIDs     []string   `json:"photo_file_ids"`
	ActorName        string     `json:"actor_name"`
	BatchUID         *uuid.UUID `json:"batch_uid"`
	CreatedAt        time.Time  `json:"created_at"`
}
