package websocket

import "time"

// Envelope - "конверт" для всех исходящих сообщений. Тип подсказывает
// фронтенду, какой список нужно перезагрузить.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	// TypeStageUpdated - изменилась запись этапа, за которую отвечает получатель.
	TypeStageUpdated = "stage_updated"
)

// StageUpdatePayload - уведомление об изменении записи этапа.
// Клиент в ответ перезагружает свой список активных этапов.
type StageUpdatePayload struct {
	InstallationID uint64 `json:"installation_id"`
	StageKey       string `json:"stage_key"`
	NewStatus      string `json:"new_status"`
	Completed      bool   `json:"completed"`
	Reassigned     bool   `json:"reassigned"`
}
