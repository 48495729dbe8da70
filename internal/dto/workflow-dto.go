package dto

import "solar-crm/internal/workflow"

// QuickUpdateDTO - одна пользовательская правка этапа. Приходит как
// multipart-форма (поля + файлы), файлы контроллер передаёт отдельно.
type QuickUpdateDTO struct {
	NewStatus        string  `form:"new_status" validate:"required"`
	Comment          string  `form:"comment"`
	ResponsibleID    *uint64 `form:"responsible_id"`
	SetAsGlobalStage bool    `form:"set_as_global_stage"`
}

// QuickUpdateResultDTO отдаётся клиенту для оптимистичного обновления
// списка: завершённые или переназначенные записи убираются сразу,
// не дожидаясь повторной загрузки.
type QuickUpdateResultDTO struct {
	InstallationID uint64   `json:"installation_id"`
	StageKey       string   `json:"stage_key"`
	NewStatus      string   `json:"new_status"`
	StatusLabel    string   `json:"status_label"`
	StatusColor    string   `json:"status_color"`
	ResponsibleID  *uint64  `json:"responsible_id"`
	Completed      bool     `json:"completed"`
	Reassigned     bool     `json:"reassigned"`
	Photos         []string `json:"photos"`
	PhotoFileIDs   []string `json:"photo_file_ids"`
	Atomic         bool     `json:"-"`
}

// ActiveStageDTO - строка списка "мої активні етапи".
type ActiveStageDTO struct {
	InstallationID   uint64  `json:"installation_id"`
	InstallationName string  `json:"installation_name"`
	ClientName       string  `json:"client_name"`
	StageKey         string  `json:"stage_key"`
	StageLabel       string  `json:"stage_label"`
	Status           string  `json:"status"`
	StatusLabel      string  `json:"status_label"`
	StatusColor      string  `json:"status_color"`
	ResponsibleID    *uint64 `json:"responsible_id"`
	UpdatedAt        string  `json:"updated_at"`
}

// ActiveStageGroupDTO - записи, сгруппированные по этапу в порядке воронки.
type ActiveStageGroupDTO struct {
	StageKey   string           `json:"stage_key"`
	StageLabel string           `json:"stage_label"`
	Records    []ActiveStageDTO `json:"records"`
}

// TransitionDTO - переход "було -> стало"; рендерится только когда
// значения различаются.
type TransitionDTO struct {
	Old      string `json:"old"`
	New      string `json:"new"`
	OldLabel string `json:"old_label"`
	NewLabel string `json:"new_label"`
}

type EventPhotoDTO struct {
	Link   string `json:"link"`
	FileID string `json:"file_id"`
}

// TimelineEventDTO - одно событие журнала этапа для отображения.
type TimelineEventDTO struct {
	ID                uint64          `json:"id"`
	StatusChange      *TransitionDTO  `json:"status_change,omitempty"`
	ResponsibleChange *TransitionDTO  `json:"responsible_change,omitempty"`
	Comment           *string         `json:"comment,omitempty"`
	Photos            []EventPhotoDTO `json:"photos"`
	ActorName         string          `json:"actor_name"`
	CreatedAt         string          `json:"created_at"`
}

// StageBoardItemDTO - одна строка доски этапов объекта. Этапы без
// сохранённой записи показываются со стартовым статусом "waiting".
type StageBoardItemDTO struct {
	StageKey      string  `json:"stage_key"`
	StageLabel    string  `json:"stage_label"`
	Status        string  `json:"status"`
	StatusLabel   string  `json:"status_label"`
	StatusColor   string  `json:"status_color"`
	Completed     bool    `json:"completed"`
	ResponsibleID *uint64 `json:"responsible_id"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
}

// StageStatusOptionsDTO - словарь статусов этапа для выпадающего списка.
type StageStatusOptionsDTO struct {
	StageKey   string                  `json:"stage_key"`
	StageLabel string                  `json:"stage_label"`
	Group      string                  `json:"group"`
	Options    []workflow.StatusOption `json:"options"`
}
