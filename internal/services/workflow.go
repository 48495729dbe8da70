package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"solar-crm/internal/dto"
	"solar-crm/internal/entities"
	"solar-crm/internal/repositories"
	"solar-crm/internal/workflow"
	"solar-crm/pkg/docstore"
	apperrors "solar-crm/pkg/errors"
	"solar-crm/pkg/types"
	ws "solar-crm/pkg/websocket"

	"github.com/jackc/pgx/v5"
)

const (
	activeStagesKeyFmt = "active_stages:%d"
	activeStagesTTL    = 2 * time.Minute

	workflowDocType = "workflow"
)

// WorkflowUploader - часть клиента сервиса документов, нужная быстрому
// обновлению. Сужен до одного метода ради подмены в тестах.
type WorkflowUploader interface {
	WorkflowUpload(ctx context.Context, files []docstore.FilePart, objectNumber uint64, docType, stageKey string) ([]docstore.UploadedFile, error)
}

// StageNotifier рассылает realtime-уведомления об изменении этапов.
type StageNotifier interface {
	SendToEmployee(employeeID uint64, payload interface{}, messageType string) error
}

type WorkflowServiceInterface interface {
	QuickUpdate(ctx context.Context, session *types.Session, installationID uint64, stageKey string, payload dto.QuickUpdateDTO, files []docstore.FilePart) (*dto.QuickUpdateResultDTO, error)
	ActiveStages(ctx context.Context, employeeID uint64, search string) ([]dto.ActiveStageGroupDTO, error)
	StageBoard(ctx context.Context, installationID uint64) ([]dto.StageBoardItemDTO, error)
	StatusOptionsForStage(ctx context.Context, installationID uint64, stageKey string) (*dto.StageStatusOptionsDTO, error)
}

type WorkflowService struct {
	stageRepo        repositories.StageRepositoryInterface
	eventRepo        repositories.StageEventRepositoryInterface
	installationRepo repositories.InstallationRepositoryInterface
	employeeRepo     repositories.EmployeeRepositoryInterface
	cacheRepo        repositories.CacheRepositoryInterface
	txManager        repositories.TxManagerInterface
	uploader         WorkflowUploader
	notifier         StageNotifier
	logger           *zap.Logger
}

func NewWorkflowService(
	stageRepo repositories.StageRepositoryInterface,
	eventRepo repositories.StageEventRepositoryInterface,
	installationRepo repositories.InstallationRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	txManager repositories.TxManagerInterface,
	uploader WorkflowUploader,
	notifier StageNotifier,
	logger *zap.Logger,
) WorkflowServiceInterface {
	return &WorkflowService{
		stageRepo:        stageRepo,
		eventRepo:        eventRepo,
		installationRepo: installationRepo,
		employeeRepo:     employeeRepo,
		cacheRepo:        cacheRepo,
		txManager:        txManager,
		uploader:         uploader,
		notifier:         notifier,
		logger:           logger,
	}
}

// QuickUpdate - одна атомарная правка этапа: статус, ответственный,
// комментарий и фотографии за один вызов.
func (s *WorkflowService) QuickUpdate(
	ctx context.Context,
	session *types.Session,
	installationID uint64,
	stageKey string,
	payload dto.QuickUpdateDTO,
	files []docstore.FilePart,
) (*dto.QuickUpdateResultDTO, error) {
	logger := s.logger.With(
		zap.Uint64("installation_id", installationID),
		zap.String("stage_key", stageKey),
		zap.Uint64("actor_id", session.EmployeeID),
	)

	// Объект должен существовать: этап создаётся неявно, объект - нет.
	if _, err := s.installationRepo.FindInstallation(ctx, installationID); err != nil {
		return nil, err
	}

	// Текущее состояние этапа. Отсутствие записи - не ошибка:
	// первая правка создаёт этап.
	var oldStatus string
	var oldResponsibleID *uint64
	record, err := s.stageRepo.FindByPair(ctx, installationID, stageKey)
	if err == nil {
		oldStatus = record.Status
		oldResponsibleID = record.ResponsibleID
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	// Повторная проверка "нет изменений" на сервере: клиентской проверке
	// нельзя доверять.
	newStatus := workflow.Normalize(payload.NewStatus)
	statusChanged := newStatus != workflow.Normalize(oldStatus)
	responsibleChanged := payload.ResponsibleID != nil &&
		(oldResponsibleID == nil || *payload.ResponsibleID != *oldResponsibleID)
	if !statusChanged && !responsibleChanged && payload.Comment == "" && len(files) == 0 {
		return nil, apperrors.ErrNoChanges
	}

	// Файлы уходят во внешний сервис ДО записи в базу: если загрузка
	// упала, этап остаётся нетронутым.
	var photos, photoFileIDs []string
	if len(files) > 0 {
		uploaded, err := s.uploader.WorkflowUpload(ctx, files, installationID, workflowDocType, stageKey)
		if err != nil {
			logger.Error("Загрузка файлов этапа не удалась, правка отменена", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
		}
		for _, f := range uploaded {
			photos = append(photos, f.WebViewLink)
			photoFileIDs = append(photoFileIDs, f.FileID)
		}
	}

	actorName := s.resolveActorName(ctx, session)

	var comment *string
	if payload.Comment != "" {
		comment = &payload.Comment
	}

	batchUID := uuid.New()
	params := repositories.UpdateStageParams{
		InstallationID:   installationID,
		StageKey:         stageKey,
		NewStatus:        newStatus,
		ActorName:        actorName,
		Comment:          comment,
		Photos:           photos,
		PhotoFileIDs:     photoFileIDs,
		NewResponsibleID: payload.ResponsibleID,
		SetAsGlobalStage: payload.SetAsGlobalStage,
		BatchUID:         batchUID,
	}

	// Итоговый ответственный: без переназначения остаётся прежний.
	// Серверная функция делает тот же COALESCE; запасной путь обязан
	// записать в журнал то же значение.
	newResponsibleID := oldResponsibleID
	if payload.ResponsibleID != nil {
		newResponsibleID = payload.ResponsibleID
	}

	// Основной путь - серверная функция, оба изменения одним вызовом.
	atomic := true
	if _, err := s.stageRepo.CallUpdateWorkflowStage(ctx, params); err != nil {
		logger.Warn("Серверная функция недоступна, выполняю запасной путь в транзакции", zap.Error(err))
		atomic = false
		if err := s.fallbackUpdate(ctx, params, oldStatus, oldResponsibleID, newResponsibleID); err != nil {
			return nil, err
		}
	}

	meta := workflow.ResolveStatusMeta(stageKey, newStatus)
	result := &dto.QuickUpdateResultDTO{
		InstallationID: installationID,
		StageKey:       stageKey,
		NewStatus:      newStatus,
		StatusLabel:    meta.Label,
		StatusColor:    meta.Color,
		ResponsibleID:  newResponsibleID,
		Completed:      workflow.IsCompletedForStage(stageKey, newStatus),
		Reassigned:     responsibleChanged,
		Photos:         photos,
		PhotoFileIDs:   photoFileIDs,
		Atomic:         atomic,
	}

	s.reconcileActiveStagesCache(ctx, oldResponsibleID, result)
	s.notifyResponsibles(oldResponsibleID, newResponsibleID, result)

	logger.Info("Этап обновлён",
		zap.String("new_status", newStatus),
		zap.Bool("completed", result.Completed),
		zap.Bool("atomic", atomic),
		zap.String("batch_uid", batchUID.String()))
	return result, nil
}

// resolveActorName: имя из профиля сотрудника, иначе email из сессии.
func (s *WorkflowService) resolveActorName(ctx context.Context, session *types.Session) string {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, session.EmployeeID)
	if err != nil || employee.FullName == "" {
		return session.Email
	}
	return employee.FullName
}

// fallbackUpdate повторяет работу серверной функции двумя запросами.
// Оба выполняются в одной транзакции: частичная запись невозможна.
func (s *WorkflowService) fallbackUpdate(ctx context.Context, params repositories.UpdateStageParams, oldStatus string, oldResponsibleID, newResponsibleID *uint64) error {
	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.stageRepo.UpsertInTx(ctx, tx, params.InstallationID, params.StageKey, params.NewStatus, params.NewResponsibleID); err != nil {
			return err
		}

		event := entities.StageEvent{
			InstallationID:   params.InstallationID,
			StageKey:         params.StageKey,
			NewStatus:        &params.NewStatus,
			OldResponsibleID: oldResponsibleID,
			NewResponsibleID: newResponsibleID,
			Comment:          params.Comment,
			Photos:           params.Photos,
			PhotoFileIDs:     params.PhotoFileIDs,
			ActorName:        params.ActorName,
			BatchUID:         &params.BatchUID,
		}
		if oldStatus != "" {
			event.OldStatus = &oldStatus
		}
		if _, err := s.eventRepo.CreateInTx(ctx, tx, event); err != nil {
			return err
		}

		if params.SetAsGlobalStage {
			if err := s.installationRepo.SetCurrentStageInTx(ctx, tx, params.InstallationID, params.StageKey); err != nil {
				return err
			}
		}
		return nil
	})
}

// reconcileActiveStagesCache правит кешированный список старого
// ответственного (завершённые и переназначенные записи выпадают сразу)
// и сбрасывает кеш нового: его следующее чтение пойдёт в базу.
// Источник истины - PostgreSQL, кеш всегда проигрывает повторной загрузке.
func (s *WorkflowService) reconcileActiveStagesCache(ctx context.Context, oldResponsibleID *uint64, result *dto.QuickUpdateResultDTO) {
	if oldResponsibleID != nil {
		key := fmt.Sprintf(activeStagesKeyFmt, *oldResponsibleID)
		raw, err := s.cacheRepo.Get(ctx, key)
		if err == nil {
			var cached []dto.ActiveStageDTO
			if json.Unmarshal([]byte(raw), &cached) == nil {
				patched := make([]dto.ActiveStageDTO, 0, len(cached))
				for _, rec := range cached {
					if rec.InstallationID == result.InstallationID && rec.StageKey == result.StageKey {
						if result.Completed || result.Reassigned {
							continue
						}
						rec.Status = result.NewStatus
						rec.StatusLabel = result.StatusLabel
						rec.StatusColor = result.StatusColor
					}
					patched = append(patched, rec)
				}
				if data, err := json.Marshal(patched); err == nil {
					if err := s.cacheRepo.Set(ctx, key, string(data), activeStagesTTL); err != nil {
						s.logger.Warn("Не удалось обновить кеш активных этапов", zap.Error(err))
					}
				}
			}
		}
	}

	if result.Reassigned && result.ResponsibleID != nil {
		key := fmt.Sprintf(activeStagesKeyFmt, *result.ResponsibleID)
		if err := s.cacheRepo.Del(ctx, key); err != nil {
			s.logger.Warn("Не удалось сбросить кеш активных этапов", zap.Error(err))
		}
	}
}

func (s *WorkflowService) notifyResponsibles(oldResponsibleID, newResponsibleID *uint64, result *dto.QuickUpdateResultDTO) {
	payload := ws.StageUpdatePayload{
		InstallationID: result.InstallationID,
		StageKey:       result.StageKey,
		NewStatus:      result.NewStatus,
		Completed:      result.Completed,
		Reassigned:     result.Reassigned,
	}

	notified := map[uint64]struct{}{}
	for _, id := range []*uint64{oldResponsibleID, newResponsibleID} {
		if id == nil {
			continue
		}
		if _, done := notified[*id]; done {
			continue
		}
		notified[*id] = struct{}{}
		if err := s.notifier.SendToEmployee(*id, payload, ws.TypeStageUpdated); err != nil {
			s.logger.Warn("Не удалось отправить уведомление", zap.Uint64("employee_id", *id), zap.Error(err))
		}
	}
}

// ActiveStages - список незавершённых этапов сотрудника, сгруппированный
// по воронке. Кешируется на сотрудника; поиск применяется после кеша.
func (s *WorkflowService) ActiveStages(ctx context.Context, employeeID uint64, search string) ([]dto.ActiveStageGroupDTO, error) {
	records, err := s.loadActiveStages(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return GroupActiveStages(FilterActiveStages(records, search)), nil
}

func (s *WorkflowService) loadActiveStages(ctx context.Context, employeeID uint64) ([]dto.ActiveStageDTO, error) {
	key := fmt.Sprintf(activeStagesKeyFmt, employeeID)
	if raw, err := s.cacheRepo.Get(ctx, key); err == nil {
		var cached []dto.ActiveStageDTO
		if json.Unmarshal([]byte(raw), &cached) == nil {
			return cached, nil
		}
	}

	rows, err := s.stageRepo.ListActiveByResponsible(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	records := make([]dto.ActiveStageDTO, 0, len(rows))
	for _, row := range rows {
		if workflow.IsCompletedForStage(row.StageKey, row.Status) {
			continue
		}
		meta := workflow.ResolveStatusMeta(row.StageKey, row.Status)
		records = append(records, dto.ActiveStageDTO{
			InstallationID:   row.InstallationID,
			InstallationName: row.InstallationName,
			ClientName:       row.ClientName,
			StageKey:         row.StageKey,
			StageLabel:       workflow.StageLabel(row.StageKey),
			Status:           workflow.Normalize(row.Status),
			StatusLabel:      meta.Label,
			StatusColor:      meta.Color,
			ResponsibleID:    row.ResponsibleID,
			UpdatedAt:        row.UpdatedAt,
		})
	}

	if data, err := json.Marshal(records); err == nil {
		if err := s.cacheRepo.Set(ctx, key, string(data), activeStagesTTL); err != nil {
			s.logger.Warn("Не удалось закешировать активные этапы", zap.Error(err))
		}
	}
	return records, nil
}

// FilterActiveStages - свободный поиск по списку. Числовой запрос ищет
// точное совпадение номера объекта ("042" находит объект 42), текстовый -
// подстроку в названии объекта, клиенте и названии этапа без учёта регистра.
func FilterActiveStages(records []dto.ActiveStageDTO, term string) []dto.ActiveStageDTO {
	term = strings.TrimSpace(term)
	if term == "" {
		return records
	}

	if id, err := strconv.ParseUint(term, 10, 64); err == nil {
		matched := make([]dto.ActiveStageDTO, 0)
		for _, rec := range records {
			if rec.InstallationID == id {
				matched = append(matched, rec)
			}
		}
		return matched
	}

	lowered := strings.ToLower(term)
	matched := make([]dto.ActiveStageDTO, 0)
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.InstallationName), lowered) ||
			strings.Contains(strings.ToLower(rec.ClientName), lowered) ||
			strings.Contains(strings.ToLower(rec.StageLabel), lowered) {
			matched = append(matched, rec)
		}
	}
	return matched
}

// GroupActiveStages собирает записи в группы по ключу этапа: сначала
// известные этапы в порядке воронки, затем неизвестные по алфавиту названия.
func GroupActiveStages(records []dto.ActiveStageDTO) []dto.ActiveStageGroupDTO {
	byKey := make(map[string][]dto.ActiveStageDTO)
	for _, rec := range records {
		byKey[rec.StageKey] = append(byKey[rec.StageKey], rec)
	}

	groups := make([]dto.ActiveStageGroupDTO, 0, len(byKey))
	for _, key := range workflow.PreferredStageOrder() {
		if recs, ok := byKey[key]; ok {
			groups = append(groups, dto.ActiveStageGroupDTO{
				StageKey:   key,
				StageLabel: workflow.StageLabel(key),
				Records:    recs,
			})
			delete(byKey, key)
		}
	}

	unknown := make([]dto.ActiveStageGroupDTO, 0, len(byKey))
	for key, recs := range byKey {
		unknown = append(unknown, dto.ActiveStageGroupDTO{
			StageKey:   key,
			StageLabel: workflow.StageLabel(key),
			Records:    recs,
		})
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i].StageLabel < unknown[j].StageLabel })

	return append(groups, unknown...)
}

// StageBoard - все этапы воронки одного объекта: сохранённые записи
// плюс нетронутые этапы каталога со стартовым статусом. Сохранённые
// этапы вне каталога дописываются в конец по алфавиту названий.
func (s *WorkflowService) StageBoard(ctx context.Context, installationID uint64) ([]dto.StageBoardItemDTO, error) {
	if _, err := s.installationRepo.FindInstallation(ctx, installationID); err != nil {
		return nil, err
	}

	records, err := s.stageRepo.ListByInstallation(ctx, installationID)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]entities.StageRecord, len(records))
	for _, rec := range records {
		byKey[rec.StageKey] = rec
	}

	board := make([]dto.StageBoardItemDTO, 0, len(workflow.PreferredStageOrder())+len(byKey))
	for _, key := range workflow.PreferredStageOrder() {
		if rec, ok := byKey[key]; ok {
			board = append(board, stageBoardItem(rec))
			delete(byKey, key)
			continue
		}
		meta := workflow.ResolveStatusMeta(key, "waiting")
		board = append(board, dto.StageBoardItemDTO{
			StageKey:    key,
			StageLabel:  workflow.StageLabel(key),
			Status:      "waiting",
			StatusLabel: meta.Label,
			StatusColor: meta.Color,
		})
	}

	extra := make([]dto.StageBoardItemDTO, 0, len(byKey))
	for _, rec := range byKey {
		extra = append(extra, stageBoardItem(rec))
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].StageLabel < extra[j].StageLabel })

	return append(board, extra...), nil
}

func stageBoardItem(rec entities.StageRecord) dto.StageBoardItemDTO {
	status := workflow.Normalize(rec.Status)
	meta := workflow.ResolveStatusMeta(rec.StageKey, status)
	return dto.StageBoardItemDTO{
		StageKey:      rec.StageKey,
		StageLabel:    workflow.StageLabel(rec.StageKey),
		Status:        status,
		StatusLabel:   meta.Label,
		StatusColor:   meta.Color,
		Completed:     workflow.IsCompletedForStage(rec.StageKey, status),
		ResponsibleID: rec.ResponsibleID,
		UpdatedAt:     rec.UpdatedAt.Local().Format("2006-01-02 15:04:05"),
	}
}

// StatusOptionsForStage - словарь статусов для выпадающего списка этапа.
// Текущий статус записи (даже неизвестный) всегда присутствует в списке.
func (s *WorkflowService) StatusOptionsForStage(ctx context.Context, installationID uint64, stageKey string) (*dto.StageStatusOptionsDTO, error) {
	currentStatus := ""
	record, err := s.stageRepo.FindByPair(ctx, installationID, stageKey)
	if err == nil {
		currentStatus = record.Status
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	return &dto.StageStatusOptionsDTO{
		StageKey:   stageKey,
		StageLabel: workflow.StageLabel(stageKey),
		Group:      string(workflow.StageGroupOf(stageKey)),
		Options:    workflow.StatusOptionsForStage(stageKey, currentStatus),
	}, nil
}
