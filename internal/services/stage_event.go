package services

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"solar-crm/internal/dto"
	"solar-crm/internal/entities"
	"solar-crm/internal/repositories"
	"solar-crm/internal/workflow"
)

type StageEventService struct {
	eventRepo    repositories.StageEventRepositoryInterface
	employeeRepo repositories.EmployeeRepositoryInterface
	logger       *zap.Logger
}

func NewStageEventService(
	eventRepo repositories.StageEventRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	logger *zap.Logger,
) *StageEventService {
	return &StageEventService{eventRepo: eventRepo, employeeRepo: employeeRepo, logger: logger}
}

// Timeline - журнал этапа от новых событий к старым. Переходы
// "було -> стало" отдаются только когда значения реально различаются.
func (s *StageEventService) Timeline(ctx context.Context, installationID uint64, stageKey string) ([]dto.TimelineEventDTO, error) {
	events, err := s.eventRepo.FindByPair(ctx, installationID, stageKey)
	if err != nil {
		return nil, err
	}

	// Имена ответственных резолвятся один раз на выдачу
	names := s.resolveNames(ctx, events)

	timeline := make([]dto.TimelineEventDTO, 0, len(events))
	for _, e := range events {
		item := dto.TimelineEventDTO{
			ID:        e.ID,
			Comment:   e.Comment,
			Photos:    make([]dto.EventPhotoDTO, 0, len(e.Photos)),
			ActorName: e.ActorName,
			CreatedAt: e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		}

		if statusDiffers(e.OldStatus, e.NewStatus) {
			item.StatusChange = &dto.TransitionDTO{
				Old:      deref(e.OldStatus),
				New:      deref(e.NewStatus),
				OldLabel: statusLabel(e.StageKey, e.OldStatus),
				NewLabel: statusLabel(e.StageKey, e.NewStatus),
			}
		}

		if responsibleDiffers(e.OldResponsibleID, e.NewResponsibleID) {
			item.ResponsibleChange = &dto.TransitionDTO{
				Old:      idLabel(e.OldResponsibleID),
				New:      idLabel(e.NewResponsibleID),
				OldLabel: nameOrDash(names, e.OldResponsibleID),
				NewLabel: nameOrDash(names, e.NewResponsibleID),
			}
		}

		for i, link := range e.Photos {
			photo := dto.EventPhotoDTO{Link: link}
			if i < len(e.PhotoFileIDs) {
				photo.FileID = e.PhotoFileIDs[i]
			}
			item.Photos = append(item.Photos, photo)
		}

		timeline = append(timeline, item)
	}
	return timeline, nil
}

func (s *StageEventService) resolveNames(ctx context.Context, events []entities.StageEvent) map[uint64]string {
	names := make(map[uint64]string)
	for _, e := range events {
		for _, id := range []*uint64{e.OldResponsibleID, e.NewResponsibleID} {
			if id == nil {
				continue
			}
			if _, ok := names[*id]; ok {
				continue
			}
			employee, err := s.employeeRepo.FindEmployeeByID(ctx, *id)
			if err != nil {
				// Удалённый сотрудник: показываем прочерк, журнал не ломаем
				names[*id] = ""
				continue
			}
			names[*id] = employee.FullName
		}
	}
	return names
}

func statusDiffers(oldStatus, newStatus *string) bool {
	return workflow.Normalize(deref(oldStatus)) != workflow.Normalize(deref(newStatus))
}

func responsibleDiffers(oldID, newID *uint64) bool {
	if oldID == nil && newID == nil {
		return false
	}
	if oldID == nil || newID == nil {
		return true
	}
	return *oldID != *newID
}

func statusLabel(stageKey string, status *string) string {
	if status == nil || *status == "" {
		return "—"
	}
	return workflow.ResolveStatusMeta(stageKey, *status).Label
}

func idLabel(id *uint64) string {
	if id == nil {
		return ""
	}
	return "employee:" + strconv.FormatUint(*id, 10)
}

func nameOrDash(names map[uint64]string, id *uint64) string {
	if id == nil {
		return "—"
	}
	if name, ok := names[*id]; ok && name != "" {
		return name
	}
	return "—"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
