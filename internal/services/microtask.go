package services

import (
	"context"

	"solar-crm/internal/dto"
	"solar-crm/internal/entities"
	"solar-crm/internal/repositories"
)

type MicrotaskService struct {
	microtaskRepository repositories.MicrotaskRepositoryInterface
}

func NewMicrotaskService(microtaskRepository repositories.MicrotaskRepositoryInterface) *MicrotaskService {
	return &MicrotaskService{microtaskRepository: microtaskRepository}
}

func toMicrotaskDTO(m *entities.Microtask) dto.MicrotaskResponseDTO {
	out := dto.MicrotaskResponseDTO{
		ID:               m.ID,
		Title:            m.Title,
		InstallationID:   m.InstallationID,
		InstallationName: m.InstallationName,
		AssigneeID:       m.AssigneeID,
		IsDone:           m.IsDone,
		CreatedAt:        m.CreatedAt.Local().Format("2006-01-02 15:04:05"),
	}
	if m.DueDate != nil {
		out.DueDate = m.DueDate.Local().Format("2006-01-02")
	}
	return out
}

func (s *MicrotaskService) GetMyMicrotasks(ctx context.Context, assigneeID uint64, onlyOpen bool) ([]dto.MicrotaskResponseDTO, error) {
	tasks, err := s.microtaskRepository.GetMicrotasksByAssignee(ctx, assigneeID, onlyOpen)
	if err != nil {
		return nil, err
	}
	result := make([]dto.MicrotaskResponseDTO, 0, len(tasks))
	for idx := range tasks {
		result = append(result, toMicrotaskDTO(&tasks[idx]))
	}
	return result, nil
}

func (s *MicrotaskService) FindMicrotask(ctx context.Context, id uint64) (*dto.MicrotaskResponseDTO, error) {
	task, err := s.microtaskRepository.FindMicrotask(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toMicrotaskDTO(task)
	return &out, nil
}

func (s *MicrotaskService) CreateMicrotask(ctx context.Context, payload dto.CreateMicrotaskDTO) (*dto.MicrotaskResponseDTO, error) {
	id, err := s.microtaskRepository.CreateMicrotask(ctx, payload)
	if err != nil {
		return nil, err
	}
	return s.FindMicrotask(ctx, id)
}

func (s *MicrotaskService) UpdateMicrotask(ctx context.Context, id uint64, payload dto.UpdateMicrotaskDTO) (*dto.MicrotaskResponseDTO, error) {
	if err := s.microtaskRepository.UpdateMicrotask(ctx, id, payload); err != nil {
		return nil, err
	}
	return s.FindMicrotask(ctx, id)
}

func (s *MicrotaskService) DeleteMicrotask(ctx context.Context, id uint64) error {
	return s.microtaskRepository.DeleteMicrotask(ctx, id)
}
