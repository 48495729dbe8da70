package services

import (
	"context"
	"time"

	"solar-crm/internal/dto"
	"solar-crm/internal/entities"
	"solar-crm/internal/repositories"
)

type VisitService struct {
	visitRepository repositories.VisitRepositoryInterface
}

func NewVisitService(visitRepository repositories.VisitRepositoryInterface) *VisitService {
	return &VisitService{visitRepository: visitRepository}
}

func toVisitDTO(v *entities.Visit) dto.VisitResponseDTO {
	return dto.VisitResponseDTO{
		ID:               v.ID,
		InstallationID:   v.InstallationID,
		InstallationName: v.InstallationName,
		EmployeeID:       v.EmployeeID,
		EmployeeName:     v.EmployeeName,
		VisitDate:        v.VisitDate.Local().Format("2006-01-02 15:04"),
		VisitType:        v.VisitType,
		Note:             v.Note,
		IsDone:           v.IsDone,
		CreatedAt:        v.CreatedAt.Local().Format("2006-01-02 15:04:05"),
	}
}

func toVisitDTOs(visits []entities.Visit) []dto.VisitResponseDTO {
	result := make([]dto.VisitResponseDTO, 0, len(visits))
	for idx := range visits {
		result = append(result, toVisitDTO(&visits[idx]))
	}
	return result
}

func (s *VisitService) GetMyVisits(ctx context.Context, employeeID uint64, from, to *time.Time) ([]dto.VisitResponseDTO, error) {
	visits, err := s.visitRepository.GetVisitsByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	return toVisitDTOs(visits), nil
}

func (s *VisitService) GetVisitsByInstallation(ctx context.Context, installationID uint64) ([]dto.VisitResponseDTO, error) {
	visits, err := s.visitRepository.GetVisitsByInstallation(ctx, installationID)
	if err != nil {
		return nil, err
	}
	return toVisitDTOs(visits), nil
}

func (s *VisitService) FindVisit(ctx context.Context, id uint64) (*dto.VisitResponseDTO, error) {
	visit, err := s.visitRepository.FindVisit(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toVisitDTO(visit)
	return &out, nil
}

func (s *VisitService) CreateVisit(ctx context.Context, payload dto.CreateVisitDTO) (*dto.VisitResponseDTO, error) {
	id, err := s.visitRepository.CreateVisit(ctx, payload)
	if err != nil {
		return nil, err
	}
	return s.FindVisit(ctx, id)
}

func (s *VisitService) UpdateVisit(ctx context.Context, id uint64, payload dto.UpdateVisitDTO) (*dto.VisitResponseDTO, error) {
	if err := s.visitRepository.UpdateVisit(ctx, id, payload); err != nil {
		return nil, err
	}
	return s.FindVisit(ctx, id)
}

func (s *VisitService) DeleteVisit(ctx context.Context, id uint64) error {
	return s.visitRepository.DeleteVisit(ctx, id)
}
