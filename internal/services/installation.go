package services

import (
	"context"

	"solar-crm/internal/dto"
	"solar-crm/internal/entities"
	"solar-crm/internal/repositories"
	"solar-crm/internal/workflow"
	"solar-crm/pkg/types"
)

type InstallationService struct {
	installationRepository repositories.InstallationRepositoryInterface
}

func NewInstallationService(installationRepository repositories.InstallationRepositoryInterface) *InstallationService {
	return &InstallationService{installationRepository: installationRepository}
}

func toInstallationDTO(i *entities.Installation) dto.InstallationResponseDTO {
	out := dto.InstallationResponseDTO{
		ID:              i.ID,
		Name:            i.Name,
		Priority:        i.Priority,
		Status:          i.Status,
		CurrentStage:    i.CurrentStage,
		CapacityKW:      i.CapacityKW,
		TotalCost:       i.TotalCost,
		PaidAmount:      i.PaidAmount,
		ResponsibleID:   i.ResponsibleID,
		ResponsibleName: i.ResponsibleName,
		ClientID:        i.ClientID,
		ClientName:      i.ClientName,
		CreatedAt:       i.CreatedAt.Local().Format("2006-01-02 15:04:05"),
	}
	if i.CurrentStage != nil {
		out.StageLabel = workflow.StageLabel(*i.CurrentStage)
	}
	if i.UpdatedAt != nil {
		out.UpdatedAt = i.UpdatedAt.Local().Format("2006-01-02 15:04:05")
	}
	return out
}

func (s *InstallationService) GetInstallations(ctx context.Context, filter types.Filter) ([]dto.InstallationResponseDTO, uint64, error) {
	installations, total, err := s.installationRepository.GetInstallations(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.InstallationResponseDTO, 0, len(installations))
	for idx := range installations {
		result = append(result, toInstallationDTO(&installations[idx]))
	}
	return result, total, nil
}

func (s *InstallationService) FindInstallation(ctx context.Context, id uint64) (*dto.InstallationResponseDTO, error) {
	installation, err := s.installationRepository.FindInstallation(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toInstallationDTO(installation)
	return &out, nil
}

func (s *InstallationService) CreateInstallation(ctx context.Context, payload dto.CreateInstallationDTO) (*dto.InstallationResponseDTO, error) {
	id, err := s.installationRepository.CreateInstallation(ctx, payload)
	if err != nil {
		return nil, err
	}
	return s.FindInstallation(ctx, id)
}

func (s *InstallationService) UpdateInstallation(ctx context.Context, id uint64, payload dto.UpdateInstallationDTO) (*dto.InstallationResponseDTO, error) {
	if err := s.installationRepository.UpdateInstallation(ctx, id, payload); err != nil {
		return nil, err
	}
	return s.FindInstallation(ctx, id)
}

func (s *InstallationService) DeleteInstallation(ctx context.Context, id uint64) error {
	return s.installationRepository.DeleteInstallation(ctx, id)
}
