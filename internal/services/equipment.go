package services

import (
	"context"

	"solar-crm/internal/dto"
	"solar-crm/internal/entities"
	"solar-crm/internal/repositories"
)

type EquipmentService struct {
	equipmentRepository repositories.EquipmentRepositoryInterface
}

func NewEquipmentService(equipmentRepository repositories.EquipmentRepositoryInterface) *EquipmentService {
	return &EquipmentService{equipmentRepository: equipmentRepository}
}

func toEquipmentOrderDTO(o *entities.EquipmentOrder) dto.EquipmentOrderResponseDTO {
	out := dto.EquipmentOrderResponseDTO{
		ID:             o.ID,
		InstallationID: o.InstallationID,
		Name:           o.Name,
		Quantity:       o.Quantity,
		Supplier:       o.Supplier,
		Status:         o.Status,
		CreatedAt:      o.CreatedAt.Local().Format("2006-01-02 15:04:05"),
	}
	if o.OrderedAt != nil {
		out.OrderedAt = o.OrderedAt.Local().Format("2006-01-02")
	}
	if o.ExpectedAt != nil {
		out.ExpectedAt = o.ExpectedAt.Local().Format("2006-01-02")
	}
	if o.ReceivedAt != nil {
		out.ReceivedAt = o.ReceivedAt.Local().Format("2006-01-02")
	}
	return out
}

func (s *EquipmentService) GetOrdersByInstallation(ctx context.Context, installationID uint64) ([]dto.EquipmentOrderResponseDTO, error) {
	orders, err := s.equipmentRepository.GetOrdersByInstallation(ctx, installationID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.EquipmentOrderResponseDTO, 0, len(orders))
	for idx := range orders {
		result = append(result, toEquipmentOrderDTO(&orders[idx]))
	}
	return result, nil
}

func (s *EquipmentService) FindOrder(ctx context.Context, id uint64) (*dto.EquipmentOrderResponseDTO, error) {
	order, err := s.equipmentRepository.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toEquipmentOrderDTO(order)
	return &out, nil
}

func (s *EquipmentService) CreateOrder(ctx context.Context, payload dto.CreateEquipmentOrderDTO) (*dto.EquipmentOrderResponseDTO, error) {
	id, err := s.equipmentRepository.CreateOrder(ctx, payload)
	if err != nil {
		return nil, err
	}
	return s.FindOrder(ctx, id)
}

func (s *EquipmentService) UpdateOrder(ctx context.Context, id uint64, payload dto.UpdateEquipmentOrderDTO) (*dto.EquipmentOrderResponseDTO, error) {
	if err := s.equipmentRepository.UpdateOrder(ctx, id, payload); err != nil {
		return nil, err
	}
	return s.FindOrder(ctx, id)
}

func (s *EquipmentService) DeleteOrder(ctx context.Context, id uint64) error {
	return s.equipmentRepository.DeleteOrder(ctx, id)
}
