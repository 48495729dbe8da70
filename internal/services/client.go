package services

import (
	"context"

	"solar-crm/internal/dto"
	"solar-crm/internal/repositories"
)

type ClientService struct {
	clientRepository repositories.ClientRepositoryInterface
}

func NewClientService(clientRepository repositories.ClientRepositoryInterface) *ClientService {
	return &ClientService{clientRepository: clientRepository}
}

func (s *ClientService) GetClients(ctx context.Context, limit, offset uint64, search string) ([]dto.ClientResponseDTO, uint64, error) {
	return s.clientRepository.GetClients(ctx, limit, offset, search)
}

func (s *ClientService) FindClient(ctx context.Context, id uint64) (*dto.ClientResponseDTO, error) {
	return s.clientRepository.FindClient(ctx, id)
}

func (s *ClientService) CreateClient(ctx context.Context, payload dto.CreateClientDTO) (*dto.ClientResponseDTO, error) {
	return s.clientRepository.CreateClient(ctx, payload)
}

func (s *ClientService) UpdateClient(ctx context.Context, id uint64, payload dto.UpdateClientDTO) (*dto.ClientResponseDTO, error) {
	return s.clientRepository.UpdateClient(ctx, id, payload)
}

func (s *ClientService) DeleteClient(ctx context.Context, id uint64) error {
	return s.clientRepository.DeleteClient(ctx, id)
}
