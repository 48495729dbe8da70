package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"
	"go.uber.org/zap"

	"solar-crm/internal/dto"
	"solar-crm/internal/repositories"
)

type EmployeeService struct {
	employeeRepository repositories.EmployeeRepositoryInterface
	logger             *zap.Logger
}

func NewEmployeeService(employeeRepository repositories.EmployeeRepositoryInterface, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{employeeRepository: employeeRepository, logger: logger}
}

func (s *EmployeeService) GetEmployees(ctx context.Context, limit, offset uint64, search string) ([]dto.EmployeeResponseDTO, uint64, error) {
	return s.employeeRepository.GetEmployees(ctx, limit, offset, search)
}

func (s *EmployeeService) FindEmployee(ctx context.Context, id uint64) (*dto.EmployeeResponseDTO, error) {
	employee, err := s.employeeRepository.FindEmployeeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.EmployeeResponseDTO{
		ID:        employee.ID,
		FullName:  employee.FullName,
		Position:  employee.Position,
		Role:      employee.Role,
		Email:     employee.Email,
		CreatedAt: employee.CreatedAt.Local().Format("2006-01-02 15:04:05"),
	}, nil
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, payload dto.CreateEmployeeDTO) (uint64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Не удалось захешировать пароль", zap.Error(err))
		return 0, err
	}
	return s.employeeRepository.CreateEmployee(ctx, payload, string(hash))
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uint64, payload dto.UpdateEmployeeDTO) error {
	var passwordHash *string
	if payload.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*payload.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("Не удалось захешировать пароль", zap.Error(err))
			return err
		}
		hashStr := string(hash)
		passwordHash = &hashStr
	}
	return s.employeeRepository.UpdateEmployee(ctx, id, payload, passwordHash)
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uint64) error {
	return s.employeeRepository.DeleteEmployee(ctx, id)
}
