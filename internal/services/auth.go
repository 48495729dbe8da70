package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/crypto/bcrypt"
	"go.uber.org/zap"

	"solar-crm/internal/dto"
	"solar-crm/internal/repositories"
	"solar-crm/pkg/config"
	apperrors "solar-crm/pkg/errors"
	"solar-crm/pkg/service"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	RefreshToken(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.TokenPairDTO, error)
	GetProfile(ctx context.Context, employeeID uint64) (*dto.ProfileDTO, error)
}

type AuthService struct {
	employeeRepo repositories.EmployeeRepositoryInterface
	cacheRepo    repositories.CacheRepositoryInterface
	jwtService   service.JWTService
	logger       *zap.Logger
	cfg          *config.AuthConfig
}

func NewAuthService(
	employeeRepo repositories.EmployeeRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		employeeRepo: employeeRepo,
		cacheRepo:    cacheRepo,
		jwtService:   jwtService,
		logger:       logger,
		cfg:          cfg,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	logger := s.logger.With(zap.String("email", payload.Email))

	// Блокировка после N неудачных попыток
	lockoutKey := fmt.Sprintf("login_attempts:%s", payload.Email)
	attemptsStr, _ := s.cacheRepo.Get(ctx, lockoutKey)
	if attempts, _ := strconv.Atoi(attemptsStr); attempts >= s.cfg.MaxLoginAttempts {
		logger.Warn("Слишком много попыток входа")
		return nil, apperrors.NewHttpError(
			http.StatusTooManyRequests,
			fmt.Sprintf("Слишком много попыток. Попробуйте через %.0f минут.", s.cfg.LockoutDuration.Minutes()),
			apperrors.ErrTooManyAttempts,
			nil,
		)
	}

	employee, err := s.employeeRepo.FindEmployeeByEmail(ctx, payload.Email)
	if err != nil {
		s.registerFailedAttempt(ctx, lockoutKey)
		logger.Warn("Попытка входа для несуществующего сотрудника")
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(payload.Password)); err != nil {
		s.registerFailedAttempt(ctx, lockoutKey)
		logger.Warn("Неверный пароль")
		return nil, apperrors.ErrInvalidCredentials
	}

	// Успешный вход снимает счётчик попыток
	_ = s.cacheRepo.Del(ctx, lockoutKey)

	access, refresh, err := s.jwtService.GenerateTokens(employee.ID, employee.Email, employee.Role)
	if err != nil {
		logger.Error("Не удалось выпустить токены", zap.Error(err))
		return nil, err
	}

	logger.Info("Сотрудник вошёл в систему", zap.Uint64("employee_id", employee.ID))
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) registerFailedAttempt(ctx context.Context, key string) {
	attempts, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		s.logger.Warn("Не удалось записать попытку входа", zap.Error(err))
		return
	}
	if attempts == 1 {
		_, _ = s.cacheRepo.Expire(ctx, key, s.cfg.LockoutDuration)
	}
}

func (s *AuthService) RefreshToken(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	// Сотрудник мог быть удалён или сменить роль после выпуска токена
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, claims.EmployeeID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	access, refresh, err := s.jwtService.GenerateTokens(employee.ID, employee.Email, employee.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, employeeID uint64) (*dto.ProfileDTO, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileDTO{
		ID:       employee.ID,
		FullName: employee.FullName,
		Position: employee.Position,
		Role:     employee.Role,
		Email:    employee.Email,
	}, nil
}
