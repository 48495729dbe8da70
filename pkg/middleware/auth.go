package middleware

import (
	"context"
	"net/http"
	"strings"

	"solar-crm/pkg/contextkeys"
	apperrors "solar-crm/pkg/errors"
	"solar-crm/pkg/service"
	"solar-crm/pkg/types"
	"solar-crm/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Auth - основная функция middleware. Проверяет access-токен и кладёт
// сессию сотрудника в контекст запроса.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: Попытка доступа с refresh токеном")
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		session := &types.Session{
			EmployeeID: claims.EmployeeID,
			Email:      claims.Email,
			Role:       claims.Role,
		}

		ctx := context.WithValue(c.Request().Context(), contextkeys.EmployeeKey, session)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireRole - серверная проверка роли. Клиентские гейты на кнопках - только UX,
// границей безопасности является этот middleware.
func (m *AuthMiddleware) RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, err := utils.GetSessionFromCtx(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
			}
			if _, ok := allowed[session.Role]; !ok {
				m.logger.Warn("RequireRole: Недостаточно прав",
					zap.String("role", session.Role),
					zap.String("uri", c.Request().RequestURI),
				)
				return utils.ErrorResponse(c, apperrors.NewHttpError(
					http.StatusForbidden, "Недостаточно прав для выполнения операции", apperrors.ErrForbidden, nil,
				), m.logger)
			}
			return next(c)
		}
	}
}
