package types

// Session - явное состояние аутентифицированного пользователя на время запроса.
// Создаётся middleware после проверки токена и передаётся вниз через context,
// никакого глобального состояния.
type Session struct {
	EmployeeID uint64 `json:"employee_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
}
