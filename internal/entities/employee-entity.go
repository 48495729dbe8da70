package entities

import "time"

// Роли сотрудников. Проверяются на сервере, клиентские гейты - только UX.
const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleInstaller = "installer"
)

type Employee struct {
	ID           uint64     `json:"id"`
	FullName     string     `json:"full_name"`
	Position     *string    `json:"position"`
	Role         string     `json:"role"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}
