package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"solar-crm/internal/entities"
)

type seedEmployee struct {
	FullName string
	Position string
	Role     string
	Email    string
	Password string
}

var baseEmployees = []seedEmployee{
	{"Олена Коваль", "Директор", entities.RoleAdmin, "admin@solar-crm.ua", "admin123"},
	{"Ігор Мельник", "Менеджер проєктів", entities.RoleManager, "manager@solar-crm.ua", "manager123"},
	{"Тарас Шевчук", "Старший монтажник", entities.RoleInstaller, "taras@solar-crm.ua", "installer123"},
	{"Андрій Бондар", "Монтажник", entities.RoleInstaller, "andriy@solar-crm.ua", "installer123"},
}

// SeedEmployees создаёт базовых сотрудников. Повторный запуск безопасен:
// существующие email пропускаются.
func SeedEmployees(db *pgxpool.Pool) error {
	ctx := context.Background()
	log.Println("  - Создание базовых сотрудников...")

	for _, e := range baseEmployees {
		var id uint64
		err := db.QueryRow(ctx, "SELECT id FROM employees WHERE email = $1", e.Email).Scan(&id)
		if err == nil {
			log.Printf("    - %s уже существует. Пропускаем.", e.Email)
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("ошибка при проверке сотрудника %s: %w", e.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(e.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("не удалось захешировать пароль для %s: %w", e.Email, err)
		}

		_, err = db.Exec(ctx,
			`INSERT INTO employees (full_name, position, role, email, password_hash) VALUES ($1, $2, $3, $4, $5)`,
			e.FullName, e.Position, e.Role, e.Email, string(hash))
		if err != nil {
			return fmt.Errorf("не удалось создать сотрудника %s: %w", e.Email, err)
		}
		log.Printf("    - Создан %s (%s)", e.FullName, e.Role)
	}
	return nil
}
