package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDemoData наполняет базу демонстрационными объектами с этапами
// воронки, задачами и выездами. Запускается один раз на пустой базе.
func SeedDemoData(db *pgxpool.Pool) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM installations").Scan(&count); err != nil {
		return fmt.Errorf("ошибка при проверке объектов: %w", err)
	}
	if count > 0 {
		log.Println("  - Объекты уже существуют. Пропускаем демо-данные.")
		return nil
	}

	log.Println("  - Создание демо-данных...")

	clients := []struct {
		Name, Company, Phone, Location, ObjectType string
	}{
		{"Петро Іваненко", "", "+380671234567", "с. Гатне, Київська обл.", "приватний будинок"},
		{"ТОВ «Агросвіт»", "Агросвіт", "+380442345678", "м. Біла Церква", "ферма"},
		{"Марія Грищенко", "", "+380503456789", "м. Бровари", "приватний будинок"},
	}
	clientIDs := make([]uint64, 0, len(clients))
	for _, c := range clients {
		var id uint64
		err := db.QueryRow(ctx,
			`INSERT INTO clients (name, company, phone, location, object_type) VALUES ($1, NULLIF($2, ''), $3, $4, $5) RETURNING id`,
			c.Name, c.Company, c.Phone, c.Location, c.ObjectType).Scan(&id)
		if err != nil {
			return fmt.Errorf("не удалось создать клиента %s: %w", c.Name, err)
		}
		clientIDs = append(clientIDs, id)
	}

	var managerID, installerID uint64
	if err := db.QueryRow(ctx, "SELECT id FROM employees WHERE role = 'manager' LIMIT 1").Scan(&managerID); err != nil {
		return fmt.Errorf("не найден менеджер (сначала запустите -employees): %w", err)
	}
	if err := db.QueryRow(ctx, "SELECT id FROM employees WHERE role = 'installer' LIMIT 1").Scan(&installerID); err != nil {
		return fmt.Errorf("не найден монтажник (сначала запустите -employees): %w", err)
	}

	installations := []struct {
		Name         string
		Priority     string
		Status       string
		CurrentStage string
		CapacityKW   float64
		TotalCost    float64
		PaidAmount   float64
		ClientIdx    int
		Responsible  uint64
	}{
		{"СЕС Гатне 10 кВт", "high", "in_progress", "commercial_proposal", 10, 12500, 5000, 0, managerID},
		{"СЕС Агросвіт 150 кВт", "high", "in_progress", "equipment_order", 150, 98000, 49000, 1, managerID},
		{"СЕС Бровари 8 кВт", "medium", "planning", "first_contact", 8, 9800, 0, 2, installerID},
	}

	for _, inst := range installations {
		var id uint64
		err := db.QueryRow(ctx,
			`INSERT INTO installations (name, priority, status, current_stage, capacity_kw, total_cost, paid_amount, responsible_id, client_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
			inst.Name, inst.Priority, inst.Status, inst.CurrentStage, inst.CapacityKW,
			inst.TotalCost, inst.PaidAmount, inst.Responsible, clientIDs[inst.ClientIdx]).Scan(&id)
		if err != nil {
			return fmt.Errorf("не удалось создать объект %s: %w", inst.Name, err)
		}

		_, err = db.Exec(ctx,
			`INSERT INTO project_stages (installation_id, stage_key, status, responsible_id)
			 VALUES ($1, $2, 'waiting', $3)`,
			id, inst.CurrentStage, inst.Responsible)
		if err != nil {
			return fmt.Errorf("не удалось создать этап объекта %s: %w", inst.Name, err)
		}

		_, err = db.Exec(ctx,
			`INSERT INTO microtasks (title, installation_id, assignee_id, due_date)
			 VALUES ($1, $2, $3, NOW() + INTERVAL '3 days')`,
			"Зателефонувати клієнту: "+inst.Name, id, inst.Responsible)
		if err != nil {
			return fmt.Errorf("не удалось создать задачу для %s: %w", inst.Name, err)
		}

		_, err = db.Exec(ctx,
			`INSERT INTO visits (installation_id, employee_id, visit_date, visit_type, note)
			 VALUES ($1, $2, NOW() + INTERVAL '7 days', 'site_survey', 'Первинний огляд даху')`,
			id, installerID)
		if err != nil {
			return fmt.Errorf("не удалось создать выезд для %s: %w", inst.Name, err)
		}
	}

	log.Printf("    - Создано клиентов: %d, объектов: %d", len(clients), len(installations))
	return nil
}
