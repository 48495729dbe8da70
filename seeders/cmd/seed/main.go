package main

import (
	"context"
	"flag"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"solar-crm/migrations"
	"solar-crm/pkg/config"
	"solar-crm/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 Наполнение базы данных Solar-CRM            ")
	log.Println("======================================================")

	runEmployees := flag.Bool("employees", false, "Создать базовых сотрудников (admin, manager, монтажники)")
	runDemo := flag.Bool("demo", false, "Создать демо-данные (клиенты, объекты, этапы)")
	runAll := flag.Bool("all", false, "Запустить все сидеры")

	flag.Parse()

	if !*runEmployees && !*runDemo && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры:")
		log.Println("  go run ./seeders/cmd/seed -employees")
		log.Println("  go run ./seeders/cmd/seed -all")
		return
	}

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)

	if err := migrations.Up(cfg.Postgres.DSN); err != nil {
		log.Fatalf("❌ Миграции не применились: %v", err)
	}

	dbPool, err := pgxpool.New(context.Background(), cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("❌ Не удалось подключиться к БД: %v", err)
	}
	defer dbPool.Close()

	if *runAll || *runEmployees {
		if err := seeders.SeedEmployees(dbPool); err != nil {
			log.Fatalf("❌ Сидер сотрудников: %v", err)
		}
	}
	if *runAll || *runDemo {
		if err := seeders.SeedDemoData(dbPool); err != nil {
			log.Fatalf("❌ Сидер демо-данных: %v", err)
		}
	}

	log.Println("✅ Сидирование завершено.")
	log.Println("======================================================")
}
