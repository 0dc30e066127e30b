package main

import (
	"context"
	"flag"
	"log"

	"maintenance-system/pkg/config"
	"maintenance-system/pkg/database/postgresql"
	"maintenance-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runDicts := flag.Bool("dicts", false, "Запустить наполнение справочников (команды, категории, рабочие центры)")
	runAdmin := flag.Bool("admin", false, "Запустить создание администратора")
	runDemo := flag.Bool("demo", false, "Запустить наполнение демонстрационных данных")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -dicts -admin -demo)")

	flag.Parse()

	if !*runDicts && !*runAdmin && !*runDemo && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -dicts")
		log.Println("  go run ./seeders/cmd/seed -dicts -admin")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)

	dbPool, err := postgresql.Connect(context.Background(), cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("❌ Не удалось подключиться к БД: %v", err)
	}
	defer dbPool.Close()

	log.Println("======================================================")

	// Порядок важен: демо-данные зависят от справочников.
	if *runAll || *runDicts {
		seeders.SeedDictionaries(dbPool)
		log.Println("======================================================")
	}

	if *runAll || *runAdmin {
		seeders.SeedAdmin(dbPool, cfg)
		log.Println("======================================================")
	}

	if *runAll || *runDemo {
		seeders.SeedDemo(dbPool, cfg)
		log.Println("======================================================")
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
