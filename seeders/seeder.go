package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"maintenance-system/pkg/config"
)

// SeedDictionaries наполняет справочники, не имеющие зависимостей:
// команды, категории и рабочие центры.
func SeedDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения справочников...")

	if err := seedTeams(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Команд (Teams): %v", err)
	}
	if err := seedCategories(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Категорий (Categories): %v", err)
	}
	if err := seedWorkCenters(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Рабочих Центров (WorkCenters): %v", err)
	}
	log.Println("✅ Наполнение справочников завершено!")
}

// SeedAdmin создаёт администратора системы, если его ещё нет.
func SeedAdmin(db *pgxpool.Pool, cfg *config.Config) {
	ctx := context.Background()
	log.Println("▶️  Запуск создания администратора...")

	if err := seedAdminUser(ctx, db, cfg); err != nil {
		log.Fatalf("❌ Ошибка создания администратора: %v", err)
	}
	log.Println("✅ Администратор настроен!")
}

// SeedDemo наполняет базу демонстрационными данными: пользователи,
// оборудование и заявки. Зависит от справочников, запускать после них.
func SeedDemo(db *pgxpool.Pool, cfg *config.Config) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения демонстрационных данных...")

	if err := seedDemoUsers(ctx, db, cfg); err != nil {
		log.Fatalf("❌ Ошибка наполнения демо-пользователей: %v", err)
	}
	if err := seedDemoEquipment(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения демо-оборудования: %v", err)
	}
	if err := seedDemoRequests(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения демо-заявок: %v", err)
	}
	log.Println("✅ Демонстрационные данные загружены!")
}
