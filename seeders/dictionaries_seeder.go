package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedTeams(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'teams'...")

	teams := []struct {
		name    string
		company string
	}{
		{"Механики", "Завод N1"},
		{"Электрики", "Завод N1"},
		{"КИПиА", "Завод N1"},
	}

	for _, t := range teams {
		var exists bool
		err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM teams WHERE name = $1)", t.name).Scan(&exists)
		if err != nil {
			return fmt.Errorf("ошибка проверки команды %q: %w", t.name, err)
		}
		if exists {
			continue
		}
		_, err = db.Exec(ctx, "INSERT INTO teams (name, company) VALUES ($1, $2)", t.name, t.company)
		if err != nil {
			return fmt.Errorf("ошибка вставки команды %q: %w", t.name, err)
		}
	}
	return nil
}

func seedCategories(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'categories'...")

	categories := []struct {
		name        string
		responsible string
	}{
		{"Станки", "Главный механик"},
		{"Электрооборудование", "Главный энергетик"},
		{"Транспорт", "Начальник транспортного цеха"},
		{"Оргтехника", "Отдел ИТ"},
	}

	for _, c := range categories {
		var exists bool
		err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)", c.name).Scan(&exists)
		if err != nil {
			return fmt.Errorf("ошибка проверки категории %q: %w", c.name, err)
		}
		if exists {
			continue
		}
		_, err = db.Exec(ctx,
			"INSERT INTO categories (name, responsible, company) VALUES ($1, $2, $3)",
			c.name, c.responsible, "Завод N1")
		if err != nil {
			return fmt.Errorf("ошибка вставки категории %q: %w", c.name, err)
		}
	}
	return nil
}

func seedWorkCenters(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'work_centers'...")

	centers := []struct {
		name        string
		code        string
		costPerHour float64
		capacity    float64
	}{
		{"Механический цех", "WC-MECH", 1500, 8},
		{"Сборочный цех", "WC-ASSY", 1200, 10},
		{"Покрасочный цех", "WC-PAINT", 900, 6},
	}

	for _, wc := range centers {
		query := `INSERT INTO work_centers (name, code, cost_per_hour, capacity)
                  VALUES ($1, $2, $3, $4) ON CONFLICT (code) DO NOTHING`
		_, err := db.Exec(ctx, query, wc.name, wc.code, wc.costPerHour, wc.capacity)
		if err != nil {
			return fmt.Errorf("ошибка вставки рабочего центра %q: %w", wc.code, err)
		}
	}
	return nil
}
