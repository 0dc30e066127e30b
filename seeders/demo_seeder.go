package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"maintenance-system/pkg/config"
	"maintenance-system/pkg/utils"
)

// lookupID возвращает id записи по условию или pgx.ErrNoRows.
func lookupID(ctx context.Context, db *pgxpool.Pool, query string, args ...interface{}) (uint64, error) {
	var id uint64
	err := db.QueryRow(ctx, query, args...).Scan(&id)
	return id, err
}

func seedDemoUsers(ctx context.Context, db *pgxpool.Pool, cfg *config.Config) error {
	log.Println("  - Наполнение демо-пользователей...")

	mechTeamID, err := lookupID(ctx, db, "SELECT id FROM teams WHERE name = 'Механики' LIMIT 1")
	if err != nil {
		return fmt.Errorf("не найдена команда 'Механики', сначала запустите справочники: %w", err)
	}
	elecTeamID, err := lookupID(ctx, db, "SELECT id FROM teams WHERE name = 'Электрики' LIMIT 1")
	if err != nil {
		return fmt.Errorf("не найдена команда 'Электрики': %w", err)
	}

	users := []struct {
		name   string
		email  string
		role   string
		teamID *uint64
	}{
		{"Менеджер Участка", "manager@maintenance.local", "MANAGER", nil},
		{"Иванов Пётр", "tech-mech@maintenance.local", "TECHNICIAN", &mechTeamID},
		{"Сидоров Алексей", "tech-elec@maintenance.local", "TECHNICIAN", &elecTeamID},
		{"Петрова Анна", "user@maintenance.local", "USER", nil},
	}

	for _, u := range users {
		var existingID uint64
		err := db.QueryRow(ctx, "SELECT id FROM users WHERE LOWER(email) = LOWER($1)", u.email).Scan(&existingID)
		if err == nil {
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("ошибка проверки пользователя %q: %w", u.email, err)
		}

		hashedPassword, err := utils.HashPassword("demo12345", cfg.Auth.BcryptCost)
		if err != nil {
			return err
		}

		query := `INSERT INTO users (name, email, password, role, company, team_id)
                  VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := db.Exec(ctx, query, u.name, u.email, hashedPassword, u.role, "Завод N1", u.teamID); err != nil {
			return fmt.Errorf("ошибка вставки пользователя %q: %w", u.email, err)
		}
	}
	return nil
}

func seedDemoEquipment(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение демо-оборудования...")

	machinesCatID, err := lookupID(ctx, db, "SELECT id FROM categories WHERE name = 'Станки' LIMIT 1")
	if err != nil {
		return fmt.Errorf("не найдена категория 'Станки': %w", err)
	}
	elecCatID, err := lookupID(ctx, db, "SELECT id FROM categories WHERE name = 'Электрооборудование' LIMIT 1")
	if err != nil {
		return fmt.Errorf("не найдена категория 'Электрооборудование': %w", err)
	}
	mechTeamID, err := lookupID(ctx, db, "SELECT id FROM teams WHERE name = 'Механики' LIMIT 1")
	if err != nil {
		return fmt.Errorf("не найдена команда 'Механики': %w", err)
	}
	elecTeamID, err := lookupID(ctx, db, "SELECT id FROM teams WHERE name = 'Электрики' LIMIT 1")
	if err != nil {
		return fmt.Errorf("не найдена команда 'Электрики': %w", err)
	}
	wcID, err := lookupID(ctx, db, "SELECT id FROM work_centers WHERE code = 'WC-MECH' LIMIT 1")
	if err != nil {
		return fmt.Errorf("не найден рабочий центр 'WC-MECH': %w", err)
	}

	equipment := []struct {
		name         string
		categoryID   uint64
		teamID       uint64
		workCenterID *uint64
		employee     string
		location     string
	}{
		{"Токарный станок ТВ-320", machinesCatID, mechTeamID, &wcID, "", "Цех 1"},
		{"Фрезерный станок ФС-250", machinesCatID, mechTeamID, &wcID, "", "Цех 1"},
		{"Компрессор КВ-700", elecCatID, elecTeamID, nil, "", "Цех 2"},
		{"Ноутбук Dell Latitude", elecCatID, elecTeamID, nil, "Петрова Анна", "Офис"},
	}

	for _, e := range equipment {
		var exists bool
		err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM equipment WHERE name = $1)", e.name).Scan(&exists)
		if err != nil {
			return fmt.Errorf("ошибка проверки оборудования %q: %w", e.name, err)
		}
		if exists {
			continue
		}
		query := `INSERT INTO equipment (name, category_id, team_id, work_center_id, employee_name, location, company)
                  VALUES ($1, $2, $3, $4, $5, $6, $7)`
		if _, err := db.Exec(ctx, query, e.name, e.categoryID, e.teamID, e.workCenterID, e.employee, e.location, "Завод N1"); err != nil {
			return fmt.Errorf("ошибка вставки оборудования %q: %w", e.name, err)
		}
	}
	return nil
}

func seedDemoRequests(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение демо-заявок...")

	var count int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM maintenance_requests").Scan(&count); err != nil {
		return fmt.Errorf("ошибка подсчёта заявок: %w", err)
	}
	if count > 0 {
		log.Println("    - Заявки уже существуют. Пропускаем.")
		return nil
	}

	creatorID, err := lookupID(ctx, db, "SELECT id FROM users WHERE LOWER(email) = 'user@maintenance.local' LIMIT 1")
	if err != nil {
		return fmt.Errorf("не найден демо-пользователь, сначала запустите демо-пользователей: %w", err)
	}
	techID, err := lookupID(ctx, db, "SELECT id FROM users WHERE LOWER(email) = 'tech-mech@maintenance.local' LIMIT 1")
	if err != nil {
		return fmt.Errorf("не найден демо-техник: %w", err)
	}
	latheID, err := lookupID(ctx, db, "SELECT id FROM equipment WHERE name = 'Токарный станок ТВ-320' LIMIT 1")
	if err != nil {
		return fmt.Errorf("не найдено демо-оборудование: %w", err)
	}
	millID, err := lookupID(ctx, db, "SELECT id FROM equipment WHERE name = 'Фрезерный станок ФС-250' LIMIT 1")
	if err != nil {
		return fmt.Errorf("не найдено демо-оборудование: %w", err)
	}

	requests := []struct {
		subject     string
		mType       string
		status      string
		priority    int
		equipmentID uint64
		techID      *uint64
		scheduled   *string
	}{
		{"Вибрация шпинделя", "CORRECTIVE", "NEW", 4, latheID, nil, nil},
		{"Замена масла в редукторе", "PREVENTIVE", "NEW", 2, latheID, &techID, ptr("2026-09-15 09:00:00+00")},
		{"Не включается привод подачи", "CORRECTIVE", "IN_PROGRESS", 5, millID, &techID, nil},
	}

	for _, r := range requests {
		query := `INSERT INTO maintenance_requests
                      (subject, maintenance_type, status, priority, created_by_id,
                       equipment_id, category_id, team_id, technician_id, scheduled_date, company)
                  SELECT $1, $2, $3, $4, $5, e.id, e.category_id, e.team_id, $6, $7::timestamptz, e.company
                  FROM equipment e WHERE e.id = $8`
		_, err := db.Exec(ctx, query,
			r.subject, r.mType, r.status, r.priority, creatorID,
			r.techID, r.scheduled, r.equipmentID)
		if err != nil {
			return fmt.Errorf("ошибка вставки заявки %q: %w", r.subject, err)
		}
	}
	return nil
}

func ptr(s string) *string { return &s }
