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

func seedAdminUser(ctx context.Context, db *pgxpool.Pool, cfg *config.Config) error {
	log.Println("  - Создание пользователя 'Администратор'...")

	email := "admin@maintenance.local"

	var userID uint64
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE LOWER(email) = LOWER($1)", email).Scan(&userID)
	if err == nil {
		log.Println("    - Администратор уже существует. Пропускаем.")
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("ошибка при проверке существования администратора: %w", err)
	}

	// Пароль по умолчанию, сменить сразу после первого входа.
	hashedPassword, err := utils.HashPassword("admin12345", cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (name, email, password, role, company)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err = db.QueryRow(ctx, query,
		"Администратор",
		email,
		hashedPassword,
		"ADMIN",
		"Завод N1",
	).Scan(&userID)
	if err != nil {
		return fmt.Errorf("ошибка при создании администратора: %w", err)
	}

	log.Printf("    - Администратор создан (id=%d, email=%s).", userID, email)
	return nil
}
