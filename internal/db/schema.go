package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS habits (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		goal INT NOT NULL DEFAULT 30,
		color VARCHAR(50) NOT NULL DEFAULT '#00ff00',
		order_index INT NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS habit_tracking (
		id SERIAL PRIMARY KEY,
		habit_id INT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		failed BOOLEAN NOT NULL DEFAULT FALSE,
		streak_count INT NOT NULL DEFAULT 0,
		UNIQUE (habit_id, date)
	)`,
	`CREATE TABLE IF NOT EXISTS daily_progress (
		id SERIAL PRIMARY KEY,
		date DATE NOT NULL UNIQUE,
		total_habits INT NOT NULL DEFAULT 0,
		completed_habits INT NOT NULL DEFAULT 0,
		failed_habits INT NOT NULL DEFAULT 0,
		completion_percentage DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS notification_logs (
		id SERIAL PRIMARY KEY,
		notification_type VARCHAR(50) NOT NULL,
		message VARCHAR(1000) NOT NULL,
		success BOOLEAN NOT NULL DEFAULT TRUE,
		sent_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id SERIAL PRIMARY KEY,
		key VARCHAR(100) NOT NULL UNIQUE,
		value VARCHAR(500) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS money_market_progress (
		id SERIAL PRIMARY KEY,
		date DATE NOT NULL UNIQUE,
		concept_name VARCHAR(255) NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		notes VARCHAR(2000),
		time_spent_minutes INT NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_habit_tracking_date ON habit_tracking (date)`,
}

// Migrate creates the schema when it does not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	logger.Info("Applying database schema")

	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			logger.Error("Schema statement failed", zap.Error(err))
			return err
		}
	}

	logger.Info("Database schema ready")
	return nil
}

// defaultHabits is inserted on first boot so a fresh install has
// something to track.
var defaultHabits = []struct {
	Name string
	Goal int
}{
	{"Wake up without snoozing", 30},
	{"Read 20 minutes", 30},
	{"Workout 30 minutes", 30},
	{"Write 1 page journal", 30},
	{"Sleep before 11 PM", 30},
	{"Money Market - learn 1 concept", 30},
}

// SeedDefaultHabits populates the habits table when it is empty.
func SeedDefaultHabits(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM habits`).Scan(&count); err != nil {
		logger.Error("Failed to count habits", zap.Error(err))
		return err
	}
	if count > 0 {
		logger.Debug("Habits already present, skipping seed", zap.Int("count", count))
		return nil
	}

	for i, h := range defaultHabits {
		_, err := pool.Exec(ctx,
			`INSERT INTO habits (name, goal, order_index) VALUES ($1, $2, $3)`,
			h.Name, h.Goal, i,
		)
		if err != nil {
			logger.Error("Failed to seed habit",
				zap.String("name", h.Name),
				zap.Error(err),
			)
			return err
		}
	}

	logger.Info("Seeded default habits", zap.Int("count", len(defaultHabits)))
	return nil
}
