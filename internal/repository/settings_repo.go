package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"habit-tracker-service/internal/model"
)

type SettingsRepository struct {
	db     Querier
	logger *zap.Logger
}

func NewSettingsRepository(db Querier, logger *zap.Logger) *SettingsRepository {
	return &SettingsRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	defer observe("select", "settings", time.Now())

	var value string
	err := r.db.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", model.ErrNotFound
		}
		r.logger.Error("Failed to get setting", zap.String("key", key), zap.Error(err))
		return "", err
	}
	return value, nil
}

func (r *SettingsRepository) GetAll(ctx context.Context) (map[string]string, error) {
	defer observe("select", "settings", time.Now())

	rows, err := r.db.Query(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		r.logger.Error("Failed to list settings", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			r.logger.Error("Failed to scan setting", zap.Error(err))
			return nil, err
		}
		settings[k] = v
	}
	return settings, rows.Err()
}

func (r *SettingsRepository) Upsert(ctx context.Context, key, value string) error {
	defer observe("upsert", "settings", time.Now())

	query := `
        INSERT INTO settings (key, value)
        VALUES ($1, $2)
        ON CONFLICT (key)
        DO UPDATE SET value = $2
    `
	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		r.logger.Error("Failed to upsert setting", zap.String("key", key), zap.Error(err))
		return err
	}

	r.logger.Info("Setting updated", zap.String("key", key))
	return nil
}
