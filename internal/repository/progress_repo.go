package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"habit-tracker-service/internal/model"
)

type ProgressRepository struct {
	db     Querier
	logger *zap.Logger
}

func NewProgressRepository(db Querier, logger *zap.Logger) *ProgressRepository {
	return &ProgressRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProgressRepository) GetByDate(ctx context.Context, date time.Time) (*model.DailyProgress, error) {
	defer observe("select", "daily_progress", time.Now())

	query := `
        SELECT id, date, total_habits, completed_habits, failed_habits, completion_percentage
        FROM daily_progress
        WHERE date = $1
    `
	var p model.DailyProgress
	err := r.db.QueryRow(ctx, query, date).Scan(
		&p.ID,
		&p.Date,
		&p.TotalHabits,
		&p.CompletedHabits,
		&p.FailedHabits,
		&p.CompletionPercentage,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		r.logger.Error("Failed to get daily progress",
			zap.Time("date", date),
			zap.Error(err),
		)
		return nil, err
	}
	return &p, nil
}

// Upsert writes the summary row for a date; the date column is unique so
// re-running reconciliation overwrites the same row.
func (r *ProgressRepository) Upsert(ctx context.Context, p *model.DailyProgress) error {
	defer observe("upsert", "daily_progress", time.Now())

	query := `
        INSERT INTO daily_progress (date, total_habits, completed_habits, failed_habits, completion_percentage)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (date)
        DO UPDATE SET total_habits = $2, completed_habits = $3, failed_habits = $4, completion_percentage = $5
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query,
		p.Date,
		p.TotalHabits,
		p.CompletedHabits,
		p.FailedHabits,
		p.CompletionPercentage,
	).Scan(&p.ID)

	if err != nil {
		r.logger.Error("Failed to upsert daily progress",
			zap.Time("date", p.Date),
			zap.Error(err),
		)
		return err
	}

	r.logger.Info("Daily progress upserted",
		zap.Time("date", p.Date),
		zap.Int("total", p.TotalHabits),
		zap.Int("completed", p.CompletedHabits),
		zap.Int("failed", p.FailedHabits),
		zap.Float64("completion_percentage", p.CompletionPercentage),
	)
	return nil
}
