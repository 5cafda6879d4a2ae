package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"habit-tracker-service/internal/model"
)

type TrackingRepository struct {
	db     Querier
	logger *zap.Logger
}

func NewTrackingRepository(db Querier, logger *zap.Logger) *TrackingRepository {
	return &TrackingRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TrackingRepository) GetByHabitAndDate(ctx context.Context, habitID int, date time.Time) (*model.TrackingRecord, error) {
	defer observe("select", "habit_tracking", time.Now())

	query := `
        SELECT id, habit_id, date, completed, failed, streak_count
        FROM habit_tracking
        WHERE habit_id = $1 AND date = $2
    `
	var rec model.TrackingRecord
	err := r.db.QueryRow(ctx, query, habitID, date).Scan(
		&rec.ID,
		&rec.HabitID,
		&rec.Date,
		&rec.Completed,
		&rec.Failed,
		&rec.StreakCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		r.logger.Error("Failed to get tracking record",
			zap.Int("habit_id", habitID),
			zap.Time("date", date),
			zap.Error(err),
		)
		return nil, err
	}
	return &rec, nil
}

// Upsert writes the record for (habit_id, date) as a single atomic
// statement. Concurrent writers for the same key serialize on the unique
// constraint; last writer wins.
func (r *TrackingRepository) Upsert(ctx context.Context, rec *model.TrackingRecord) error {
	defer observe("upsert", "habit_tracking", time.Now())

	r.logger.Debug("Upserting tracking record",
		zap.Int("habit_id", rec.HabitID),
		zap.Time("date", rec.Date),
		zap.Bool("completed", rec.Completed),
		zap.Bool("failed", rec.Failed),
		zap.Int("streak_count", rec.StreakCount),
	)

	query := `
        INSERT INTO habit_tracking (habit_id, date, completed, failed, streak_count)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (habit_id, date)
        DO UPDATE SET completed = $3, failed = $4, streak_count = $5
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query,
		rec.HabitID,
		rec.Date,
		rec.Completed,
		rec.Failed,
		rec.StreakCount,
	).Scan(&rec.ID)

	if err != nil {
		r.logger.Error("Failed to upsert tracking record",
			zap.Int("habit_id", rec.HabitID),
			zap.Time("date", rec.Date),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *TrackingRepository) ListByHabitAndRange(ctx context.Context, habitID int, from, to time.Time) ([]model.TrackingRecord, error) {
	defer observe("select", "habit_tracking", time.Now())

	query := `
        SELECT id, habit_id, date, completed, failed, streak_count
        FROM habit_tracking
        WHERE habit_id = $1 AND date >= $2 AND date <= $3
        ORDER BY date
    `
	rows, err := r.db.Query(ctx, query, habitID, from, to)
	if err != nil {
		r.logger.Error("Failed to list tracking records",
			zap.Int("habit_id", habitID),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	var records []model.TrackingRecord
	for rows.Next() {
		var rec model.TrackingRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.HabitID,
			&rec.Date,
			&rec.Completed,
			&rec.Failed,
			&rec.StreakCount,
		); err != nil {
			r.logger.Error("Failed to scan tracking record", zap.Error(err))
			return nil, err
		}
		records = append(records, rec)
	}

	r.logger.Debug("Listed tracking records",
		zap.Int("habit_id", habitID),
		zap.Int("count", len(records)),
	)
	return records, rows.Err()
}

func (r *TrackingRepository) ListByHabit(ctx context.Context, habitID int) ([]model.TrackingRecord, error) {
	defer observe("select", "habit_tracking", time.Now())

	query := `
        SELECT id, habit_id, date, completed, failed, streak_count
        FROM habit_tracking
        WHERE habit_id = $1
        ORDER BY date
    `
	rows, err := r.db.Query(ctx, query, habitID)
	if err != nil {
		r.logger.Error("Failed to list tracking records",
			zap.Int("habit_id", habitID),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	var records []model.TrackingRecord
	for rows.Next() {
		var rec model.TrackingRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.HabitID,
			&rec.Date,
			&rec.Completed,
			&rec.Failed,
			&rec.StreakCount,
		); err != nil {
			r.logger.Error("Failed to scan tracking record", zap.Error(err))
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
