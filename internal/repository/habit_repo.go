package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"habit-tracker-service/internal/model"
)

type HabitRepository struct {
	db     Querier
	logger *zap.Logger
}

func NewHabitRepository(db Querier, logger *zap.Logger) *HabitRepository {
	return &HabitRepository{
		db:     db,
		logger: logger,
	}
}

func (r *HabitRepository) Insert(ctx context.Context, h *model.Habit) (int, error) {
	defer observe("insert", "habits", time.Now())

	r.logger.Debug("Inserting habit",
		zap.String("name", h.Name),
		zap.Int("goal", h.Goal),
		zap.Int("order_index", h.OrderIndex),
	)

	query := `
        INSERT INTO habits (name, goal, color, order_index, is_active)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		h.Name,
		h.Goal,
		h.Color,
		h.OrderIndex,
		h.IsActive,
	).Scan(&h.ID, &h.CreatedAt)

	if err != nil {
		r.logger.Error("Failed to insert habit", zap.Error(err))
		return 0, err
	}

	r.logger.Info("Habit inserted successfully",
		zap.Int("id", h.ID),
		zap.String("name", h.Name),
	)
	return h.ID, nil
}

func (r *HabitRepository) GetByID(ctx context.Context, id int) (*model.Habit, error) {
	defer observe("select", "habits", time.Now())

	query := `
        SELECT id, name, goal, color, order_index, is_active, created_at
        FROM habits
        WHERE id = $1
    `
	var h model.Habit
	err := r.db.QueryRow(ctx, query, id).Scan(
		&h.ID,
		&h.Name,
		&h.Goal,
		&h.Color,
		&h.OrderIndex,
		&h.IsActive,
		&h.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		r.logger.Error("Failed to get habit", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return &h, nil
}

func (r *HabitRepository) ListActive(ctx context.Context) ([]model.Habit, error) {
	return r.list(ctx, true)
}

func (r *HabitRepository) List(ctx context.Context) ([]model.Habit, error) {
	return r.list(ctx, false)
}

func (r *HabitRepository) list(ctx context.Context, activeOnly bool) ([]model.Habit, error) {
	defer observe("select", "habits", time.Now())

	query := `
        SELECT id, name, goal, color, order_index, is_active, created_at
        FROM habits
    `
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY order_index`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list habits", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var habits []model.Habit
	for rows.Next() {
		var h model.Habit
		if err := rows.Scan(
			&h.ID,
			&h.Name,
			&h.Goal,
			&h.Color,
			&h.OrderIndex,
			&h.IsActive,
			&h.CreatedAt,
		); err != nil {
			r.logger.Error("Failed to scan habit", zap.Error(err))
			return nil, err
		}
		habits = append(habits, h)
	}

	r.logger.Debug("Listed habits",
		zap.Bool("active_only", activeOnly),
		zap.Int("count", len(habits)),
	)
	return habits, rows.Err()
}

func (r *HabitRepository) Update(ctx context.Context, h *model.Habit) error {
	defer observe("update", "habits", time.Now())

	query := `
        UPDATE habits
        SET name = $1, goal = $2, color = $3, order_index = $4, is_active = $5
        WHERE id = $6
    `
	tag, err := r.db.Exec(ctx, query,
		h.Name,
		h.Goal,
		h.Color,
		h.OrderIndex,
		h.IsActive,
		h.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update habit", zap.Int("id", h.ID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	r.logger.Info("Habit updated successfully", zap.Int("id", h.ID))
	return nil
}

// Deactivate soft-deletes a habit; tracking history stays intact.
func (r *HabitRepository) Deactivate(ctx context.Context, id int) error {
	defer observe("update", "habits", time.Now())

	tag, err := r.db.Exec(ctx, `UPDATE habits SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to deactivate habit", zap.Int("id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	r.logger.Info("Habit deactivated", zap.Int("id", id))
	return nil
}

func (r *HabitRepository) CountAll(ctx context.Context) (int, error) {
	defer observe("select", "habits", time.Now())

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM habits`).Scan(&count); err != nil {
		r.logger.Error("Failed to count habits", zap.Error(err))
		return 0, err
	}
	return count, nil
}
