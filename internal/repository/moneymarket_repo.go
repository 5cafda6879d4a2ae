package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"habit-tracker-service/internal/model"
)

type MoneyMarketRepository struct {
	db     Querier
	logger *zap.Logger
}

func NewMoneyMarketRepository(db Querier, logger *zap.Logger) *MoneyMarketRepository {
	return &MoneyMarketRepository{
		db:     db,
		logger: logger,
	}
}

func (r *MoneyMarketRepository) GetByDate(ctx context.Context, date time.Time) (*model.MoneyMarketProgress, error) {
	defer observe("select", "money_market_progress", time.Now())

	query := `
        SELECT id, date, concept_name, completed, COALESCE(notes, ''), time_spent_minutes
        FROM money_market_progress
        WHERE date = $1
    `
	var p model.MoneyMarketProgress
	err := r.db.QueryRow(ctx, query, date).Scan(
		&p.ID,
		&p.Date,
		&p.ConceptName,
		&p.Completed,
		&p.Notes,
		&p.TimeSpentMinutes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		r.logger.Error("Failed to get money market progress",
			zap.Time("date", date),
			zap.Error(err),
		)
		return nil, err
	}
	return &p, nil
}

func (r *MoneyMarketRepository) Upsert(ctx context.Context, p *model.MoneyMarketProgress) error {
	defer observe("upsert", "money_market_progress", time.Now())

	query := `
        INSERT INTO money_market_progress (date, concept_name, completed, notes, time_spent_minutes)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (date)
        DO UPDATE SET concept_name = $2, completed = $3, notes = $4, time_spent_minutes = $5
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query,
		p.Date,
		p.ConceptName,
		p.Completed,
		p.Notes,
		p.TimeSpentMinutes,
	).Scan(&p.ID)

	if err != nil {
		r.logger.Error("Failed to upsert money market progress",
			zap.Time("date", p.Date),
			zap.Error(err),
		)
		return err
	}

	r.logger.Info("Money market progress upserted",
		zap.Time("date", p.Date),
		zap.String("concept", p.ConceptName),
	)
	return nil
}

func (r *MoneyMarketRepository) CountCompleted(ctx context.Context) (int, error) {
	defer observe("select", "money_market_progress", time.Now())

	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM money_market_progress WHERE completed = TRUE`,
	).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count completed concepts", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *MoneyMarketRepository) ListRecentCompleted(ctx context.Context, limit int) ([]model.MoneyMarketProgress, error) {
	defer observe("select", "money_market_progress", time.Now())

	query := `
        SELECT id, date, concept_name, completed, COALESCE(notes, ''), time_spent_minutes
        FROM money_market_progress
        WHERE completed = TRUE
        ORDER BY date DESC
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to list recent completions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []model.MoneyMarketProgress
	for rows.Next() {
		var p model.MoneyMarketProgress
		if err := rows.Scan(
			&p.ID,
			&p.Date,
			&p.ConceptName,
			&p.Completed,
			&p.Notes,
			&p.TimeSpentMinutes,
		); err != nil {
			r.logger.Error("Failed to scan money market progress", zap.Error(err))
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
