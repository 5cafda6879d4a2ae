package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"habit-tracker-service/internal/model"
	"habit-tracker-service/internal/repository"
)

// PgStore backs the job with PostgreSQL. A tick is one pgx transaction,
// so a storage failure partway leaves no habit reconciled for that tick.
type PgStore struct {
	pool   *pgxpool.Pool
	habits *repository.HabitRepository
	logger *zap.Logger
}

func NewPgStore(pool *pgxpool.Pool, logger *zap.Logger) *PgStore {
	return &PgStore{
		pool:   pool,
		habits: repository.NewHabitRepository(pool, logger),
		logger: logger,
	}
}

func (s *PgStore) ListActiveHabits(ctx context.Context) ([]model.Habit, error) {
	return s.habits.ListActive(ctx)
}

func (s *PgStore) RunTick(ctx context.Context, fn func(TickStore) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin reconciliation transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ts := &pgTickStore{
		tracking: repository.NewTrackingRepository(tx, s.logger),
		progress: repository.NewProgressRepository(tx, s.logger),
	}
	if err := fn(ts); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reconciliation transaction: %w", err)
	}
	return nil
}

type pgTickStore struct {
	tracking *repository.TrackingRepository
	progress *repository.ProgressRepository
}

func (t *pgTickStore) GetTracking(ctx context.Context, habitID int, date time.Time) (*model.TrackingRecord, error) {
	return t.tracking.GetByHabitAndDate(ctx, habitID, date)
}

func (t *pgTickStore) UpsertTracking(ctx context.Context, rec *model.TrackingRecord) error {
	return t.tracking.Upsert(ctx, rec)
}

func (t *pgTickStore) UpsertProgress(ctx context.Context, p *model.DailyProgress) error {
	return t.progress.Upsert(ctx, p)
}
