package streak

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"habit-tracker-service/internal/calendar"
	"habit-tracker-service/internal/model"
	"habit-tracker-service/pkg/metrics"
)

// HabitGetter is the slice of the habit store the tracker needs.
type HabitGetter interface {
	GetByID(ctx context.Context, id int) (*model.Habit, error)
}

// TrackingStore is the slice of the record store the tracker needs.
type TrackingStore interface {
	GetByHabitAndDate(ctx context.Context, habitID int, date time.Time) (*model.TrackingRecord, error)
	Upsert(ctx context.Context, rec *model.TrackingRecord) error
}

// Invalidator drops cached dashboard views after a write. Optional.
type Invalidator interface {
	InvalidateMonth(ctx context.Context, year int, month time.Month)
}

// Tracker applies a completion signal for one habit-day and persists the
// resulting record. Calling it again for the same day overwrites the
// prior record; there is no historical versioning.
type Tracker struct {
	habits      HabitGetter
	tracking    TrackingStore
	invalidator Invalidator
	logger      *zap.Logger
}

func NewTracker(habits HabitGetter, tracking TrackingStore, invalidator Invalidator, logger *zap.Logger) *Tracker {
	return &Tracker{
		habits:      habits,
		tracking:    tracking,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Track upserts the tracking record for (habitID, date). The streak is
// derived from the record of the previous calendar day, if any.
func (t *Tracker) Track(ctx context.Context, habitID int, date time.Time, completed bool, explicitFailed *bool) (*model.TrackingRecord, error) {
	date = calendar.DateOnly(date)

	if _, err := t.habits.GetByID(ctx, habitID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("habit %d: %w", habitID, model.ErrNotFound)
		}
		return nil, err
	}

	prior, err := t.tracking.GetByHabitAndDate(ctx, habitID, date.AddDate(0, 0, -1))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	failed, streakCount := Resolve(prior, completed, explicitFailed)

	rec := &model.TrackingRecord{
		HabitID:     habitID,
		Date:        date,
		Completed:   completed,
		Failed:      failed,
		StreakCount: streakCount,
	}
	if err := t.tracking.Upsert(ctx, rec); err != nil {
		return nil, err
	}
	metrics.IncrementTrackingUpdate("api")

	if t.invalidator != nil {
		t.invalidator.InvalidateMonth(ctx, date.Year(), date.Month())
	}

	t.logger.Info("Tracking record stored",
		zap.Int("habit_id", habitID),
		zap.String("date", calendar.FormatDate(date)),
		zap.Bool("completed", completed),
		zap.Bool("failed", failed),
		zap.Int("streak_count", streakCount),
	)
	return rec, nil
}
