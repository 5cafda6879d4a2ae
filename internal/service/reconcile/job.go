// Package reconcile closes out calendar days: once a day has passed, every
// active habit without a completed record for it is irrevocably marked
// failed, the daily summary row is recomputed, and a failure notification
// is dispatched.
package reconcile

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"habit-tracker-service/internal/calendar"
	"habit-tracker-service/internal/model"
	"habit-tracker-service/internal/service/streak"
	"habit-tracker-service/pkg/metrics"
)

// TickStore is the transactional view of the record store for one tick.
// Every write issued through it commits or aborts as a unit.
type TickStore interface {
	GetTracking(ctx context.Context, habitID int, date time.Time) (*model.TrackingRecord, error)
	UpsertTracking(ctx context.Context, rec *model.TrackingRecord) error
	UpsertProgress(ctx context.Context, p *model.DailyProgress) error
}

// Store is the record store boundary the job runs against.
type Store interface {
	ListActiveHabits(ctx context.Context) ([]model.Habit, error)
	// RunTick executes fn inside a single transaction and commits only
	// when fn returns nil.
	RunTick(ctx context.Context, fn func(TickStore) error) error
}

// Notifier receives the names of habits that failed a closed day.
// Implementations must never block reconciliation on delivery problems.
type Notifier interface {
	NotifyFailures(ctx context.Context, failedHabits []string, date time.Time)
}

// Job is the daily reconciliation entry point. Safe to invoke more than
// once for the same closed day: both the present-and-incomplete and the
// absent branches converge to the same terminal record, and the summary
// row is keyed by date.
type Job struct {
	store    Store
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time

	mu sync.Mutex
}

func NewJob(store Store, notifier Notifier, logger *zap.Logger) *Job {
	return &Job{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// RunDailyReconciliation closes out yesterday. Concurrent invocations are
// serialized; the loser of the race simply re-derives the same state.
func (j *Job) RunDailyReconciliation(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	targetDate := calendar.DateOnly(j.now()).AddDate(0, 0, -1)
	return j.reconcileDate(ctx, targetDate)
}

func (j *Job) reconcileDate(ctx context.Context, targetDate time.Time) error {
	j.logger.Info("Starting daily reconciliation",
		zap.String("target_date", calendar.FormatDate(targetDate)),
	)

	habits, err := j.store.ListActiveHabits(ctx)
	if err != nil {
		j.logger.Error("Failed to list active habits", zap.Error(err))
		metrics.IncrementReconciliationRun("aborted")
		return err
	}

	var failedNames []string
	err = j.store.RunTick(ctx, func(ts TickStore) error {
		// The closure may be retried by the store; start clean.
		failedNames = failedNames[:0]

		for _, habit := range habits {
			rec, err := ts.GetTracking(ctx, habit.ID, targetDate)
			switch {
			case errors.Is(err, model.ErrNotFound):
				// Day closed with no user action at all.
				synth := streak.FailedRecord(habit.ID, targetDate)
				if err := ts.UpsertTracking(ctx, &synth); err != nil {
					return err
				}
				failedNames = append(failedNames, habit.Name)
			case err != nil:
				return err
			case !rec.Completed:
				rec.Failed = true
				rec.StreakCount = 0
				if err := ts.UpsertTracking(ctx, rec); err != nil {
					return err
				}
				failedNames = append(failedNames, habit.Name)
			}
		}

		completed := len(habits) - len(failedNames)
		return ts.UpsertProgress(ctx, &model.DailyProgress{
			Date:                 targetDate,
			TotalHabits:          len(habits),
			CompletedHabits:      completed,
			FailedHabits:         len(failedNames),
			CompletionPercentage: model.Percentage(completed, len(habits)),
		})
	})
	if err != nil {
		j.logger.Error("Reconciliation tick aborted, no partial state committed",
			zap.String("target_date", calendar.FormatDate(targetDate)),
			zap.Error(err),
		)
		metrics.IncrementReconciliationRun("aborted")
		return err
	}

	metrics.IncrementReconciliationRun("committed")
	metrics.HabitsFailedTotal.Add(float64(len(failedNames)))
	for range failedNames {
		metrics.IncrementTrackingUpdate("reconcile")
	}

	// Notification runs after commit and never rolls the tick back.
	if len(failedNames) > 0 && j.notifier != nil {
		j.notifier.NotifyFailures(ctx, failedNames, targetDate)
	}

	j.logger.Info("Daily reconciliation committed",
		zap.String("target_date", calendar.FormatDate(targetDate)),
		zap.Int("total_habits", len(habits)),
		zap.Int("failed_habits", len(failedNames)),
	)
	return nil
}
