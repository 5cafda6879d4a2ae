package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"habit-tracker-service/internal/calendar"
	"habit-tracker-service/internal/model"
)

// HabitLister is the slice of the habit store the dashboard needs.
type HabitLister interface {
	ListActive(ctx context.Context) ([]model.Habit, error)
}

// TrackingLister is the slice of the record store the dashboard needs.
type TrackingLister interface {
	ListByHabitAndRange(ctx context.Context, habitID int, from, to time.Time) ([]model.TrackingRecord, error)
}

// Service serves month views: fetch, aggregate, cache.
type Service struct {
	habits   HabitLister
	tracking TrackingLister
	cache    *Cache
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(habits HabitLister, tracking TrackingLister, cache *Cache, logger *zap.Logger) *Service {
	return &Service{
		habits:   habits,
		tracking: tracking,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

// MonthView returns the dashboard for a month. The view is best-effort
// current: unset past days are surfaced as failed even when the
// reconciliation job has not caught up yet.
func (s *Service) MonthView(ctx context.Context, year int, month time.Month) (*MonthView, error) {
	if view, ok := s.cache.Get(ctx, year, month); ok {
		s.logger.Debug("Month view served from cache",
			zap.Int("year", year),
			zap.Int("month", int(month)),
		)
		return view, nil
	}

	habits, err := s.habits.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	first, last := calendar.MonthRange(year, month)
	records := make(map[int][]model.TrackingRecord, len(habits))
	for _, habit := range habits {
		recs, err := s.tracking.ListByHabitAndRange(ctx, habit.ID, first, last)
		if err != nil {
			return nil, err
		}
		records[habit.ID] = recs
	}

	view := BuildMonthView(habits, records, year, month, s.now())
	s.cache.Set(ctx, view)

	s.logger.Info("Month view built",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Int("habit_count", len(habits)),
	)
	return view, nil
}
