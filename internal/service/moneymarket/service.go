// Package moneymarket tracks progress through a fixed catalogue of
// money-market learning concepts, one per day.
package moneymarket

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"habit-tracker-service/internal/calendar"
	"habit-tracker-service/internal/model"
)

// Store is the slice of the record store this module needs.
type Store interface {
	GetByDate(ctx context.Context, date time.Time) (*model.MoneyMarketProgress, error)
	Upsert(ctx context.Context, p *model.MoneyMarketProgress) error
	CountCompleted(ctx context.Context) (int, error)
	ListRecentCompleted(ctx context.Context, limit int) ([]model.MoneyMarketProgress, error)
}

// TodayView is the concept served for one day plus its progress.
type TodayView struct {
	Concept   *Concept `json:"concept"`
	Completed bool     `json:"completed"`
	Notes     string   `json:"notes"`
	TimeSpent int      `json:"time_spent"`
}

// RecentCompletion is one row of the progress history.
type RecentCompletion struct {
	Date    string `json:"date"`
	Concept string `json:"concept"`
}

// ProgressView is the overall catalogue progress.
type ProgressView struct {
	TotalConcepts     int                `json:"total_concepts"`
	CompletedConcepts int                `json:"completed_concepts"`
	Percentage        float64            `json:"percentage"`
	RecentCompletions []RecentCompletion `json:"recent_completions"`
}

type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// TodayConcept returns today's concept: the one already recorded for
// today if present, otherwise the next unlearned concept, cycling through
// the catalogue.
func (s *Service) TodayConcept(ctx context.Context) (*TodayView, error) {
	today := calendar.DateOnly(s.now())

	progress, err := s.store.GetByDate(ctx, today)
	if err == nil {
		return &TodayView{
			Concept:   conceptByName(progress.ConceptName),
			Completed: progress.Completed,
			Notes:     progress.Notes,
			TimeSpent: progress.TimeSpentMinutes,
		}, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	completedCount, err := s.store.CountCompleted(ctx)
	if err != nil {
		return nil, err
	}

	next := concepts[completedCount%len(concepts)]
	return &TodayView{Concept: &next}, nil
}

// Complete records a concept as learned for the given date.
func (s *Service) Complete(ctx context.Context, date time.Time, conceptName, notes string, timeSpentMinutes int) error {
	progress := &model.MoneyMarketProgress{
		Date:             calendar.DateOnly(date),
		ConceptName:      conceptName,
		Completed:        true,
		Notes:            notes,
		TimeSpentMinutes: timeSpentMinutes,
	}
	if err := s.store.Upsert(ctx, progress); err != nil {
		return err
	}

	s.logger.Info("Money market concept completed",
		zap.String("concept", conceptName),
		zap.String("date", calendar.FormatDate(progress.Date)),
	)
	return nil
}

// Progress returns the overall catalogue progress with recent history.
func (s *Service) Progress(ctx context.Context) (*ProgressView, error) {
	completed, err := s.store.CountCompleted(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.store.ListRecentCompleted(ctx, 10)
	if err != nil {
		return nil, err
	}

	view := &ProgressView{
		TotalConcepts:     len(concepts),
		CompletedConcepts: completed,
		Percentage:        model.Percentage(completed, len(concepts)),
		RecentCompletions: make([]RecentCompletion, 0, len(recent)),
	}
	for _, r := range recent {
		view.RecentCompletions = append(view.RecentCompletions, RecentCompletion{
			Date:    calendar.FormatDate(r.Date),
			Concept: r.ConceptName,
		})
	}
	return view, nil
}
