package moneymarket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"habit-tracker-service/internal/model"
)

type fakeMMStore struct {
	byDate map[string]*model.MoneyMarketProgress
}

func newFakeMMStore() *fakeMMStore {
	return &fakeMMStore{byDate: make(map[string]*model.MoneyMarketProgress)}
}

func (f *fakeMMStore) GetByDate(_ context.Context, date time.Time) (*model.MoneyMarketProgress, error) {
	p, ok := f.byDate[date.Format("2006-01-02")]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeMMStore) Upsert(_ context.Context, p *model.MoneyMarketProgress) error {
	cp := *p
	f.byDate[p.Date.Format("2006-01-02")] = &cp
	return nil
}

func (f *fakeMMStore) CountCompleted(context.Context) (int, error) {
	count := 0
	for _, p := range f.byDate {
		if p.Completed {
			count++
		}
	}
	return count, nil
}

func (f *fakeMMStore) ListRecentCompleted(_ context.Context, limit int) ([]model.MoneyMarketProgress, error) {
	var out []model.MoneyMarketProgress
	for _, p := range f.byDate {
		if p.Completed {
			out = append(out, *p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func newTestService(store Store, today time.Time) *Service {
	svc := NewService(store, zap.NewNop())
	svc.now = func() time.Time { return today }
	return svc
}

var mmToday = time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC)

func TestTodayConceptFreshStart(t *testing.T) {
	svc := newTestService(newFakeMMStore(), mmToday)

	view, err := svc.TodayConcept(context.Background())
	require.NoError(t, err)
	require.NotNil(t, view.Concept)
	assert.Equal(t, 1, view.Concept.ID)
	assert.False(t, view.Completed)
}

func TestTodayConceptAdvancesWithCompletions(t *testing.T) {
	store := newFakeMMStore()
	svc := newTestService(store, mmToday)
	ctx := context.Background()

	// Two concepts completed on earlier days.
	require.NoError(t, svc.Complete(ctx, mmToday.AddDate(0, 0, -2), "What is the Stock Market?", "", 20))
	require.NoError(t, svc.Complete(ctx, mmToday.AddDate(0, 0, -1), "Understanding Bull vs Bear Markets", "", 20))

	view, err := svc.TodayConcept(ctx)
	require.NoError(t, err)
	require.NotNil(t, view.Concept)
	assert.Equal(t, 3, view.Concept.ID)
}

func TestTodayConceptAlreadyRecordedToday(t *testing.T) {
	store := newFakeMMStore()
	svc := newTestService(store, mmToday)
	ctx := context.Background()

	require.NoError(t, svc.Complete(ctx, mmToday, "RSI Indicator", "good session", 25))

	view, err := svc.TodayConcept(ctx)
	require.NoError(t, err)
	require.NotNil(t, view.Concept)
	assert.Equal(t, "RSI Indicator", view.Concept.Name)
	assert.True(t, view.Completed)
	assert.Equal(t, "good session", view.Notes)
	assert.Equal(t, 25, view.TimeSpent)
}

func TestProgress(t *testing.T) {
	store := newFakeMMStore()
	svc := newTestService(store, mmToday)
	ctx := context.Background()

	require.NoError(t, svc.Complete(ctx, mmToday.AddDate(0, 0, -2), "What is the Stock Market?", "", 20))
	require.NoError(t, svc.Complete(ctx, mmToday.AddDate(0, 0, -1), "Understanding Bull vs Bear Markets", "", 20))
	require.NoError(t, svc.Complete(ctx, mmToday, "What are Stocks and Shares?", "", 20))

	view, err := svc.Progress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, view.TotalConcepts)
	assert.Equal(t, 3, view.CompletedConcepts)
	assert.Equal(t, 10.0, view.Percentage)
	assert.Len(t, view.RecentCompletions, 3)
}

func TestConceptsCatalogueIsCopied(t *testing.T) {
	a := Concepts()
	a[0].Name = "mutated"
	b := Concepts()
	assert.Equal(t, "What is the Stock Market?", b[0].Name)
	assert.Len(t, b, 30)
}
