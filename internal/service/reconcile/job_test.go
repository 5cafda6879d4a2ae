package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"habit-tracker-service/internal/model"
)

type fakeStore struct {
	habits   []model.Habit
	tracking map[string]model.TrackingRecord
	progress map[string]model.DailyProgress

	failUpserts bool
	listErr     error
}

func newFakeStore(habits ...model.Habit) *fakeStore {
	return &fakeStore{
		habits:   habits,
		tracking: make(map[string]model.TrackingRecord),
		progress: make(map[string]model.DailyProgress),
	}
}

func key(habitID int, date time.Time) string {
	return fmt.Sprintf("%d/%s", habitID, date.Format("2006-01-02"))
}

func (s *fakeStore) ListActiveHabits(context.Context) ([]model.Habit, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.habits, nil
}

func (s *fakeStore) RunTick(_ context.Context, fn func(TickStore) error) error {
	// Stage writes like a transaction: commit only when fn succeeds.
	staged := &stagedTick{
		base:     s,
		tracking: make(map[string]model.TrackingRecord),
		progress: make(map[string]model.DailyProgress),
	}
	if err := fn(staged); err != nil {
		return err
	}
	for k, v := range staged.tracking {
		s.tracking[k] = v
	}
	for k, v := range staged.progress {
		s.progress[k] = v
	}
	return nil
}

type stagedTick struct {
	base     *fakeStore
	tracking map[string]model.TrackingRecord
	progress map[string]model.DailyProgress
}

func (t *stagedTick) GetTracking(_ context.Context, habitID int, date time.Time) (*model.TrackingRecord, error) {
	if rec, ok := t.tracking[key(habitID, date)]; ok {
		cp := rec
		return &cp, nil
	}
	if rec, ok := t.base.tracking[key(habitID, date)]; ok {
		cp := rec
		return &cp, nil
	}
	return nil, model.ErrNotFound
}

func (t *stagedTick) UpsertTracking(_ context.Context, rec *model.TrackingRecord) error {
	if t.base.failUpserts {
		return errors.New("storage unavailable")
	}
	t.tracking[key(rec.HabitID, rec.Date)] = *rec
	return nil
}

func (t *stagedTick) UpsertProgress(_ context.Context, p *model.DailyProgress) error {
	if t.base.failUpserts {
		return errors.New("storage unavailable")
	}
	t.progress[p.Date.Format("2006-01-02")] = *p
	return nil
}

type fakeNotifier struct {
	calls [][]string
	dates []time.Time
}

func (n *fakeNotifier) NotifyFailures(_ context.Context, failedHabits []string, date time.Time) {
	n.calls = append(n.calls, failedHabits)
	n.dates = append(n.dates, date)
}

func newTestJob(store *fakeStore, notifier *fakeNotifier, today time.Time) *Job {
	job := NewJob(store, notifier, zap.NewNop())
	job.now = func() time.Time { return today }
	return job
}

var (
	today     = time.Date(2026, time.June, 11, 8, 30, 0, 0, time.UTC)
	yesterday = time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)
)

func TestRunDailyReconciliation(t *testing.T) {
	// 3 active habits, one completed yesterday, one explicitly
	// incomplete, one with no record at all.
	store := newFakeStore(
		model.Habit{ID: 1, Name: "Read"},
		model.Habit{ID: 2, Name: "Workout"},
		model.Habit{ID: 3, Name: "Journal"},
	)
	store.tracking[key(1, yesterday)] = model.TrackingRecord{
		HabitID: 1, Date: yesterday, Completed: true, StreakCount: 3,
	}
	store.tracking[key(2, yesterday)] = model.TrackingRecord{
		HabitID: 2, Date: yesterday, Completed: false, StreakCount: 0,
	}

	notifier := &fakeNotifier{}
	job := newTestJob(store, notifier, today)

	require.NoError(t, job.RunDailyReconciliation(context.Background()))

	// Completed habit untouched.
	assert.True(t, store.tracking[key(1, yesterday)].Completed)
	assert.False(t, store.tracking[key(1, yesterday)].Failed)
	assert.Equal(t, 3, store.tracking[key(1, yesterday)].StreakCount)

	// Incomplete record forced to terminal failure.
	assert.True(t, store.tracking[key(2, yesterday)].Failed)
	assert.Equal(t, 0, store.tracking[key(2, yesterday)].StreakCount)

	// Missing record synthesized as terminal failure.
	synthesized, ok := store.tracking[key(3, yesterday)]
	require.True(t, ok)
	assert.False(t, synthesized.Completed)
	assert.True(t, synthesized.Failed)
	assert.Equal(t, 0, synthesized.StreakCount)

	// Summary row for the closed day.
	progress := store.progress["2026-06-10"]
	assert.Equal(t, 3, progress.TotalHabits)
	assert.Equal(t, 1, progress.CompletedHabits)
	assert.Equal(t, 2, progress.FailedHabits)
	assert.InDelta(t, 33.33, progress.CompletionPercentage, 0.001)

	// Notifier invoked once with the failed habit names.
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, []string{"Workout", "Journal"}, notifier.calls[0])
	assert.Equal(t, yesterday, notifier.dates[0])
}

func TestRunDailyReconciliationIdempotent(t *testing.T) {
	store := newFakeStore(
		model.Habit{ID: 1, Name: "Read"},
		model.Habit{ID: 2, Name: "Workout"},
	)
	store.tracking[key(1, yesterday)] = model.TrackingRecord{
		HabitID: 1, Date: yesterday, Completed: true, StreakCount: 1,
	}

	job := newTestJob(store, &fakeNotifier{}, today)
	ctx := context.Background()

	require.NoError(t, job.RunDailyReconciliation(ctx))
	firstTracking := make(map[string]model.TrackingRecord, len(store.tracking))
	for k, v := range store.tracking {
		firstTracking[k] = v
	}
	firstProgress := store.progress["2026-06-10"]

	require.NoError(t, job.RunDailyReconciliation(ctx))
	assert.Equal(t, firstTracking, store.tracking)
	assert.Equal(t, firstProgress, store.progress["2026-06-10"])
}

func TestRunDailyReconciliationNoActiveHabits(t *testing.T) {
	store := newFakeStore()
	job := newTestJob(store, &fakeNotifier{}, today)

	require.NoError(t, job.RunDailyReconciliation(context.Background()))

	progress := store.progress["2026-06-10"]
	assert.Equal(t, 0, progress.TotalHabits)
	assert.Equal(t, 0.0, progress.CompletionPercentage)
}

func TestRunDailyReconciliationAllCompleted(t *testing.T) {
	store := newFakeStore(model.Habit{ID: 1, Name: "Read"})
	store.tracking[key(1, yesterday)] = model.TrackingRecord{
		HabitID: 1, Date: yesterday, Completed: true, StreakCount: 5,
	}

	notifier := &fakeNotifier{}
	job := newTestJob(store, notifier, today)

	require.NoError(t, job.RunDailyReconciliation(context.Background()))

	// Nothing failed: no notification at all.
	assert.Empty(t, notifier.calls)
	progress := store.progress["2026-06-10"]
	assert.Equal(t, 100.0, progress.CompletionPercentage)
}

func TestRunDailyReconciliationAbortsOnStorageError(t *testing.T) {
	store := newFakeStore(model.Habit{ID: 1, Name: "Read"})
	store.failUpserts = true

	notifier := &fakeNotifier{}
	job := newTestJob(store, notifier, today)

	err := job.RunDailyReconciliation(context.Background())
	require.Error(t, err)

	// Aborted tick commits nothing and notifies nobody.
	assert.Empty(t, store.tracking)
	assert.Empty(t, store.progress)
	assert.Empty(t, notifier.calls)
}

func TestRunDailyReconciliationListFailure(t *testing.T) {
	store := newFakeStore(model.Habit{ID: 1, Name: "Read"})
	store.listErr = errors.New("storage unavailable")

	job := newTestJob(store, &fakeNotifier{}, today)
	require.Error(t, job.RunDailyReconciliation(context.Background()))
	assert.Empty(t, store.progress)
}
