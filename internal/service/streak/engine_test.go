package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"habit-tracker-service/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func TestResolve(t *testing.T) {
	tests := []struct {
		name           string
		prior          *model.TrackingRecord
		completed      bool
		explicitFailed *bool
		wantFailed     bool
		wantStreak     int
	}{
		{
			name:       "completed with no prior record starts streak at 1",
			prior:      nil,
			completed:  true,
			wantFailed: false,
			wantStreak: 1,
		},
		{
			name:       "completed after completed prior extends streak",
			prior:      &model.TrackingRecord{Completed: true, StreakCount: 4},
			completed:  true,
			wantFailed: false,
			wantStreak: 5,
		},
		{
			name:       "completed after failed prior restarts at 1",
			prior:      &model.TrackingRecord{Completed: false, Failed: true, StreakCount: 0},
			completed:  true,
			wantFailed: false,
			wantStreak: 1,
		},
		{
			name:       "not completed derives failed and resets streak",
			prior:      &model.TrackingRecord{Completed: true, StreakCount: 9},
			completed:  false,
			wantFailed: true,
			wantStreak: 0,
		},
		{
			name:           "explicit failed false overrides derivation",
			prior:          nil,
			completed:      false,
			explicitFailed: boolPtr(false),
			wantFailed:     false,
			wantStreak:     0,
		},
		{
			name:           "explicit failed true on completed day",
			prior:          &model.TrackingRecord{Completed: true, StreakCount: 2},
			completed:      true,
			explicitFailed: boolPtr(true),
			wantFailed:     true,
			wantStreak:     3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failed, streak := Resolve(tt.prior, tt.completed, tt.explicitFailed)
			assert.Equal(t, tt.wantFailed, failed)
			assert.Equal(t, tt.wantStreak, streak)
		})
	}
}

func TestResolveStreakMonotonicity(t *testing.T) {
	// N consecutive completed days yield streak N on the Nth day.
	var prior *model.TrackingRecord
	for day := 1; day <= 10; day++ {
		failed, streak := Resolve(prior, true, nil)
		assert.False(t, failed)
		assert.Equal(t, day, streak)
		prior = &model.TrackingRecord{Completed: true, StreakCount: streak}
	}

	// One incomplete day resets the chain.
	failed, streak := Resolve(prior, false, nil)
	assert.True(t, failed)
	assert.Equal(t, 0, streak)

	// The next completed day restarts at 1.
	prior = &model.TrackingRecord{Completed: false, Failed: true, StreakCount: 0}
	failed, streak = Resolve(prior, true, nil)
	assert.False(t, failed)
	assert.Equal(t, 1, streak)
}

func TestFailedRecord(t *testing.T) {
	date := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	rec := FailedRecord(7, date)

	assert.Equal(t, 7, rec.HabitID)
	assert.Equal(t, date, rec.Date)
	assert.False(t, rec.Completed)
	assert.True(t, rec.Failed)
	assert.Equal(t, 0, rec.StreakCount)
}
