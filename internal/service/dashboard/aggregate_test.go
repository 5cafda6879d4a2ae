package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habit-tracker-service/internal/model"
)

func juneDay(d int) time.Time {
	return time.Date(2026, time.June, d, 0, 0, 0, 0, time.UTC)
}

func completedRecord(habitID, day, streak int) model.TrackingRecord {
	return model.TrackingRecord{
		HabitID:     habitID,
		Date:        juneDay(day),
		Completed:   true,
		StreakCount: streak,
	}
}

func TestBuildMonthViewCurrentMonthScenario(t *testing.T) {
	// 30-day month, one active habit, first 5 days completed, today is
	// day 10 of that month.
	habit := model.Habit{ID: 1, Name: "Read 20 min", Goal: 30, Color: "#00ff00"}
	records := map[int][]model.TrackingRecord{}
	for d := 1; d <= 5; d++ {
		records[1] = append(records[1], completedRecord(1, d, d))
	}

	view := BuildMonthView([]model.Habit{habit}, records, 2026, time.June, juneDay(10))

	assert.Equal(t, 30, view.DaysInMonth)
	assert.Equal(t, "June", view.MonthName)
	require.Len(t, view.Habits, 1)

	hm := view.Habits[0]
	assert.Equal(t, 5, hm.MonthCompleted)
	require.Len(t, hm.Tracking, 30)

	// total_possible = 10 elapsed days, 5 completed -> 50.00%.
	assert.Equal(t, 5, view.Overall.Completed)
	assert.Equal(t, 30, view.Overall.Goal)
	assert.Equal(t, 25, view.Overall.Left)
	assert.Equal(t, 50.0, view.Overall.Percentage)
}

func TestBuildMonthViewSynthesizesImplicitStates(t *testing.T) {
	habit := model.Habit{ID: 1, Name: "Read"}
	view := BuildMonthView([]model.Habit{habit}, nil, 2026, time.June, juneDay(10))

	hm := view.Habits[0]

	// Past day with no record: implicit failure, exactly what the
	// reconciliation job would have written.
	past := hm.Tracking[8] // day 9
	assert.False(t, past.Completed)
	assert.True(t, past.Failed)
	assert.Equal(t, 0, past.StreakCount)

	// Today with no record: pending, not failed.
	todayCell := hm.Tracking[9] // day 10
	assert.False(t, todayCell.Completed)
	assert.False(t, todayCell.Failed)

	// Future day: pending.
	future := hm.Tracking[20]
	assert.False(t, future.Completed)
	assert.False(t, future.Failed)
}

func TestBuildMonthViewStoredRecordsSurfacedVerbatim(t *testing.T) {
	habit := model.Habit{ID: 1, Name: "Read"}
	records := map[int][]model.TrackingRecord{
		1: {
			{HabitID: 1, Date: juneDay(3), Completed: false, Failed: true, StreakCount: 0},
			completedRecord(1, 4, 1),
		},
	}

	view := BuildMonthView([]model.Habit{habit}, records, 2026, time.June, juneDay(10))
	hm := view.Habits[0]

	assert.True(t, hm.Tracking[2].Failed)
	assert.False(t, hm.Tracking[2].Completed)
	assert.True(t, hm.Tracking[3].Completed)
	assert.Equal(t, 1, hm.Tracking[3].StreakCount)
}

func TestBuildMonthViewCurrentStreak(t *testing.T) {
	habit := model.Habit{ID: 1, Name: "Read"}
	records := map[int][]model.TrackingRecord{
		1: {
			completedRecord(1, 7, 1),
			completedRecord(1, 8, 2),
			completedRecord(1, 9, 3),
			// A completed day in the future must not drive the
			// current streak.
			completedRecord(1, 15, 1),
		},
	}

	view := BuildMonthView([]model.Habit{habit}, records, 2026, time.June, juneDay(10))
	assert.Equal(t, 3, view.Habits[0].CurrentStreak)
}

func TestBuildMonthViewCurrentStreakZeroWithoutCompletions(t *testing.T) {
	habit := model.Habit{ID: 1, Name: "Read"}
	view := BuildMonthView([]model.Habit{habit}, nil, 2026, time.June, juneDay(10))
	assert.Equal(t, 0, view.Habits[0].CurrentStreak)
}

func TestBuildMonthViewPastMonthUsesFullLength(t *testing.T) {
	habit := model.Habit{ID: 1, Name: "Read"}
	records := map[int][]model.TrackingRecord{}
	for d := 1; d <= 15; d++ {
		records[1] = append(records[1], completedRecord(1, d, d))
	}

	// Viewing June from a day in July: total_possible is the full 30.
	today := time.Date(2026, time.July, 5, 0, 0, 0, 0, time.UTC)
	view := BuildMonthView([]model.Habit{habit}, records, 2026, time.June, today)

	assert.Equal(t, 15, view.Overall.Completed)
	assert.Equal(t, 50.0, view.Overall.Percentage)
}

func TestBuildMonthViewWeeks(t *testing.T) {
	// June 2026 starts on a Monday; the first Sunday is day 7. Weeks
	// are Sunday-start and truncated to the month.
	habit := model.Habit{ID: 1, Name: "Read"}
	view := BuildMonthView([]model.Habit{habit}, nil, 2026, time.June, juneDay(10))

	require.NotEmpty(t, view.Weeks)
	assert.Len(t, view.Weeks[0].Days, 6) // Mon 1 .. Sat 6
	assert.Equal(t, 1, view.Weeks[0].WeekNumber)
	assert.Equal(t, 7, view.Weeks[1].Days[0].Day)
	assert.Equal(t, "Sun", view.Weeks[1].Days[0].Weekday)

	// Every day accounted for exactly once.
	total := 0
	for _, w := range view.Weeks {
		total += len(w.Days)
	}
	assert.Equal(t, 30, total)
}

func TestBuildMonthViewWeekCounts(t *testing.T) {
	habits := []model.Habit{
		{ID: 1, Name: "Read"},
		{ID: 2, Name: "Workout"},
	}
	records := map[int][]model.TrackingRecord{
		1: {completedRecord(1, 1, 1), completedRecord(1, 2, 2)},
		2: {completedRecord(2, 1, 1)},
	}

	view := BuildMonthView(habits, records, 2026, time.June, juneDay(10))

	week := view.Weeks[0]
	day1 := week.Days[0]
	assert.Equal(t, 2, day1.Completed)
	assert.Equal(t, 2, day1.Total)
	assert.Equal(t, 100.0, day1.Percentage)

	day2 := week.Days[1]
	assert.Equal(t, 1, day2.Completed)
	assert.Equal(t, 50.0, day2.Percentage)

	assert.Equal(t, 3, week.Completed)
	assert.Equal(t, 12, week.Total) // 6 days x 2 habits
	assert.Equal(t, 25.0, week.Percentage)
}

func TestBuildMonthViewNoHabits(t *testing.T) {
	view := BuildMonthView(nil, nil, 2026, time.June, juneDay(10))

	assert.Empty(t, view.Habits)
	assert.Equal(t, 0, view.Overall.Goal)
	assert.Equal(t, 0.0, view.Overall.Percentage)
	for _, w := range view.Weeks {
		for _, d := range w.Days {
			assert.Equal(t, 0.0, d.Percentage)
		}
	}
}

func TestBuildMonthViewPercentageBounds(t *testing.T) {
	habit := model.Habit{ID: 1, Name: "Read"}
	records := map[int][]model.TrackingRecord{}
	for d := 1; d <= 30; d++ {
		records[1] = append(records[1], completedRecord(1, d, d))
	}

	today := time.Date(2026, time.July, 5, 0, 0, 0, 0, time.UTC)
	view := BuildMonthView([]model.Habit{habit}, records, 2026, time.June, today)

	assert.GreaterOrEqual(t, view.Overall.Percentage, 0.0)
	assert.LessOrEqual(t, view.Overall.Percentage, 100.0)
	assert.Equal(t, 100.0, view.Overall.Percentage)
	for _, w := range view.Weeks {
		assert.GreaterOrEqual(t, w.Percentage, 0.0)
		assert.LessOrEqual(t, w.Percentage, 100.0)
	}
}
