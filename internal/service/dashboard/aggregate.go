package dashboard

import (
	"time"

	"habit-tracker-service/internal/calendar"
	"habit-tracker-service/internal/model"
)

// BuildMonthView assembles the dashboard for one month. records maps
// habit ID to that habit's stored records within the month; today decides
// which unset days count as implicitly failed.
func BuildMonthView(habits []model.Habit, records map[int][]model.TrackingRecord, year int, month time.Month, today time.Time) *MonthView {
	today = calendar.DateOnly(today)
	daysInMonth := calendar.DaysInMonth(year, month)

	view := &MonthView{
		Year:        year,
		Month:       int(month),
		MonthName:   month.String(),
		DaysInMonth: daysInMonth,
	}

	totalCompleted := 0
	totalPossible := 0

	for _, habit := range habits {
		byDate := make(map[string]model.TrackingRecord, len(records[habit.ID]))
		for _, rec := range records[habit.ID] {
			byDate[calendar.FormatDate(rec.Date)] = rec
		}

		hm := HabitMonth{
			ID:       habit.ID,
			Name:     habit.Name,
			Goal:     habit.Goal,
			Color:    habit.Color,
			Tracking: make([]DayCell, 0, daysInMonth),
		}

		for day := 1; day <= daysInMonth; day++ {
			date := time.Date(year, month, day, 0, 0, 0, 0, today.Location())
			dateStr := calendar.FormatDate(date)

			if rec, ok := byDate[dateStr]; ok {
				hm.Tracking = append(hm.Tracking, DayCell{
					Date:        dateStr,
					Day:         day,
					Completed:   rec.Completed,
					Failed:      rec.Failed,
					StreakCount: rec.StreakCount,
				})
				if rec.Completed {
					hm.MonthCompleted++
					if !date.After(today) {
						hm.CurrentStreak = rec.StreakCount
					}
				}
				continue
			}

			// No stored record: a past day is an implicit failure,
			// mirroring exactly what reconciliation would write;
			// today and future days are still pending.
			isPast := date.Before(today)
			hm.Tracking = append(hm.Tracking, DayCell{
				Date:        dateStr,
				Day:         day,
				Completed:   false,
				Failed:      isPast,
				StreakCount: 0,
			})
		}

		totalCompleted += hm.MonthCompleted
		elapsed := daysInMonth
		if calendar.SameMonth(today, year, month) {
			elapsed = today.Day()
		}
		totalPossible += min(elapsed, daysInMonth)

		view.Habits = append(view.Habits, hm)
	}

	view.Weeks = buildWeeks(view.Habits, len(habits), year, month, daysInMonth)

	goal := len(habits) * daysInMonth
	view.Overall = Overall{
		Completed:  totalCompleted,
		Goal:       goal,
		Left:       goal - totalCompleted,
		Percentage: model.Percentage(totalCompleted, totalPossible),
	}
	return view
}

// buildWeeks partitions the month into Sunday-start calendar weeks.
// Partial weeks at the month edges keep only the days inside the month.
func buildWeeks(habits []HabitMonth, habitCount int, year int, month time.Month, daysInMonth int) []Week {
	var weeks []Week
	current := Week{WeekNumber: 1}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

		if date.Weekday() == time.Sunday && len(current.Days) > 0 {
			current.Percentage = model.Percentage(current.Completed, current.Total)
			weeks = append(weeks, current)
			current = Week{WeekNumber: current.WeekNumber + 1}
		}

		dayCompleted := 0
		for _, hm := range habits {
			if hm.Tracking[day-1].Completed {
				dayCompleted++
			}
		}

		current.Days = append(current.Days, WeekDay{
			Date:       calendar.FormatDate(date),
			Day:        day,
			Weekday:    date.Weekday().String()[:3],
			Completed:  dayCompleted,
			Total:      habitCount,
			Percentage: model.Percentage(dayCompleted, habitCount),
		})
		current.Completed += dayCompleted
		current.Total += habitCount
	}

	if len(current.Days) > 0 {
		current.Percentage = model.Percentage(current.Completed, current.Total)
		weeks = append(weeks, current)
	}
	return weeks
}
