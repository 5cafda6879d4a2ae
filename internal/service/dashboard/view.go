// Package dashboard builds the month view: per-habit day grids, weekly
// rollups and the overall completion summary, reconstructed from the
// sparse record set. Days with no stored record are synthesized on the
// fly (past days as failed, today and future days as pending) so the
// view is correct even before the reconciliation job has run.
package dashboard

// DayCell is one habit-day in the month grid.
type DayCell struct {
	Date        string `json:"date"`
	Day         int    `json:"day"`
	Completed   bool   `json:"completed"`
	Failed      bool   `json:"failed"`
	StreakCount int    `json:"streak_count"`
}

// HabitMonth is one habit's full month of cells plus derived counters.
type HabitMonth struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Goal           int       `json:"goal"`
	Color          string    `json:"color"`
	Tracking       []DayCell `json:"tracking"`
	MonthCompleted int       `json:"month_completed"`
	CurrentStreak  int       `json:"current_streak"`
}

// WeekDay aggregates all habits for one day of a week.
type WeekDay struct {
	Date       string  `json:"date"`
	Day        int     `json:"day"`
	Weekday    string  `json:"weekday"`
	Completed  int     `json:"completed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Week is a Sunday-start calendar week truncated to the month.
type Week struct {
	WeekNumber int       `json:"week_number"`
	Days       []WeekDay `json:"days"`
	Completed  int       `json:"completed"`
	Total      int       `json:"total"`
	Percentage float64   `json:"percentage"`
}

// Overall is the month-level completion summary.
type Overall struct {
	Completed  int     `json:"completed"`
	Goal       int     `json:"goal"`
	Left       int     `json:"left"`
	Percentage float64 `json:"percentage"`
}

// MonthView is the complete dashboard payload for one month.
type MonthView struct {
	Year        int          `json:"year"`
	Month       int          `json:"month"`
	MonthName   string       `json:"month_name"`
	DaysInMonth int          `json:"days_in_month"`
	Habits      []HabitMonth `json:"habits"`
	Weeks       []Week       `json:"weeks"`
	Overall     Overall      `json:"overall"`
}
