package model

import "time"

// Habit is a user-defined recurring activity tracked per day.
type Habit struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Goal       int       `json:"goal"`
	Color      string    `json:"color"`
	OrderIndex int       `json:"order_index"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// TrackingRecord is the per-day completion state of one habit.
// At most one record exists per (habit_id, date); at most one of
// Completed/Failed is true. A day with no record is "unset" and is
// interpreted by the dashboard: past means failed, today or future
// means pending.
type TrackingRecord struct {
	ID          int       `json:"id"`
	HabitID     int       `json:"habit_id"`
	Date        time.Time `json:"date"`
	Completed   bool      `json:"completed"`
	Failed      bool      `json:"failed"`
	StreakCount int       `json:"streak_count"`
}
