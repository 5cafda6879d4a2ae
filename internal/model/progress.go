package model

import "time"

// DailyProgress summarizes one calendar day across all active habits.
// Recomputed by the reconciliation job; unique on date.
type DailyProgress struct {
	ID                   int       `json:"id"`
	Date                 time.Time `json:"date"`
	TotalHabits          int       `json:"total_habits"`
	CompletedHabits      int       `json:"completed_habits"`
	FailedHabits         int       `json:"failed_habits"`
	CompletionPercentage float64   `json:"completion_percentage"`
}

// NotificationLog is an append-only audit row for one notification attempt.
type NotificationLog struct {
	ID               int       `json:"id"`
	NotificationType string    `json:"notification_type"`
	Message          string    `json:"message"`
	Success          bool      `json:"success"`
	SentAt           time.Time `json:"sent_at"`
}

// Setting is a flat key/value configuration entry.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// MoneyMarketProgress records one day of money-market concept learning.
type MoneyMarketProgress struct {
	ID               int       `json:"id"`
	Date             time.Time `json:"date"`
	ConceptName      string    `json:"concept_name"`
	Completed        bool      `json:"completed"`
	Notes            string    `json:"notes"`
	TimeSpentMinutes int       `json:"time_spent_minutes"`
}
