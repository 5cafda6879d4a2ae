package mq

// Routing keys published on the habit events exchange.
const (
	RoutingKeyHabitFailed = "habit.failed"
)

// HabitFailedPayload is emitted once per reconciled day that closed with
// at least one failed habit.
type HabitFailedPayload struct {
	Date        string   `json:"date"`
	FailedCount int      `json:"failed_count"`
	Habits      []string `json:"habits"`
}
