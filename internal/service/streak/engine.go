// Package streak holds the per-day completion state machine: given the
// prior day's record and an incoming completion signal it decides the
// failed flag and the streak count for the target day.
package streak

import (
	"time"

	"habit-tracker-service/internal/model"
)

// Resolve computes the terminal state of one habit-day.
//
// The streak chains only through a completed prior day: completing after a
// completed yesterday extends the streak, completing after a gap or a
// failure restarts at 1, and an incomplete day always resets to 0.
// explicitFailed overrides the derived failed flag when provided.
func Resolve(prior *model.TrackingRecord, completed bool, explicitFailed *bool) (failed bool, streakCount int) {
	if completed {
		if prior != nil && prior.Completed {
			streakCount = prior.StreakCount + 1
		} else {
			streakCount = 1
		}
	} else {
		streakCount = 0
	}

	if explicitFailed != nil {
		failed = *explicitFailed
	} else {
		failed = !completed
	}
	return failed, streakCount
}

// FailedRecord is the terminal record the reconciliation job writes for a
// day that closed without completion. The dashboard synthesizes the exact
// same values for past days with no record, so the view matches storage
// field for field.
func FailedRecord(habitID int, date time.Time) model.TrackingRecord {
	return model.TrackingRecord{
		HabitID:     habitID,
		Date:        date,
		Completed:   false,
		Failed:      true,
		StreakCount: 0,
	}
}
