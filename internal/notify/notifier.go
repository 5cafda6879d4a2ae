// Package notify delivers failure alerts. Delivery is fire-and-forget
// from the reconciliation job's point of view: every attempt is recorded
// in the notification log and no failure ever propagates to the caller.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"habit-tracker-service/internal/calendar"
	"habit-tracker-service/internal/model"
	"habit-tracker-service/internal/mq"
	"habit-tracker-service/pkg/metrics"
)

// SettingKeyEnabled toggles failure notifications. Anything but the
// string "true" (or a missing key) means disabled.
const SettingKeyEnabled = "notifications_enabled"

const notificationType = "mq"

// SettingsReader is the slice of the settings store the sink reads.
// Toggling lives here, not in the core job.
type SettingsReader interface {
	Get(ctx context.Context, key string) (string, error)
}

// LogAppender appends to the notification audit log.
type LogAppender interface {
	Insert(ctx context.Context, entry *model.NotificationLog) error
}

// Publisher is the outbound transport.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type Notifier struct {
	settings  SettingsReader
	logs      LogAppender
	publisher Publisher
	timeout   time.Duration
	logger    *zap.Logger
}

func NewNotifier(settings SettingsReader, logs LogAppender, publisher Publisher, timeout time.Duration, logger *zap.Logger) *Notifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Notifier{
		settings:  settings,
		logs:      logs,
		publisher: publisher,
		timeout:   timeout,
		logger:    logger,
	}
}

// NotifyFailures publishes a habit.failed event for a closed day. The
// publish is bounded by a timeout so a slow broker cannot stall the next
// reconciliation tick.
func (n *Notifier) NotifyFailures(ctx context.Context, failedHabits []string, date time.Time) {
	if len(failedHabits) == 0 {
		return
	}

	if !n.enabled(ctx) {
		n.logger.Info("Failure notifications disabled, skipping",
			zap.Int("failed_count", len(failedHabits)),
		)
		metrics.IncrementNotification("disabled")
		return
	}

	dateStr := calendar.FormatDate(date)
	message := fmt.Sprintf("Failed habits for %s: %s", dateStr, strings.Join(failedHabits, ", "))

	err := n.publish(ctx, failedHabits, dateStr)
	if err != nil {
		n.logger.Error("Failed to publish failure notification",
			zap.String("date", dateStr),
			zap.Int("failed_count", len(failedHabits)),
			zap.Error(err),
		)
		metrics.IncrementNotification("failed")
		message = fmt.Sprintf("Failed to send notification for %s: %s", dateStr, err.Error())
	} else {
		n.logger.Info("Failure notification published",
			zap.String("date", dateStr),
			zap.Int("failed_count", len(failedHabits)),
		)
		metrics.IncrementNotification("success")
	}

	n.appendLog(ctx, message, err == nil)
}

func (n *Notifier) publish(ctx context.Context, failedHabits []string, dateStr string) error {
	if n.publisher == nil {
		return errors.New("notification publisher not configured")
	}

	pubCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	return n.publisher.Publish(pubCtx, mq.RoutingKeyHabitFailed, mq.HabitFailedPayload{
		Date:        dateStr,
		FailedCount: len(failedHabits),
		Habits:      failedHabits,
	})
}

func (n *Notifier) enabled(ctx context.Context) bool {
	value, err := n.settings.Get(ctx, SettingKeyEnabled)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			n.logger.Warn("Failed to read notification setting, treating as disabled", zap.Error(err))
		}
		return false
	}
	return strings.EqualFold(strings.TrimSpace(value), "true")
}

func (n *Notifier) appendLog(ctx context.Context, message string, success bool) {
	entry := &model.NotificationLog{
		NotificationType: notificationType,
		Message:          message,
		Success:          success,
	}
	if err := n.logs.Insert(ctx, entry); err != nil {
		// The audit row is best-effort too; losing it must not break
		// reconciliation.
		n.logger.Error("Failed to append notification log", zap.Error(err))
	}
}
