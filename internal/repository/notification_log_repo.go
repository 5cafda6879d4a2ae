package repository

import (
	"context"
	"time"

	"go.uber.org/zap"

	"habit-tracker-service/internal/model"
)

type NotificationLogRepository struct {
	db     Querier
	logger *zap.Logger
}

func NewNotificationLogRepository(db Querier, logger *zap.Logger) *NotificationLogRepository {
	return &NotificationLogRepository{
		db:     db,
		logger: logger,
	}
}

// Insert appends one audit row. Rows are never mutated afterwards.
func (r *NotificationLogRepository) Insert(ctx context.Context, entry *model.NotificationLog) error {
	defer observe("insert", "notification_logs", time.Now())

	query := `
        INSERT INTO notification_logs (notification_type, message, success)
        VALUES ($1, $2, $3)
        RETURNING id, sent_at
    `
	err := r.db.QueryRow(ctx, query,
		entry.NotificationType,
		entry.Message,
		entry.Success,
	).Scan(&entry.ID, &entry.SentAt)

	if err != nil {
		r.logger.Error("Failed to insert notification log", zap.Error(err))
		return err
	}
	return nil
}
