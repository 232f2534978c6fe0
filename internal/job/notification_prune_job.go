package job

import (
	"context"
	log "log/slog"

	"github.com/GenerateNU/dearly-sub000/internal/api/config"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/logger"
	"github.com/GenerateNU/dearly-sub000/internal/service"
	"github.com/google/uuid"
)

// NotificationPruneJob 按保留期清理通知历史
type NotificationPruneJob struct {
	notificationSvc service.NotificationService
	retentionDays   int
}

func NewNotificationPruneJob(cfg config.NotificationConfig, notificationSvc service.NotificationService) *NotificationPruneJob {
	return &NotificationPruneJob{
		notificationSvc: notificationSvc,
		retentionDays:   cfg.RetentionDays,
	}
}

func (s *NotificationPruneJob) Run() {
	traceID := "job-notification-prune-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	deleted, err := s.notificationSvc.PruneExpired(ctx, s.retentionDays)
	if err != nil {
		log.ErrorContext(ctx, "notification prune job error", "err", err)
		return
	}

	if deleted > 0 {
		log.InfoContext(ctx, "notification prune job finished", "deleted_count", deleted)
	}
}
