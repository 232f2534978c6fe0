package service

import (
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/GenerateNU/dearly-sub000/internal/model"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/consts"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/redis"
	"github.com/GenerateNU/dearly-sub000/internal/repository"
	"github.com/pkg/errors"
)

type NotificationService interface {
	StoreNotifications(ctx context.Context, rows []*model.Notification) ([]*model.Notification, error)
	GetHistory(ctx context.Context, receiverID uint64, page, pageSize int) ([]*model.Notification, error)
	GetCount(ctx context.Context, receiverID uint64) (int64, error)
	PruneExpired(ctx context.Context, retentionDays int) (int64, error)
}

type NotificationServiceImpl struct {
	notificationRepo repository.NotificationRepo
}

func NewNotificationService(notificationRepo repository.NotificationRepo) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

// StoreNotifications 落库并失效对应接收者的计数缓存
func (s *NotificationServiceImpl) StoreNotifications(ctx context.Context, rows []*model.Notification) ([]*model.Notification, error) {
	inserted, err := s.notificationRepo.InsertNotifications(ctx, rows)
	if err != nil {
		return nil, errors.Wrap(err, "insert notifications failed")
	}

	if len(inserted) > 0 {
		keys := make([]string, 0, len(inserted))
		for _, row := range inserted {
			keys = append(keys, consts.NotificationCountKey+strconv.FormatUint(row.ReceiverID, 10))
		}
		if err := redis.DeleteKeys(ctx, keys...); err != nil {
			// 缓存失效失败不影响主流程，计数短暂偏低可接受
			log.WarnContext(ctx, "failed to invalidate notification count cache", "err", err)
		}
	}
	return inserted, nil
}

// GetHistory 分页获取通知历史
func (s *NotificationServiceImpl) GetHistory(ctx context.Context, receiverID uint64, page, pageSize int) ([]*model.Notification, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > consts.MaxNotificationPageSize {
		pageSize = consts.MaxNotificationPageSize
	}

	rows, err := s.notificationRepo.GetByReceiver(ctx, receiverID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "get notification history failed")
	}
	return rows, nil
}

// GetCount 获取通知总数，redis 缓存优先
func (s *NotificationServiceImpl) GetCount(ctx context.Context, receiverID uint64) (int64, error) {
	key := consts.NotificationCountKey + strconv.FormatUint(receiverID, 10)

	cached, err := redis.GetValue(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "failed to read notification count cache", "err", err)
	} else if cached != "" {
		count, convErr := strconv.ParseInt(cached, 10, 64)
		if convErr == nil {
			return count, nil
		}
	}

	count, err := s.notificationRepo.CountByReceiver(ctx, receiverID)
	if err != nil {
		return 0, errors.Wrap(err, "count notifications failed")
	}

	if err := redis.SetWithExpiration(ctx, key, count, 10*time.Minute); err != nil {
		log.WarnContext(ctx, "failed to write notification count cache", "err", err)
	}
	return count, nil
}

// PruneExpired 清理保留期之外的通知，由定时任务调用
func (s *NotificationServiceImpl) PruneExpired(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	deleted, err := s.notificationRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "prune notifications failed")
	}
	return deleted, nil
}
