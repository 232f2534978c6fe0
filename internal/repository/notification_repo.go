package repository

import (
	"context"
	"time"

	"github.com/GenerateNU/dearly-sub000/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepo interface {
	InsertNotifications(ctx context.Context, rows []*model.Notification) ([]*model.Notification, error)
	GetByReceiver(ctx context.Context, receiverID uint64, limit, offset int) ([]*model.Notification, error)
	CountByReceiver(ctx context.Context, receiverID uint64) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type NotificationRepoImpl struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return &NotificationRepoImpl{db: db}
}

// InsertNotifications 逐行写入，与 (receiver, reference_type, reference_id)
// 唯一约束冲突的行静默跳过，仅返回真正落库的行。
// 变更流重复投递同一事件时第二次写入为零行，调用方据此跳过推送。
func (s *NotificationRepoImpl) InsertNotifications(ctx context.Context, rows []*model.Notification) ([]*model.Notification, error) {
	if len(rows) == 0 {
		return []*model.Notification{}, nil
	}

	inserted := make([]*model.Notification, 0, len(rows))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			result := tx.Clauses(clause.OnConflict{
				DoNothing: true,
			}).Create(row)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 1 {
				inserted = append(inserted, row)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inserted, nil
}

// GetByReceiver 分页获取通知历史 (按时间倒序)
func (s *NotificationRepoImpl) GetByReceiver(ctx context.Context, receiverID uint64, limit, offset int) ([]*model.Notification, error) {
	var rows []*model.Notification
	result := s.db.WithContext(ctx).
		Where("receiver_id = ?", receiverID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}

// CountByReceiver 获取通知总数
func (s *NotificationRepoImpl) CountByReceiver(ctx context.Context, receiverID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("receiver_id = ?", receiverID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// DeleteOlderThan 清理过期通知，返回删除行数
func (s *NotificationRepoImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.Notification{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
