package repository

import (
	"context"
	"errors"

	"github.com/GenerateNU/dearly-sub000/internal/model"
	"gorm.io/gorm"
)

type NudgeScheduleRepo interface {
	GetByGroupId(ctx context.Context, groupID uint64) (*model.NudgeSchedule, error)
	CreateSchedule(ctx context.Context, schedule *model.NudgeSchedule) error
	UpdateSchedule(ctx context.Context, schedule *model.NudgeSchedule) error
}

type NudgeScheduleRepoImpl struct {
	db *gorm.DB
}

func NewNudgeScheduleRepo(db *gorm.DB) NudgeScheduleRepo {
	return &NudgeScheduleRepoImpl{db: db}
}

// GetByGroupId 获取群组的催促计划，从未配置返回 nil
func (s *NudgeScheduleRepoImpl) GetByGroupId(ctx context.Context, groupID uint64) (*model.NudgeSchedule, error) {
	var schedule model.NudgeSchedule
	result := s.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		First(&schedule)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &schedule, nil
}

// CreateSchedule 创建催促计划
func (s *NudgeScheduleRepoImpl) CreateSchedule(ctx context.Context, schedule *model.NudgeSchedule) error {
	return s.db.WithContext(ctx).Create(schedule).Error
}

// UpdateSchedule 整行覆写已有计划
func (s *NudgeScheduleRepoImpl) UpdateSchedule(ctx context.Context, schedule *model.NudgeSchedule) error {
	return s.db.WithContext(ctx).
		Model(&model.NudgeSchedule{}).
		Where("id = ?", schedule.ID).
		Updates(map[string]interface{}{
			"frequency":    schedule.Frequency,
			"days_of_week": schedule.DaysOfWeek,
			"day":          schedule.Day,
			"month":        schedule.Month,
			"nudge_at":     schedule.NudgeAt,
			"is_active":    schedule.IsActive,
		}).Error
}
