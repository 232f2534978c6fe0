package repository

import (
	"context"
	"errors"

	"github.com/GenerateNU/dearly-sub000/internal/model"
	"gorm.io/gorm"
)

type GroupRepo interface {
	GetGroupById(ctx context.Context, id uint64) (*model.Group, error)
}

type GroupRepoImpl struct {
	db *gorm.DB
}

func NewGroupRepo(db *gorm.DB) GroupRepo {
	return &GroupRepoImpl{db: db}
}

// GetGroupById 获取群组，未找到返回 nil
func (s *GroupRepoImpl) GetGroupById(ctx context.Context, id uint64) (*model.Group, error) {
	var group model.Group
	result := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = 0", id).
		First(&group)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &group, nil
}
