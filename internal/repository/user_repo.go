package repository

import (
	"context"

	"github.com/GenerateNU/dearly-sub000/internal/model"
	"gorm.io/gorm"
)

type UserRepo interface {
	GetUsersByIds(ctx context.Context, ids []uint64) ([]*model.User, error)
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

// GetUsersByIds 批量获取用户，不存在的 id 直接缺席于结果
func (s *UserRepoImpl) GetUsersByIds(ctx context.Context, ids []uint64) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}
	var users []*model.User
	result := s.db.WithContext(ctx).
		Where("id IN ? AND is_delete = 0", ids).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// GetUserById 获取单个用户，未找到返回 nil
func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	users, err := s.GetUsersByIds(ctx, []uint64{id})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return users[0], nil
}
