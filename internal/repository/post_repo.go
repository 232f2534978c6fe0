package repository

import (
	"context"
	"errors"

	"github.com/GenerateNU/dearly-sub000/internal/model"
	"gorm.io/gorm"
)

type PostRepo interface {
	GetPostById(ctx context.Context, id uint64) (*model.Post, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

// GetPostById 获取帖子，未找到或已删除返回 nil
func (s *PostRepoImpl) GetPostById(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	result := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = 0", id).
		First(&post)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &post, nil
}
