package repository

import (
	"context"

	"github.com/GenerateNU/dearly-sub000/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeviceTokenRepo interface {
	GetTokensByUserIds(ctx context.Context, userIDs []uint64) ([]*model.DeviceToken, error)
	CreateToken(ctx context.Context, token *model.DeviceToken) error
	DeleteToken(ctx context.Context, userID uint64, token string) error
	DeleteTokens(ctx context.Context, tokens []string) error
}

type DeviceTokenRepoImpl struct {
	db *gorm.DB
}

func NewDeviceTokenRepo(db *gorm.DB) DeviceTokenRepo {
	return &DeviceTokenRepoImpl{db: db}
}

// GetTokensByUserIds 批量取设备令牌
func (s *DeviceTokenRepoImpl) GetTokensByUserIds(ctx context.Context, userIDs []uint64) ([]*model.DeviceToken, error) {
	if len(userIDs) == 0 {
		return []*model.DeviceToken{}, nil
	}
	var tokens []*model.DeviceToken
	result := s.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&tokens)
	if result.Error != nil {
		return nil, result.Error
	}
	return tokens, nil
}

// CreateToken 注册设备令牌，重复注册为空操作
func (s *DeviceTokenRepoImpl) CreateToken(ctx context.Context, token *model.DeviceToken) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			DoNothing: true,
		}).
		Create(token).Error
}

// DeleteToken 注销单个设备令牌
func (s *DeviceTokenRepoImpl) DeleteToken(ctx context.Context, userID uint64, token string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&model.DeviceToken{}).Error
}

// DeleteTokens 批量删除服务商报废的令牌
func (s *DeviceTokenRepoImpl) DeleteTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Where("token IN ?", tokens).
		Delete(&model.DeviceToken{}).Error
}
