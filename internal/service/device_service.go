package service

import (
	"context"

	"github.com/GenerateNU/dearly-sub000/internal/model"
	"github.com/GenerateNU/dearly-sub000/internal/repository"
	"github.com/pkg/errors"
)

type DeviceService interface {
	RegisterToken(ctx context.Context, userID uint64, token string) error
	UnregisterToken(ctx context.Context, userID uint64, token string) error
}

type DeviceServiceImpl struct {
	deviceTokenRepo repository.DeviceTokenRepo
}

func NewDeviceService(deviceTokenRepo repository.DeviceTokenRepo) DeviceService {
	return &DeviceServiceImpl{deviceTokenRepo: deviceTokenRepo}
}

// RegisterToken 注册设备令牌，重复注册为空操作
func (s *DeviceServiceImpl) RegisterToken(ctx context.Context, userID uint64, token string) error {
	err := s.deviceTokenRepo.CreateToken(ctx, &model.DeviceToken{
		UserID: userID,
		Token:  token,
	})
	if err != nil {
		return errors.Wrap(err, "register device token failed")
	}
	return nil
}

// UnregisterToken 注销设备令牌，令牌不存在时同样视为成功
func (s *DeviceServiceImpl) UnregisterToken(ctx context.Context, userID uint64, token string) error {
	err := s.deviceTokenRepo.DeleteToken(ctx, userID, token)
	if err != nil {
		return errors.Wrap(err, "unregister device token failed")
	}
	return nil
}
