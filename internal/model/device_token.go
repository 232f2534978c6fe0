package model

import (
	"time"
)

// DeviceToken 设备推送令牌，注册时创建，注销或服务商报废时删除
type DeviceToken struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:uk_user_token;index:idx_user_id" json:"user_id"`
	Token     string    `gorm:"type:varchar(255);not null;uniqueIndex:uk_user_token" json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

func (DeviceToken) TableName() string {
	return "device_tokens"
}
