package model

import (
	"time"
)

// Group 家庭组，由 CRUD 子系统维护，此处只读取名称与管理员
type Group struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(100);not null" json:"name"`
	ManagerID uint64 `gorm:"not null;index:idx_manager_id" json:"manager_id"`
	IsDeleted bool   `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Group) TableName() string {
	return "groups"
}
