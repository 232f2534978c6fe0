package model

import (
	"time"
)

// Post 帖子主表由 CRUD 子系统维护，此处只读
type Post struct {
	ID        uint64    `gorm:"primaryKey"`
	GroupID   uint64    `gorm:"not null;index:idx_group_id" json:"group_id"`
	UserID    uint64    `gorm:"not null;index:idx_user_id" json:"user_id"`
	Caption   string    `gorm:"type:varchar(255)" json:"caption"`
	IsDeleted bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}
