package model

import (
	"time"
)

type Like struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:uk_user_post" json:"user_id"`
	PostID    uint64    `gorm:"not null;uniqueIndex:uk_user_post;index:idx_post_id" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
