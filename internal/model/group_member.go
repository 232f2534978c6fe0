package model

import (
	"time"
)

// GroupMember 组成员关系，携带四个独立的通知开关与手动催促时间戳
type GroupMember struct {
	GroupID           uint64     `gorm:"primaryKey" json:"group_id"`
	UserID            uint64     `gorm:"primaryKey;index:idx_user_id" json:"user_id"`
	LikeNotify        bool       `gorm:"type:tinyint(1);not null;default:1" json:"like_notify"`
	CommentNotify     bool       `gorm:"type:tinyint(1);not null;default:1" json:"comment_notify"`
	PostNotify        bool       `gorm:"type:tinyint(1);not null;default:1" json:"post_notify"`
	NudgeNotify       bool       `gorm:"type:tinyint(1);not null;default:1" json:"nudge_notify"`
	LastManualNudgeAt *time.Time `json:"last_manual_nudge_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (GroupMember) TableName() string {
	return "group_members"
}

// NotifyEnabledFor 按触发类型取对应开关
func (m *GroupMember) NotifyEnabledFor(refType string) bool {
	switch refType {
	case RefTypePost:
		return m.PostNotify
	case RefTypeLike:
		return m.LikeNotify
	case RefTypeComment:
		return m.CommentNotify
	case RefTypeNudge:
		return m.NudgeNotify
	default:
		return false
	}
}
