package model

import (
	"time"
)

// 通知引用类型，reference_id 指向对应触发行
const (
	RefTypePost    = "POST"
	RefTypeComment = "COMMENT"
	RefTypeLike    = "LIKE"
	RefTypeNudge   = "NUDGE"
	RefTypeInvite  = "INVITE"
)

// Notification 通知记录，创建后不可变更。
// (receiver_id, reference_type, reference_id) 的唯一约束保证同一触发行
// 对同一接收者至多落库一次，变更流的重复投递因此退化为空操作。
type Notification struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	ActorID       uint64    `gorm:"not null" json:"actor_id"`
	ReceiverID    uint64    `gorm:"not null;uniqueIndex:uk_receiver_ref;index:idx_receiver_created,priority:1" json:"receiver_id"`
	ReferenceType string    `gorm:"type:varchar(16);not null;uniqueIndex:uk_receiver_ref" json:"reference_type"`
	ReferenceID   uint64    `gorm:"not null;uniqueIndex:uk_receiver_ref" json:"reference_id"`
	GroupID       uint64    `gorm:"not null;index:idx_group_id" json:"group_id"`
	PostID        *uint64   `json:"post_id"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title"`
	Description   string    `gorm:"type:varchar(500);not null" json:"description"`
	CreatedAt     time.Time `gorm:"index:idx_receiver_created,priority:2" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NewPostNotification 新帖通知
func NewPostNotification(post *Post, receiverID uint64, title, description string) *Notification {
	postID := post.ID
	return &Notification{
		ActorID:       post.UserID,
		ReceiverID:    receiverID,
		ReferenceType: RefTypePost,
		ReferenceID:   post.ID,
		GroupID:       post.GroupID,
		PostID:        &postID,
		Title:         title,
		Description:   description,
	}
}

// NewLikeNotification 点赞通知
func NewLikeNotification(like *Like, groupID, receiverID uint64, title, description string) *Notification {
	postID := like.PostID
	return &Notification{
		ActorID:       like.UserID,
		ReceiverID:    receiverID,
		ReferenceType: RefTypeLike,
		ReferenceID:   like.ID,
		GroupID:       groupID,
		PostID:        &postID,
		Title:         title,
		Description:   description,
	}
}

// NewCommentNotification 评论通知
func NewCommentNotification(comment *Comment, groupID, receiverID uint64, title, description string) *Notification {
	postID := comment.PostID
	return &Notification{
		ActorID:       comment.UserID,
		ReceiverID:    receiverID,
		ReferenceType: RefTypeComment,
		ReferenceID:   comment.ID,
		GroupID:       groupID,
		PostID:        &postID,
		Title:         title,
		Description:   description,
	}
}

// NewNudgeNotification 催促通知。nudgeID 由一次催促动作统一生成，
// 同一次动作的重复投递共享该 ID。
func NewNudgeNotification(nudgeID, actorID, groupID, receiverID uint64, title, description string) *Notification {
	return &Notification{
		ActorID:       actorID,
		ReceiverID:    receiverID,
		ReferenceType: RefTypeNudge,
		ReferenceID:   nudgeID,
		GroupID:       groupID,
		Title:         title,
		Description:   description,
	}
}
