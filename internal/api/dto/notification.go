package dto

import (
	"time"

	"github.com/GenerateNU/dearly-sub000/internal/model"
)

// NotificationDTO 通知历史返回对象
type NotificationDTO struct {
	ID            uint64  `json:"id"`
	ActorID       uint64  `json:"actor_id"`
	ReferenceType string  `json:"reference_type"`
	ReferenceID   uint64  `json:"reference_id"`
	GroupID       uint64  `json:"group_id"`
	PostID        *uint64 `json:"post_id,omitempty"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	CreatedAt     string  `json:"created_at"`
}

// NotificationCountDTO 通知总数返回
type NotificationCountDTO struct {
	Count int64 `json:"count"`
}

func ToNotificationDTOs(rows []*model.Notification) []*NotificationDTO {
	out := make([]*NotificationDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, &NotificationDTO{
			ID:            row.ID,
			ActorID:       row.ActorID,
			ReferenceType: row.ReferenceType,
			ReferenceID:   row.ReferenceID,
			GroupID:       row.GroupID,
			PostID:        row.PostID,
			Title:         row.Title,
			Description:   row.Description,
			CreatedAt:     row.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}
