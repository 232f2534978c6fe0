package dto

import "github.com/GenerateNU/dearly-sub000/internal/model"

// UpdatePreferenceDTO 通知开关更新请求，四个开关整体提交
type UpdatePreferenceDTO struct {
	LikeNotify    *bool `json:"like_notify" binding:"required"`
	CommentNotify *bool `json:"comment_notify" binding:"required"`
	PostNotify    *bool `json:"post_notify" binding:"required"`
	NudgeNotify   *bool `json:"nudge_notify" binding:"required"`
}

// PreferenceDTO 通知开关返回对象
type PreferenceDTO struct {
	GroupID       uint64 `json:"group_id"`
	LikeNotify    bool   `json:"like_notify"`
	CommentNotify bool   `json:"comment_notify"`
	PostNotify    bool   `json:"post_notify"`
	NudgeNotify   bool   `json:"nudge_notify"`
}

func ToPreferenceDTO(member *model.GroupMember) *PreferenceDTO {
	return &PreferenceDTO{
		GroupID:       member.GroupID,
		LikeNotify:    member.LikeNotify,
		CommentNotify: member.CommentNotify,
		PostNotify:    member.PostNotify,
		NudgeNotify:   member.NudgeNotify,
	}
}
