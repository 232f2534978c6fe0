package dto

import "github.com/GenerateNU/dearly-sub000/internal/model"

// UpsertScheduleDTO 配置定时催促请求。
// 字段与频率的匹配关系由服务层整体校验，这里只做格式约束
type UpsertScheduleDTO struct {
	Frequency  string `json:"frequency" binding:"required,oneof=DAILY WEEKLY BIWEEKLY MONTHLY YEARLY"`
	DaysOfWeek []int  `json:"days_of_week"`
	Day        *int   `json:"day"`
	Month      *int   `json:"month"`
	NudgeAt    string `json:"nudge_at" binding:"required"`
}

// ScheduleDTO 催促计划返回对象
type ScheduleDTO struct {
	GroupID    uint64 `json:"group_id"`
	Frequency  string `json:"frequency"`
	DaysOfWeek []int  `json:"days_of_week,omitempty"`
	Day        *int   `json:"day,omitempty"`
	Month      *int   `json:"month,omitempty"`
	NudgeAt    string `json:"nudge_at"`
	IsActive   bool   `json:"is_active"`
}

func ToScheduleDTO(schedule *model.NudgeSchedule) *ScheduleDTO {
	return &ScheduleDTO{
		GroupID:    schedule.GroupID,
		Frequency:  schedule.Frequency,
		DaysOfWeek: schedule.DaysOfWeek,
		Day:        schedule.Day,
		Month:      schedule.Month,
		NudgeAt:    schedule.NudgeAt,
		IsActive:   schedule.IsActive,
	}
}
