package dto

// ManualNudgeDTO 手动催促请求
type ManualNudgeDTO struct {
	TargetIDs []uint64 `json:"target_ids" binding:"required"`
}

// TriggerNudgeDTO 外部调度器回调请求，即建计划时登记的 target_input
type TriggerNudgeDTO struct {
	GroupID   uint64 `json:"group_id" binding:"required"`
	Frequency string `json:"frequency" binding:"required"`
}
