package handler

import (
	"strconv"

	"github.com/GenerateNU/dearly-sub000/internal/api/dto"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/response"
	"github.com/GenerateNU/dearly-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

type NudgeHandler struct {
	nudgeService service.NudgeService
}

func NewNudgeHandler(s service.NudgeService) *NudgeHandler {
	return &NudgeHandler{
		nudgeService: s,
	}
}

// ManualNudge 群主手动催促指定成员
func (h *NudgeHandler) ManualNudge(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("group_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.ManualNudgeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	callerID := c.GetUint64("user_id")
	if err := h.nudgeService.ManualNudge(c.Request.Context(), callerID, groupID, req.TargetIDs); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// TriggerNudge 外部调度器回调的定时催促入口
func (h *NudgeHandler) TriggerNudge(c *gin.Context) {
	var req dto.TriggerNudgeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.nudgeService.ScheduledNudge(c.Request.Context(), req.GroupID, req.Frequency); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
