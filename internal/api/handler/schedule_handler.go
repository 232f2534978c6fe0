package handler

import (
	"strconv"

	"github.com/GenerateNU/dearly-sub000/internal/api/dto"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/response"
	"github.com/GenerateNU/dearly-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

func NewScheduleHandler(s service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: s,
	}
}

// UpsertSchedule 配置或覆写定时催促
func (h *ScheduleHandler) UpsertSchedule(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("group_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.UpsertScheduleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	callerID := c.GetUint64("user_id")
	spec := &service.RecurrenceSpec{
		Frequency:  req.Frequency,
		DaysOfWeek: req.DaysOfWeek,
		Day:        req.Day,
		Month:      req.Month,
		NudgeAt:    req.NudgeAt,
	}

	schedule, err := h.scheduleService.UpsertSchedule(c.Request.Context(), callerID, groupID, spec)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToScheduleDTO(schedule))
}

// GetSchedule 查询定时催促配置
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("group_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	callerID := c.GetUint64("user_id")
	schedule, err := h.scheduleService.GetSchedule(c.Request.Context(), callerID, groupID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToScheduleDTO(schedule))
}

// DeactivateSchedule 停用定时催促
func (h *ScheduleHandler) DeactivateSchedule(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("group_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	callerID := c.GetUint64("user_id")
	deactivated, err := h.scheduleService.DeactivateSchedule(c.Request.Context(), callerID, groupID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"deactivated": deactivated})
}
