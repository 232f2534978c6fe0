package handler

import (
	"strconv"

	"github.com/GenerateNU/dearly-sub000/internal/api/dto"
	"github.com/GenerateNU/dearly-sub000/internal/model"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/response"
	"github.com/GenerateNU/dearly-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

type PreferenceHandler struct {
	preferenceService service.PreferenceService
}

func NewPreferenceHandler(s service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceService: s,
	}
}

// GetPreferences 获取调用者在群组内的通知开关
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("group_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")
	member, err := h.preferenceService.GetPreferences(c.Request.Context(), groupID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToPreferenceDTO(member))
}

// UpdatePreferences 更新调用者在群组内的通知开关
func (h *PreferenceHandler) UpdatePreferences(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("group_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.UpdatePreferenceDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")
	member := &model.GroupMember{
		GroupID:       groupID,
		UserID:        userID,
		LikeNotify:    *req.LikeNotify,
		CommentNotify: *req.CommentNotify,
		PostNotify:    *req.PostNotify,
		NudgeNotify:   *req.NudgeNotify,
	}

	if err := h.preferenceService.UpdatePreferences(c.Request.Context(), member); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToPreferenceDTO(member))
}
