package handler

import (
	"strconv"

	"github.com/GenerateNU/dearly-sub000/internal/api/dto"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/response"
	"github.com/GenerateNU/dearly-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(s service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: s,
	}
}

// GetHistory 获取通知历史
func (h *NotificationHandler) GetHistory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	userID := c.GetUint64("user_id")

	rows, err := h.notificationService.GetHistory(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToNotificationDTOs(rows))
}

// GetCount 获取通知总数
func (h *NotificationHandler) GetCount(c *gin.Context) {
	userID := c.GetUint64("user_id")

	count, err := h.notificationService.GetCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NotificationCountDTO{Count: count})
}
