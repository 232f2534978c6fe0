package handler

import (
	"github.com/GenerateNU/dearly-sub000/internal/api/dto"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/response"
	"github.com/GenerateNU/dearly-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

type DeviceHandler struct {
	deviceService service.DeviceService
}

func NewDeviceHandler(s service.DeviceService) *DeviceHandler {
	return &DeviceHandler{
		deviceService: s,
	}
}

// Register 注册设备令牌
func (h *DeviceHandler) Register(c *gin.Context) {
	var req dto.DeviceTokenDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")
	if err := h.deviceService.RegisterToken(c.Request.Context(), userID, req.Token); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Unregister 注销设备令牌
func (h *DeviceHandler) Unregister(c *gin.Context) {
	var req dto.DeviceTokenDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")
	if err := h.deviceService.UnregisterToken(c.Request.Context(), userID, req.Token); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
