package dto

// DeviceTokenDTO 设备令牌注册/注销请求
type DeviceTokenDTO struct {
	Token string `json:"token" binding:"required,max=255"`
}
