package api

import "github.com/GenerateNU/dearly-sub000/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	NudgeHandler        *handler.NudgeHandler
	ScheduleHandler     *handler.ScheduleHandler
	NotificationHandler *handler.NotificationHandler
	DeviceHandler       *handler.DeviceHandler
	PreferenceHandler   *handler.PreferenceHandler
}
