package api

import (
	"net/http"

	"github.com/GenerateNU/dearly-sub000/internal/api/middleware"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		groupGroup := apiGroup.Group("/groups/:group_id")
		groupGroup.Use(middleware.AuthMiddleware())
		{
			groupGroup.POST("/nudges", group.NudgeHandler.ManualNudge)

			groupGroup.PUT("/nudges/schedule", group.ScheduleHandler.UpsertSchedule)
			groupGroup.GET("/nudges/schedule", group.ScheduleHandler.GetSchedule)
			groupGroup.DELETE("/nudges/schedule", group.ScheduleHandler.DeactivateSchedule)

			groupGroup.GET("/preferences", group.PreferenceHandler.GetPreferences)
			groupGroup.PUT("/preferences", group.PreferenceHandler.UpdatePreferences)
		}

		notificationGroup := apiGroup.Group("/notifications")
		notificationGroup.Use(middleware.AuthMiddleware())
		{
			notificationGroup.GET("", group.NotificationHandler.GetHistory)
			notificationGroup.GET("/count", group.NotificationHandler.GetCount)
		}

		deviceGroup := apiGroup.Group("/devices")
		deviceGroup.Use(middleware.AuthMiddleware())
		{
			deviceGroup.POST("", group.DeviceHandler.Register)
			deviceGroup.DELETE("", group.DeviceHandler.Unregister)
		}

		// 外部调度器回调，凭据校验而非用户 JWT
		internalGroup := apiGroup.Group("/internal")
		internalGroup.Use(middleware.SchedulerAuthMiddleware())
		{
			internalGroup.POST("/nudges/trigger", group.NudgeHandler.TriggerNudge)
		}
	}

	return r
}
