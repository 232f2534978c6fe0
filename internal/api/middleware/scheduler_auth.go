package middleware

import (
	"crypto/subtle"

	"github.com/GenerateNU/dearly-sub000/internal/api/config"
	"github.com/GenerateNU/dearly-sub000/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// SchedulerAuthMiddleware 校验外部调度器回调携带的凭据，
// 内部触发端点不走用户 JWT
func SchedulerAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := config.Cfg.Scheduler.TriggerToken
		got := c.GetHeader("X-Scheduler-Token")
		if expected == "" || subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			response.Fail(c, response.Unauthorized, "调度凭据无效")
			c.Abort()
			return
		}
		c.Next()
	}
}
