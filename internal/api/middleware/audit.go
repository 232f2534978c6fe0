package middleware

import (
	log "log/slog"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
)

// AuditMiddleware 记录请求概要与耗时
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		rawQuery := c.Request.URL.RawQuery
		decodedQuery, err := url.QueryUnescape(rawQuery)
		if err != nil {
			decodedQuery = rawQuery
		}

		log.InfoContext(ctx, "Recv Request",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.String("query", decodedQuery),
			log.String("client_ip", c.ClientIP()),
		)

		start := time.Now()
		c.Next()

		log.InfoContext(ctx, "Send Response",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.Int("status", c.Writer.Status()),
			log.Duration("cost", time.Since(start)),
		)
	}
}
