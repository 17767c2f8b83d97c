package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/contextutil"
)

// RequestContext tags every request with an ID and a scoped logger, and
// propagates both into the standard context so the service and repo
// layers can retrieve them without knowing about gin.
func RequestContext(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Set("request_id", rid)
		c.Header("X-Request-ID", rid)

		reqLogger := logger.With(zap.String("request_id", rid))

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
