package middleware

import (
	"context"

	"github.com/lichwu/iapush/internal/pkg/ctxkey"
	"github.com/lichwu/iapush/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestID assigns every request a request_id and binds a logger carrying it
// into the request context, so downstream token/purchase/push logs correlate
// back to the inbound call.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request == nil {
			c.Next()
			return
		}

		if v := c.Request.Context().Value(ctxkey.RequestID); v != nil {
			c.Next()
			return
		}

		id := uuid.New().String()
		ctx := context.WithValue(c.Request.Context(), ctxkey.RequestID, id)
		requestLogger := logger.FromContext(ctx).With(zap.String("request_id", id))
		ctx = logger.IntoContext(ctx, requestLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}
