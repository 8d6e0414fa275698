package server

import (
	"net/http"

	"github.com/lichwu/iapush/internal/config"
	"github.com/lichwu/iapush/internal/handler"
	"github.com/lichwu/iapush/internal/server/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// NewRouter 配置路由器中间件和路由
func NewRouter(cfg *config.Config, handlers *handler.Handlers, redisClient *redis.Client) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	registerRoutes(r, handlers, redisClient)
	return r
}

// registerRoutes 注册所有 HTTP 路由
func registerRoutes(r *gin.Engine, h *handler.Handlers, redisClient *redis.Client) {
	r.GET("/health", func(c *gin.Context) {
		status := "ok"
		httpStatus := http.StatusOK
		if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}
		c.JSON(httpStatus, gin.H{"status": status})
	})

	v1 := r.Group("/api/v1")
	{
		purchases := v1.Group("/purchases")
		{
			purchases.POST("/query", h.Purchase.Query)
			purchases.POST("/acknowledge", h.Purchase.Acknowledge)
		}

		push := v1.Group("/push")
		{
			push.POST("/device", h.Push.SendToDevice)
			push.POST("/topic", h.Push.SendToTopic)
			push.POST("/topics/subscribe", h.Push.SubscribeTopic)
		}
	}
}
