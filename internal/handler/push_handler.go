package handler

import (
	"github.com/lichwu/iapush/internal/pkg/response"
	"github.com/lichwu/iapush/internal/service"

	"github.com/gin-gonic/gin"
)

type PushHandler struct {
	push *service.PushService
}

func NewPushHandler(push *service.PushService) *PushHandler {
	return &PushHandler{push: push}
}

type SendToDeviceRequest struct {
	DeviceToken string            `json:"device_token" binding:"required"`
	Title       string            `json:"title" binding:"required"`
	Body        string            `json:"body" binding:"required"`
	Data        map[string]string `json:"data"`
}

type SendToTopicRequest struct {
	Topic string            `json:"topic" binding:"required"`
	Title string            `json:"title" binding:"required"`
	Body  string            `json:"body" binding:"required"`
	Data  map[string]string `json:"data"`
}

type SubscribeTopicRequest struct {
	DeviceToken string `json:"device_token" binding:"required"`
	Topic       string `json:"topic" binding:"required"`
}

// SendToDevice pushes a notification to a single device token.
// POST /api/v1/push/device
func (h *PushHandler) SendToDevice(c *gin.Context) {
	var req SendToDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.push.SendToDevice(c.Request.Context(), req.DeviceToken, req.Title, req.Body, req.Data)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeAPIResult(c, result)
}

// SendToTopic pushes a notification to every subscriber of a topic.
// POST /api/v1/push/topic
func (h *PushHandler) SendToTopic(c *gin.Context) {
	var req SendToTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.push.SendToTopic(c.Request.Context(), req.Topic, req.Title, req.Body, req.Data)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeAPIResult(c, result)
}

// SubscribeTopic binds a device to a topic.
// POST /api/v1/push/topics/subscribe
func (h *PushHandler) SubscribeTopic(c *gin.Context) {
	var req SubscribeTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.push.SubscribeToTopic(c.Request.Context(), req.DeviceToken, req.Topic)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeAPIResult(c, result)
}
