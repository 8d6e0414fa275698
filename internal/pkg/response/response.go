// Package response provides the JSON envelope helpers used by all handlers.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the uniform envelope returned by every endpoint.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Success writes a 200 envelope with data.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "ok", Data: data})
}

// BadRequest writes a 400 envelope.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Code: http.StatusBadRequest, Message: message})
}

// InternalError writes a 500 envelope.
func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, Response{Code: http.StatusInternalServerError, Message: message})
}

// BadGateway writes a 502 envelope, used when a downstream Google call could
// not complete at the transport level.
func BadGateway(c *gin.Context, message string) {
	c.JSON(http.StatusBadGateway, Response{Code: http.StatusBadGateway, Message: message})
}
