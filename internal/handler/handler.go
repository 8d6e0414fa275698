// Package handler exposes the purchase and push operations over HTTP.
package handler

import (
	"encoding/json"
	"errors"

	"github.com/lichwu/iapush/internal/pkg/response"
	"github.com/lichwu/iapush/internal/service"
	"github.com/lichwu/iapush/internal/util/iaperror"

	"github.com/gin-gonic/gin"
)

// upstreamResult mirrors a downstream Google response back to the API caller.
// The body rides along verbatim; interpreting a 410 or an acknowledgement
// state is the caller's business.
type upstreamResult struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body,omitempty"`
	// RawBody carries the body when it is not valid JSON (HTML error pages).
	RawBody string `json:"raw_body,omitempty"`
}

func writeAPIResult(c *gin.Context, result *service.APIResult) {
	out := upstreamResult{Status: result.StatusCode}
	if json.Valid(result.Body) {
		out.Body = json.RawMessage(result.Body)
	} else if len(result.Body) > 0 {
		out.RawBody = iaperror.TruncateBody(result.Body, 0)
	}
	response.Success(c, out)
}

func writeServiceError(c *gin.Context, err error) {
	var tokenErr *iaperror.TokenError
	var transportErr *iaperror.TransportError
	switch {
	case errors.As(err, &tokenErr):
		response.BadGateway(c, "google token refresh failed")
	case errors.As(err, &transportErr):
		response.BadGateway(c, "google api unreachable")
	default:
		response.InternalError(c, err.Error())
	}
}
