package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/lichwu/iapush/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
)

// NewHTTPServer wraps the router in an http.Server with the configured
// listen address and timeouts.
func NewHTTPServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: engine,
	}
	if cfg.Server.ReadHeaderTimeoutSeconds > 0 {
		srv.ReadHeaderTimeout = time.Duration(cfg.Server.ReadHeaderTimeoutSeconds) * time.Second
	}
	if cfg.Server.IdleTimeoutSeconds > 0 {
		srv.IdleTimeout = time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second
	}
	return srv
}

// ProviderSet is server providers.
var ProviderSet = wire.NewSet(
	NewRouter,
	NewHTTPServer,
)
