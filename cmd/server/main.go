package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lichwu/iapush/internal/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Bootstrap logging covers config load and wiring; the configured
	// logger replaces it once config is available.
	logger.InitBootstrap()

	app, err := initializeApplication()
	if err != nil {
		logger.L().Fatal("application initialization failed", zap.Error(err))
	}
	defer app.Cleanup()

	if err := logger.Init(logger.OptionsFromConfig(app.Config.Log)); err != nil {
		logger.L().Fatal("logger initialization failed", zap.Error(err))
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.L().Info("server listening",
			zap.String("component", "server"),
			zap.String("addr", app.Server.Addr),
		)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Error("server stopped unexpectedly", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.L().Info("shutdown signal received", zap.String("component", "server"))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
	logger.L().Info("server stopped", zap.String("component", "server"))
}
