//go:build wireinject
// +build wireinject

package main

import (
	"net/http"

	"github.com/lichwu/iapush/internal/config"
	"github.com/lichwu/iapush/internal/handler"
	"github.com/lichwu/iapush/internal/repository"
	"github.com/lichwu/iapush/internal/server"
	"github.com/lichwu/iapush/internal/service"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

type Application struct {
	Config  *config.Config
	Server  *http.Server
	Cleanup func()
}

func initializeApplication() (*Application, error) {
	wire.Build(
		config.ProviderSet,

		repository.ProviderSet,
		service.ProviderSet,
		handler.ProviderSet,

		server.ProviderSet,

		provideCleanup,

		wire.Struct(new(Application), "Config", "Server", "Cleanup"),
	)
	return nil, nil
}

func provideCleanup(rdb *redis.Client) func() {
	return func() {
		_ = rdb.Close()
	}
}
