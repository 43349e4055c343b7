//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"github.com/henryforrest/The-Cube-Game/internal/biz"
	"github.com/henryforrest/The-Cube-Game/internal/conf"
	"github.com/henryforrest/The-Cube-Game/internal/data"
	"github.com/henryforrest/The-Cube-Game/internal/notify"
	"github.com/henryforrest/The-Cube-Game/internal/server"
	"github.com/henryforrest/The-Cube-Game/internal/service"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// wireApp init kratos application.
func wireApp(*conf.Server, *conf.Data, *conf.Game, *conf.Notify, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(server.ProviderSet, data.ProviderSet, biz.ProviderSet, notify.ProviderSet, service.ProviderSet, newApp))
}
