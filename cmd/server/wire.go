//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/xdd7520/QualityStar/internal/domain"
	"github.com/xdd7520/QualityStar/internal/infrastructure"
	"github.com/xdd7520/QualityStar/internal/interfaces"
)

func CreateApplication() (*Application, func(), error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(DataInitializer), "*"),
		wire.Struct(new(Application), "*"),
	)
	return nil, nil, nil
}
