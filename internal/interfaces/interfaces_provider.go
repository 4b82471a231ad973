package interfaces

import (
	"github.com/google/wire"

	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes"
)

var InterfacesProvider = wire.NewSet(
	routes.RouteProvider,
	httpserver.NewHttpServer,
)
