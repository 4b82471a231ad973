package routes

import (
	"github.com/google/wire"

	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers"
	v1 "github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/ignores"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/items"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/login"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/projects"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/reports"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/roles"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/scheduler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/users"
)

var RouteProvider = wire.NewSet(
	// Handlers
	handlers.HandlerProvider,

	// Routes
	v1.NewV1Route,
	login.NewLoginRoute,
	users.NewUsersRoute,
	roles.NewRolesRoute,
	items.NewItemsRoute,
	ignores.NewIgnoresRoute,
	projects.NewProjectRoute,
	reports.NewReportsRoute,
	scheduler.NewSchedulerRoute,
)
