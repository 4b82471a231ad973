package handlers

import (
	"github.com/google/wire"

	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/authhandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/coveragehandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/ignorehandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/itemhandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/projecthandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/rolehandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/schedulerhandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/userhandler"
)

var HandlerProvider = wire.NewSet(
	authhandler.NewAuthHandler,
	userhandler.NewUserHandler,
	rolehandler.NewRoleHandler,
	itemhandler.NewItemHandler,
	ignorehandler.NewIgnoreHandler,
	projecthandler.NewProjectHandler,
	coveragehandler.NewCoverageHandler,
	schedulerhandler.NewSchedulerHandler,
)
