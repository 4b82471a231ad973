package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/xdd7520/QualityStar/internal/config"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/ignores"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/items"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/login"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/projects"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/reports"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/roles"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/scheduler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/routes/v1/users"
)

type V1Route struct {
	login     *login.LoginRoute
	users     *users.UsersRoute
	roles     *roles.RolesRoute
	items     *items.ItemsRoute
	ignores   *ignores.IgnoresRoute
	projects  *projects.ProjectRoute
	reports   *reports.ReportsRoute
	scheduler *scheduler.SchedulerRoute
	db        *gorm.DB
	cfg       *config.Config
}

func NewV1Route(
	login *login.LoginRoute,
	users *users.UsersRoute,
	roles *roles.RolesRoute,
	items *items.ItemsRoute,
	ignores *ignores.IgnoresRoute,
	projects *projects.ProjectRoute,
	reports *reports.ReportsRoute,
	scheduler *scheduler.SchedulerRoute,
	db *gorm.DB,
	cfg *config.Config,
) *V1Route {
	return &V1Route{
		login,
		users,
		roles,
		items,
		ignores,
		projects,
		reports,
		scheduler,
		db,
		cfg,
	}
}

// RegisterRouter mounts every API route on router, which is expected to carry the API prefix.
func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	router.GET("/version", v1Route.GetVersion)
	router.GET("/healthz", GetHealthz)
	router.GET("/readyz", v1Route.GetReadyz)

	v1Route.login.RegisterRouter(router)
	v1Route.users.RegisterRouter(router)
	v1Route.roles.RegisterRouter(router)
	v1Route.items.RegisterRouter(router)
	v1Route.ignores.RegisterRouter(router)
	v1Route.projects.RegisterRouter(router)
	v1Route.reports.RegisterRouter(router)
	v1Route.scheduler.RegisterRouter(router)
}

// GetVersion godoc
// @Summary Get API build version
// @Description Returns the build version and when the environment was last loaded.
// @Tags Server API
// @Produce json
// @Success 200 {object} map[string]string
// @Router /version [get]
func (v1Route *V1Route) GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":         v1Route.cfg.ServiceVersion,
		"environment":     v1Route.cfg.Environment,
		"env_reloaded_at": v1Route.cfg.EnvReloadedAt.Format(time.RFC3339),
	})
}

// GetHealthz godoc
// @Summary Health check endpoint
// @Tags Server API
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func GetHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetReadyz godoc
// @Summary Readiness check endpoint
// @Description Reports ready once the database answers a ping.
// @Tags Server API
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /readyz [get]
func (v1Route *V1Route) GetReadyz(c *gin.Context) {
	if err := PingDatabase(c.Request.Context(), v1Route.db); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// PingDatabase checks the primary connection with a short deadline.
func PingDatabase(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
