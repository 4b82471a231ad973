package scheduler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/authhandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/schedulerhandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/requests/schedulerreq"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/responses"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type SchedulerRoute struct {
	handler     *schedulerhandler.SchedulerHandler
	authHandler *authhandler.AuthHandler
}

func NewSchedulerRoute(handler *schedulerhandler.SchedulerHandler, authHandler *authhandler.AuthHandler) *SchedulerRoute {
	return &SchedulerRoute{
		handler:     handler,
		authHandler: authHandler,
	}
}

func (r *SchedulerRoute) RegisterRouter(router gin.IRouter) {
	jobs := router.Group("/scheduler/jobs")
	jobs.GET("", r.listJobs)
	jobs.POST("", r.authHandler.WithSuperuserAuthChain(r.addJob)...)
	jobs.DELETE("/:job_id", r.authHandler.WithSuperuserAuthChain(r.removeJob)...)
}

// listJobs godoc
// @Summary List scheduled jobs
// @Tags Scheduler API
// @Produce json
// @Success 200 {array} crontab.JobInfo
// @Router /scheduler/jobs [get]
func (r *SchedulerRoute) listJobs(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, r.handler.ListJobs())
}

// addJob godoc
// @Summary Schedule a job
// @Description Schedules a registered task (collect or reconcile) with a date, interval or cron trigger.
// @Tags Scheduler API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body schedulerreq.AddJobRequest true "Job"
// @Success 201 {object} crontab.JobInfo
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /scheduler/jobs [post]
func (r *SchedulerRoute) addJob(reqCtx *gin.Context) {
	var req schedulerreq.AddJobRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "scheduler-add-001")
		return
	}
	job, err := r.handler.AddJob(reqCtx.Request.Context(), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to schedule job")
		return
	}
	reqCtx.JSON(http.StatusCreated, job)
}

// removeJob godoc
// @Summary Remove a scheduled job
// @Tags Scheduler API
// @Security BearerAuth
// @Produce json
// @Param job_id path string true "Job ID"
// @Success 200 {object} responses.MessageResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /scheduler/jobs/{job_id} [delete]
func (r *SchedulerRoute) removeJob(reqCtx *gin.Context) {
	if err := r.handler.RemoveJob(reqCtx.Request.Context(), reqCtx.Param("job_id")); err != nil {
		responses.HandleError(reqCtx, err, "Failed to remove job")
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewMessage("Job removed successfully"))
}
