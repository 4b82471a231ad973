package reports

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xdd7520/QualityStar/internal/domain/coverage"
	"github.com/xdd7520/QualityStar/internal/domain/transactionlog"
	"github.com/xdd7520/QualityStar/internal/infrastructure/export"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/authhandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/handlers/coveragehandler"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/requests"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/requests/reportreq"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/responses"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

const (
	uploadMessage  = "upload successfully"
	triggerMessage = "trigger successfully"
)

type ReportsRoute struct {
	handler     *coveragehandler.CoverageHandler
	authHandler *authhandler.AuthHandler
}

func NewReportsRoute(handler *coveragehandler.CoverageHandler, authHandler *authhandler.AuthHandler) *ReportsRoute {
	return &ReportsRoute{
		handler:     handler,
		authHandler: authHandler,
	}
}

func (r *ReportsRoute) RegisterRouter(router gin.IRouter) {
	// called by the automation suite and by ops tooling without a user token
	router.POST("/report", r.uploadReport)
	trigger := router.Group("/trigger")
	trigger.GET("/get_prometheus", r.triggerCollect)
	trigger.GET("/update_coverage", r.triggerReconcile)

	router.GET("/coverage/summary", r.authHandler.WithUserAuthChain(r.summary)...)
	router.GET("/coverage/export", r.authHandler.WithUserAuthChain(r.exportWorkbook)...)
	router.GET("/gather-interfaces", r.authHandler.WithUserAuthChain(r.listGatherInterfaces)...)
	router.GET("/upload-interfaces", r.authHandler.WithUserAuthChain(r.listUploadInterfaces)...)
	router.GET("/transaction-logs", r.authHandler.WithUserAuthChain(r.listTransactionLogs)...)
}

// uploadReport godoc
// @Summary Report automated urls
// @Description Stores the reported urls that are new and not ignored, then refreshes coverage.
// @Tags Coverage API
// @Accept json
// @Produce json
// @Param request body reportreq.ReportRequest true "Report batch"
// @Success 200 {object} responses.MessageResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /report [post]
func (r *ReportsRoute) uploadReport(reqCtx *gin.Context) {
	var req reportreq.ReportRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid report body", "report-001")
		return
	}
	if _, err := r.handler.UploadReport(reqCtx.Request.Context(), req); err != nil {
		responses.HandleError(reqCtx, err, "Failed to ingest report")
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewMessage(uploadMessage))
}

// triggerCollect godoc
// @Summary Collect interfaces from Prometheus
// @Tags Trigger API
// @Produce json
// @Success 200 {object} responses.MessageResponse
// @Failure 502 {object} responses.ErrorResponse
// @Router /trigger/get_prometheus [get]
func (r *ReportsRoute) triggerCollect(reqCtx *gin.Context) {
	if _, err := r.handler.TriggerCollect(reqCtx.Request.Context()); err != nil {
		responses.HandleError(reqCtx, err, "Failed to query prometheus")
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewMessage(triggerMessage))
}

// triggerReconcile godoc
// @Summary Recompute coverage flags
// @Tags Trigger API
// @Produce json
// @Success 200 {object} responses.MessageResponse
// @Router /trigger/update_coverage [get]
func (r *ReportsRoute) triggerReconcile(reqCtx *gin.Context) {
	if _, err := r.handler.TriggerReconcile(reqCtx.Request.Context()); err != nil {
		responses.HandleError(reqCtx, err, "Failed to update coverage")
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewMessage(triggerMessage))
}

// summary godoc
// @Summary Coverage per project
// @Tags Coverage API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} coverage.CoverageSummary
// @Router /coverage/summary [get]
func (r *ReportsRoute) summary(reqCtx *gin.Context) {
	summary, err := r.handler.Summary(reqCtx.Request.Context())
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to summarize coverage")
		return
	}
	reqCtx.JSON(http.StatusOK, summary)
}

// exportWorkbook godoc
// @Summary Export coverage workbook
// @Tags Coverage API
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param project_id query int false "Only this project mapping"
// @Param covered query bool false "Only covered or uncovered interfaces"
// @Success 200 {file} file
// @Router /coverage/export [get]
func (r *ReportsRoute) exportWorkbook(reqCtx *gin.Context) {
	filter, ok := r.gatherFilter(reqCtx)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := r.handler.ExportWorkbook(reqCtx.Request.Context(), &buf, filter); err != nil {
		responses.HandleError(reqCtx, err, "Failed to export coverage")
		return
	}
	filename := fmt.Sprintf("coverage-%s.xlsx", time.Now().Format("20060102-150405"))
	reqCtx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	reqCtx.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// listGatherInterfaces godoc
// @Summary List gathered interfaces
// @Tags Coverage API
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param after query int false "Return rows after this id"
// @Param limit query int false "Row limit with after"
// @Param project_id query int false "Project mapping id"
// @Param covered query bool false "Covered flag"
// @Param q query string false "Search url"
// @Success 200 {object} responses.PageResponse[coverage.GatherInterface]
// @Router /gather-interfaces [get]
func (r *ReportsRoute) listGatherInterfaces(reqCtx *gin.Context) {
	pagination, err := requests.GetCursorPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process pagination")
		return
	}
	filter, ok := r.gatherFilter(reqCtx)
	if !ok {
		return
	}
	page, err := r.handler.ListGatherInterfaces(reqCtx.Request.Context(), filter, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list gathered interfaces")
		return
	}
	reqCtx.JSON(http.StatusOK, page)
}

// listUploadInterfaces godoc
// @Summary List uploaded interfaces
// @Tags Coverage API
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param name query string false "Upload group name"
// @Param q query string false "Search url"
// @Success 200 {object} responses.PageResponse[coverage.UploadInterface]
// @Router /upload-interfaces [get]
func (r *ReportsRoute) listUploadInterfaces(reqCtx *gin.Context) {
	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process pagination")
		return
	}
	filter := coverage.UploadFilter{
		Name:   requests.GetOptionalStringQuery(reqCtx, "name"),
		Search: requests.GetOptionalStringQuery(reqCtx, "q"),
	}
	page, err := r.handler.ListUploadInterfaces(reqCtx.Request.Context(), filter, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list uploaded interfaces")
		return
	}
	reqCtx.JSON(http.StatusOK, page)
}

// listTransactionLogs godoc
// @Summary List audit rows
// @Tags Coverage API
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param action query string false "upload, query or other_action"
// @Param name query string false "Service or group name"
// @Param batch_id query string false "Batch id"
// @Success 200 {object} responses.PageResponse[transactionlog.TransactionLog]
// @Router /transaction-logs [get]
func (r *ReportsRoute) listTransactionLogs(reqCtx *gin.Context) {
	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process pagination")
		return
	}
	pagination.Order = "desc"

	filter := transactionlog.TransactionLogFilter{
		Name:    requests.GetOptionalStringQuery(reqCtx, "name"),
		BatchID: requests.GetOptionalStringQuery(reqCtx, "batch_id"),
	}
	if raw := requests.GetOptionalStringQuery(reqCtx, "action"); raw != nil {
		action := transactionlog.Action(*raw)
		if !action.Valid() {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid action", "logs-001")
			return
		}
		filter.Action = &action
	}
	page, err := r.handler.ListTransactionLogs(reqCtx.Request.Context(), filter, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list transaction logs")
		return
	}
	reqCtx.JSON(http.StatusOK, page)
}

func (r *ReportsRoute) gatherFilter(reqCtx *gin.Context) (coverage.GatherFilter, bool) {
	projectID, err := requests.GetOptionalUintQuery(reqCtx, "project_id")
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid filter")
		return coverage.GatherFilter{}, false
	}
	covered, err := requests.GetOptionalBoolQuery(reqCtx, "covered")
	if err != nil {
		responses.HandleError(reqCtx, err, "Invalid filter")
		return coverage.GatherFilter{}, false
	}
	return coverage.GatherFilter{
		ProjectMappingID: projectID,
		IsActive:         covered,
		Search:           requests.GetOptionalStringQuery(reqCtx, "q"),
	}, true
}
