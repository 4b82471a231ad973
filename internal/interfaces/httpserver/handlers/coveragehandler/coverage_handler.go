package coveragehandler

import (
	"context"
	"io"

	"github.com/xdd7520/QualityStar/internal/domain/coverage"
	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/domain/transactionlog"
	"github.com/xdd7520/QualityStar/internal/infrastructure/export"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/requests/reportreq"
	"github.com/xdd7520/QualityStar/internal/interfaces/httpserver/responses"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

// CoverageHandler serves ingestion, manual triggers and the coverage read side.
type CoverageHandler struct {
	collector       *coverage.CollectorService
	reconciler      *coverage.ReconcilerService
	reports         *coverage.ReportService
	coverageService *coverage.CoverageService
	logService      *transactionlog.TransactionLogService
}

func NewCoverageHandler(
	collector *coverage.CollectorService,
	reconciler *coverage.ReconcilerService,
	reports *coverage.ReportService,
	coverageService *coverage.CoverageService,
	logService *transactionlog.TransactionLogService,
) *CoverageHandler {
	return &CoverageHandler{
		collector:       collector,
		reconciler:      reconciler,
		reports:         reports,
		coverageService: coverageService,
		logService:      logService,
	}
}

func (h *CoverageHandler) UploadReport(ctx context.Context, req reportreq.ReportRequest) (*coverage.IngestResult, error) {
	return h.reports.UploadURIs(ctx, req.ToReport())
}

func (h *CoverageHandler) TriggerCollect(ctx context.Context) (*coverage.CollectResult, error) {
	return h.collector.QueryPrometheus(ctx)
}

func (h *CoverageHandler) TriggerReconcile(ctx context.Context) (int64, error) {
	return h.reconciler.UpdateCoverage(ctx)
}

func (h *CoverageHandler) Summary(ctx context.Context) (*coverage.CoverageSummary, error) {
	return h.coverageService.Summary(ctx)
}

func (h *CoverageHandler) ListGatherInterfaces(ctx context.Context, filter coverage.GatherFilter, pagination *query.Pagination) (*responses.PageResponse[*coverage.GatherInterface], error) {
	rows, total, err := h.coverageService.ListGatherInterfaces(ctx, filter, pagination)
	if err != nil {
		return nil, err
	}
	page := responses.NewPageResponse(rows, total, pagination)
	return &page, nil
}

func (h *CoverageHandler) ListUploadInterfaces(ctx context.Context, filter coverage.UploadFilter, pagination *query.Pagination) (*responses.PageResponse[*coverage.UploadInterface], error) {
	rows, total, err := h.coverageService.ListUploadInterfaces(ctx, filter, pagination)
	if err != nil {
		return nil, err
	}
	page := responses.NewPageResponse(rows, total, pagination)
	return &page, nil
}

func (h *CoverageHandler) ListTransactionLogs(ctx context.Context, filter transactionlog.TransactionLogFilter, pagination *query.Pagination) (*responses.PageResponse[*transactionlog.TransactionLog], error) {
	logs, total, err := h.logService.ListTransactionLogs(ctx, filter, pagination)
	if err != nil {
		return nil, err
	}
	page := responses.NewPageResponse(logs, total, pagination)
	return &page, nil
}

// ExportWorkbook writes the summary and the per-interface rows matching filter as xlsx to w.
func (h *CoverageHandler) ExportWorkbook(ctx context.Context, w io.Writer, filter coverage.GatherFilter) error {
	summary, err := h.coverageService.Summary(ctx)
	if err != nil {
		return err
	}
	rows, err := h.coverageService.CoverageRows(ctx, filter)
	if err != nil {
		return err
	}
	if err := export.WriteCoverageWorkbook(w, summary, rows); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeInternal, "failed to render workbook", err, "coverage-export-001")
	}
	return nil
}
