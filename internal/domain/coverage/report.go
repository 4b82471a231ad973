package coverage

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xdd7520/QualityStar/internal/domain/transactionlog"
	"github.com/xdd7520/QualityStar/internal/infrastructure/logger"
	"github.com/xdd7520/QualityStar/internal/infrastructure/metrics"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

// DedupScope selects how repeated urls inside one report batch are collapsed.
type DedupScope string

const (
	// DedupByURL keeps only the first occurrence of a url across all groups of the batch.
	DedupByURL DedupScope = "url"
	// DedupByGroup keeps the first occurrence of a url per group name.
	DedupByGroup DedupScope = "group"
)

type ReportURL struct {
	URL         string
	Method      string
	Description string
}

type ReportGroup struct {
	Name    string
	BaseURL string
	URLs    []ReportURL
}

// Report is one batch sent by the automation tool.
type Report struct {
	BaseURL string
	Groups  []ReportGroup
}

// IngestResult summarizes one report batch.
type IngestResult struct {
	BatchID         string         `json:"batch_id"`
	Received        int            `json:"received"`
	Created         int            `json:"created"`
	SkippedRepeated int            `json:"skipped_repeated"`
	SkippedIgnored  int            `json:"skipped_ignored"`
	SkippedExisting int            `json:"skipped_existing"`
	PerGroup        map[string]int `json:"per_group"`
	Reconciled      int64          `json:"reconciled"`
}

type ReportSettings struct {
	DedupScope DedupScope
}

// ReportService ingests covered urls and reconciles coverage afterwards.
type ReportService struct {
	ignores    IgnoreListLoader
	uploads    UploadInterfaceRepository
	logs       transactionlog.TransactionLogRepository
	uow        UnitOfWork
	locker     Locker
	reconciler *ReconcilerService
	settings   ReportSettings
}

func NewReportService(
	ignores IgnoreListLoader,
	uploads UploadInterfaceRepository,
	logs transactionlog.TransactionLogRepository,
	uow UnitOfWork,
	locker Locker,
	reconciler *ReconcilerService,
	settings ReportSettings,
) *ReportService {
	if settings.DedupScope == "" {
		settings.DedupScope = DedupByURL
	}
	return &ReportService{
		ignores:    ignores,
		uploads:    uploads,
		logs:       logs,
		uow:        uow,
		locker:     locker,
		reconciler: reconciler,
		settings:   settings,
	}
}

func (s *ReportService) dedupKey(groupName, url string) string {
	if s.settings.DedupScope == DedupByGroup {
		return groupName + "\x00" + url
	}
	return url
}

// UploadURIs stores the urls of report that are new, not ignored and not repeated within the batch,
// writes one audit row per group that gained rows, then runs the reconciler.
func (s *ReportService) UploadURIs(ctx context.Context, report *Report) (*IngestResult, error) {
	log := logger.GetLogger()

	lock, err := s.locker.Obtain(ctx, LockKeyReport)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "another report is being ingested")
	}
	defer func() {
		if releaseErr := lock.Release(context.WithoutCancel(ctx)); releaseErr != nil {
			log.Warn().Err(releaseErr).Msg("failed to release report lock")
		}
	}()

	matcher, err := s.ignores.LoadMatcher(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load ignore list")
	}

	result := &IngestResult{
		BatchID:  uuid.NewString(),
		PerGroup: map[string]int{},
	}

	var (
		staged []*UploadInterface
		groups []string
		seen   = make(map[string]struct{})
	)
	for _, group := range report.Groups {
		name := strings.TrimSpace(group.Name)
		for _, item := range group.URLs {
			result.Received++
			url := strings.TrimSpace(item.URL)
			if url == "" {
				continue
			}

			key := s.dedupKey(name, url)
			if _, dup := seen[key]; dup {
				result.SkippedRepeated++
				continue
			}
			seen[key] = struct{}{}

			if matcher.Matches(url) {
				result.SkippedIgnored++
				continue
			}

			exists, err := s.uploads.Exists(ctx, url, name)
			if err != nil {
				return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check uploaded interface")
			}
			if exists {
				result.SkippedExisting++
				continue
			}

			staged = append(staged, &UploadInterface{
				URL:         url,
				Name:        name,
				Method:      NormalizeMethod(item.Method),
				Description: item.Description,
				IsActive:    true,
			})
			if result.PerGroup[name] == 0 {
				groups = append(groups, name)
			}
			result.PerGroup[name]++
		}
	}

	if len(staged) > 0 {
		now := time.Now().UTC()
		err = s.uow.WithTx(ctx, func(txCtx context.Context) error {
			if err := s.uploads.CreateBatch(txCtx, staged); err != nil {
				return err
			}
			return s.logs.CreateBatch(txCtx, transactionlog.NewBatchLogs(transactionlog.ActionUpload, result.BatchID, groups, result.PerGroup, now))
		})
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to save uploaded interfaces")
		}
		result.Created = len(staged)
		metrics.RecordUploads(result.Created)
	}

	reconciled, err := s.reconciler.UpdateCoverage(ctx)
	if err != nil {
		return nil, err
	}
	result.Reconciled = reconciled

	log.Info().
		Str("batch_id", result.BatchID).
		Int("received", result.Received).
		Int("created", result.Created).
		Int("ignored", result.SkippedIgnored).
		Int64("reconciled", result.Reconciled).
		Msg("report ingested")
	return result, nil
}
