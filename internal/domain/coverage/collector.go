package coverage

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xdd7520/QualityStar/internal/domain/projectmapping"
	"github.com/xdd7520/QualityStar/internal/domain/transactionlog"
	"github.com/xdd7520/QualityStar/internal/infrastructure/logger"
	"github.com/xdd7520/QualityStar/internal/infrastructure/metrics"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type CollectorSettings struct {
	Query     string
	URIPrefix string
}

// CollectResult summarizes one collector run.
type CollectResult struct {
	BatchID       string         `json:"batch_id"`
	Samples       int            `json:"samples"`
	NewInterfaces int            `json:"new_interfaces"`
	NewMappings   int            `json:"new_mappings"`
	PerService    map[string]int `json:"per_service"`
}

// CollectorService discovers interfaces from the metrics backend.
type CollectorService struct {
	source   MetricSource
	mappings MappingResolver
	gathers  GatherInterfaceRepository
	logs     transactionlog.TransactionLogRepository
	uow      UnitOfWork
	locker   Locker
	settings CollectorSettings
}

func NewCollectorService(
	source MetricSource,
	mappings MappingResolver,
	gathers GatherInterfaceRepository,
	logs transactionlog.TransactionLogRepository,
	uow UnitOfWork,
	locker Locker,
	settings CollectorSettings,
) *CollectorService {
	return &CollectorService{
		source:   source,
		mappings: mappings,
		gathers:  gathers,
		logs:     logs,
		uow:      uow,
		locker:   locker,
		settings: settings,
	}
}

// QueryPrometheus pulls the request counter series, stages every (service, uri, method) not seen before
// and saves the batch with one audit row per service. A failed fetch saves nothing.
func (s *CollectorService) QueryPrometheus(ctx context.Context) (result *CollectResult, err error) {
	log := logger.GetLogger()
	defer func() {
		created := 0
		if result != nil {
			created = result.NewInterfaces
		}
		metrics.RecordCollectorRun(created, err)
	}()

	lock, err := s.locker.Obtain(ctx, LockKeyCollect)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "collector is already running")
	}
	defer func() {
		if releaseErr := lock.Release(context.WithoutCancel(ctx)); releaseErr != nil {
			log.Warn().Err(releaseErr).Msg("failed to release collector lock")
		}
	}()

	samples, err := s.source.Query(ctx, s.settings.Query)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to query metrics backend")
	}

	result = &CollectResult{
		BatchID:    uuid.NewString(),
		Samples:    len(samples),
		PerService: map[string]int{},
	}

	var (
		staged   []*GatherInterface
		services []string
		seen     = make(map[GatherKey]struct{})
	)
	for _, sample := range samples {
		if !strings.HasPrefix(sample.URI, s.settings.URIPrefix) {
			continue
		}
		service := projectmapping.NormalizeEurekaName(sample.Application)
		if service == "" {
			log.Debug().Str("uri", sample.URI).Str("method", sample.Method).Msg("skipping sample without application label")
			continue
		}

		mapping, created, err := s.mappings.ResolveByEurekaName(ctx, service)
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to resolve project mapping")
		}
		if created {
			result.NewMappings++
		}

		key := GatherKey{ProjectMappingID: mapping.ID, URL: sample.URI, Method: NormalizeMethod(sample.Method)}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		exists, err := s.gathers.Exists(ctx, key)
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check gathered interface")
		}
		if exists {
			continue
		}

		staged = append(staged, &GatherInterface{
			URL:              key.URL,
			ProjectMappingID: key.ProjectMappingID,
			Method:           key.Method,
			IsActive:         false,
			Labels:           sample.Labels,
		})
		if result.PerService[service] == 0 {
			services = append(services, service)
		}
		result.PerService[service]++
	}

	if len(staged) == 0 {
		log.Info().Int("samples", result.Samples).Msg("collector found no new interfaces")
		return result, nil
	}

	now := time.Now().UTC()
	err = s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.gathers.CreateBatch(txCtx, staged); err != nil {
			return err
		}
		return s.logs.CreateBatch(txCtx, transactionlog.NewBatchLogs(transactionlog.ActionQuery, result.BatchID, services, result.PerService, now))
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to save gathered interfaces")
	}
	result.NewInterfaces = len(staged)

	log.Info().
		Str("batch_id", result.BatchID).
		Int("samples", result.Samples).
		Int("new_interfaces", result.NewInterfaces).
		Int("new_mappings", result.NewMappings).
		Msg("collector run finished")
	return result, nil
}
