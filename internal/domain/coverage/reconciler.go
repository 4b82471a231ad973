package coverage

import (
	"context"

	"github.com/xdd7520/QualityStar/internal/infrastructure/logger"
	"github.com/xdd7520/QualityStar/internal/infrastructure/metrics"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type ReconcilerService struct {
	gathers GatherInterfaceRepository
}

func NewReconcilerService(gathers GatherInterfaceRepository) *ReconcilerService {
	return &ReconcilerService{gathers: gathers}
}

// UpdateCoverage marks every gathered interface that has a matching upload as covered.
// Rows without a match are left as they are.
func (s *ReconcilerService) UpdateCoverage(ctx context.Context) (int64, error) {
	changed, err := s.gathers.MarkCovered(ctx)
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update coverage")
	}
	metrics.RecordReconciled(changed)
	log := logger.GetLogger()
	log.Info().Int64("covered", changed).Msg("coverage updated")
	return changed, nil
}
