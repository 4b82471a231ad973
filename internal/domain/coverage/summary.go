package coverage

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

// ProjectCoverage is the coverage of one mapped service.
type ProjectCoverage struct {
	ProjectMappingID uint            `json:"project_name_mapping_id"`
	EurekaName       string          `json:"eureka_name"`
	UploadName       string          `json:"upload_name"`
	Name             string          `json:"name"`
	Total            int64           `json:"total"`
	Covered          int64           `json:"covered"`
	Percentage       decimal.Decimal `json:"percentage"`
}

type CoverageSummary struct {
	Projects   []ProjectCoverage `json:"projects"`
	Total      int64             `json:"total"`
	Covered    int64             `json:"covered"`
	Percentage decimal.Decimal   `json:"percentage"`
}

// Percentage returns covered/total as a percentage rounded to two places.
func Percentage(covered, total int64) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(covered).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(total), 2)
}

// CoverageService serves the read side: summaries, listings and export rows.
type CoverageService struct {
	gathers GatherInterfaceRepository
	uploads UploadInterfaceRepository
}

func NewCoverageService(gathers GatherInterfaceRepository, uploads UploadInterfaceRepository) *CoverageService {
	return &CoverageService{gathers: gathers, uploads: uploads}
}

func (s *CoverageService) Summary(ctx context.Context) (*CoverageSummary, error) {
	counts, err := s.gathers.CountByProject(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to summarize coverage")
	}

	summary := &CoverageSummary{Projects: make([]ProjectCoverage, 0, len(counts))}
	for _, c := range counts {
		summary.Projects = append(summary.Projects, ProjectCoverage{
			ProjectMappingID: c.ProjectMappingID,
			EurekaName:       c.EurekaName,
			UploadName:       c.UploadName,
			Name:             c.Name,
			Total:            c.Total,
			Covered:          c.Covered,
			Percentage:       Percentage(c.Covered, c.Total),
		})
		summary.Total += c.Total
		summary.Covered += c.Covered
	}
	summary.Percentage = Percentage(summary.Covered, summary.Total)
	return summary, nil
}

func (s *CoverageService) ListGatherInterfaces(ctx context.Context, filter GatherFilter, pagination *query.Pagination) ([]*GatherInterface, int64, error) {
	items, total, err := s.gathers.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list gathered interfaces")
	}
	return items, total, nil
}

func (s *CoverageService) ListUploadInterfaces(ctx context.Context, filter UploadFilter, pagination *query.Pagination) ([]*UploadInterface, int64, error) {
	items, total, err := s.uploads.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list uploaded interfaces")
	}
	return items, total, nil
}

func (s *CoverageService) CoverageRows(ctx context.Context, filter GatherFilter) ([]CoverageRow, error) {
	rows, err := s.gathers.ListCoverageRows(ctx, filter)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load coverage rows")
	}
	return rows, nil
}
