package coveragerepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xdd7520/QualityStar/internal/domain/coverage"
	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/dbschema"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/paging"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/transaction"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

const createBatchSize = 200

type GatherInterfaceGormRepository struct {
	db *transaction.Database
}

var _ coverage.GatherInterfaceRepository = (*GatherInterfaceGormRepository)(nil)

func NewGatherInterfaceGormRepository(db *transaction.Database) coverage.GatherInterfaceRepository {
	return &GatherInterfaceGormRepository{db: db}
}

// Exists implements coverage.GatherInterfaceRepository.
func (repo *GatherInterfaceGormRepository) Exists(ctx context.Context, key coverage.GatherKey) (bool, error) {
	var count int64
	err := repo.db.GetTx(ctx).Model(&dbschema.GatherInterface{}).
		Where("project_name_mapping_id = ? AND url = ? AND method = ?", key.ProjectMappingID, key.URL, key.Method).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, platformerrors.FromGormError(ctx, err, "failed to check gathered interface", "gather-repo-001")
	}
	return count > 0, nil
}

// CreateBatch implements coverage.GatherInterfaceRepository.
func (repo *GatherInterfaceGormRepository) CreateBatch(ctx context.Context, interfaces []*coverage.GatherInterface) error {
	if len(interfaces) == 0 {
		return nil
	}
	models := make([]*dbschema.GatherInterface, len(interfaces))
	for i, g := range interfaces {
		models[i] = dbschema.GatherInterfaceDtoE(g)
	}
	if err := repo.db.GetTx(ctx).CreateInBatches(&models, createBatchSize).Error; err != nil {
		return platformerrors.FromGormError(ctx, err, "failed to save gathered interfaces", "gather-repo-002")
	}
	for i, m := range models {
		interfaces[i].ID = m.ID
		interfaces[i].CreatedAt = m.CreatedAt
		interfaces[i].UpdatedAt = m.UpdatedAt
	}
	return nil
}

func applyGatherFilter(db *gorm.DB, filter coverage.GatherFilter, prefix string) *gorm.DB {
	if filter.ProjectMappingID != nil {
		db = db.Where(prefix+"project_name_mapping_id = ?", *filter.ProjectMappingID)
	}
	if filter.IsActive != nil {
		db = db.Where(prefix+"is_active = ?", *filter.IsActive)
	}
	if filter.Search != nil && *filter.Search != "" {
		db = db.Where(prefix+"url LIKE ?", "%"+*filter.Search+"%")
	}
	return db
}

// FindByFilter implements coverage.GatherInterfaceRepository.
func (repo *GatherInterfaceGormRepository) FindByFilter(ctx context.Context, filter coverage.GatherFilter, pagination *query.Pagination) ([]*coverage.GatherInterface, int64, error) {
	base := applyGatherFilter(repo.db.GetTx(ctx).Model(&dbschema.GatherInterface{}), filter, "")
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.FromGormError(ctx, err, "failed to count gathered interfaces", "gather-repo-003")
	}

	var rows []dbschema.GatherInterface
	if err := paging.Apply(base, pagination).Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.FromGormError(ctx, err, "failed to list gathered interfaces", "gather-repo-004")
	}
	result := make([]*coverage.GatherInterface, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}
	return result, total, nil
}

// MarkCovered implements coverage.GatherInterfaceRepository with one UPDATE ... WHERE EXISTS.
func (repo *GatherInterfaceGormRepository) MarkCovered(ctx context.Context) (int64, error) {
	tx := repo.db.GetTx(ctx)

	matches := tx.Table("upload_interface AS u").
		Select("1").
		Joins("JOIN project_name_mapping AS p ON p.upload_name = u.name").
		Where("p.upload_name <> ''").
		Where("p.id = gather_interface.project_name_mapping_id").
		Where("u.url = gather_interface.url AND u.method = gather_interface.method")

	res := tx.Model(&dbschema.GatherInterface{}).
		Where("is_active = ?", false).
		Where("EXISTS (?)", matches).
		Updates(map[string]interface{}{
			"is_active":  true,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, platformerrors.FromGormError(ctx, res.Error, "failed to mark covered interfaces", "gather-repo-005")
	}
	return res.RowsAffected, nil
}

// CountByProject implements coverage.GatherInterfaceRepository.
func (repo *GatherInterfaceGormRepository) CountByProject(ctx context.Context) ([]coverage.ProjectCoverageCount, error) {
	var counts []coverage.ProjectCoverageCount
	err := repo.db.GetTx(ctx).
		Table("project_name_mapping AS p").
		Select(`p.id AS project_mapping_id, p.eureka_name, p.upload_name, p.name,
			COUNT(g.id) AS total,
			SUM(CASE WHEN g.is_active THEN 1 ELSE 0 END) AS covered`).
		Joins("JOIN gather_interface AS g ON g.project_name_mapping_id = p.id").
		Group("p.id, p.eureka_name, p.upload_name, p.name").
		Order("p.eureka_name ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, platformerrors.FromGormError(ctx, err, "failed to count coverage", "gather-repo-006")
	}
	return counts, nil
}

// ListCoverageRows implements coverage.GatherInterfaceRepository.
func (repo *GatherInterfaceGormRepository) ListCoverageRows(ctx context.Context, filter coverage.GatherFilter) ([]coverage.CoverageRow, error) {
	var rows []coverage.CoverageRow
	q := repo.db.GetTx(ctx).
		Table("gather_interface AS g").
		Select("p.eureka_name, p.name, g.url, g.method, g.is_active AS covered").
		Joins("JOIN project_name_mapping AS p ON p.id = g.project_name_mapping_id")
	err := applyGatherFilter(q, filter, "g.").
		Order("p.eureka_name ASC, g.url ASC, g.method ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, platformerrors.FromGormError(ctx, err, "failed to list coverage rows", "gather-repo-007")
	}
	return rows, nil
}
