package transactionlogrepo

import (
	"context"

	"gorm.io/gorm"

	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/domain/transactionlog"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/dbschema"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/paging"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database/transaction"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type TransactionLogGormRepository struct {
	db *transaction.Database
}

var _ transactionlog.TransactionLogRepository = (*TransactionLogGormRepository)(nil)

func NewTransactionLogGormRepository(db *transaction.Database) transactionlog.TransactionLogRepository {
	return &TransactionLogGormRepository{db: db}
}

// CreateBatch implements transactionlog.TransactionLogRepository.
func (repo *TransactionLogGormRepository) CreateBatch(ctx context.Context, logs []*transactionlog.TransactionLog) error {
	if len(logs) == 0 {
		return nil
	}
	models := make([]*dbschema.TransactionLog, len(logs))
	for i, l := range logs {
		models[i] = dbschema.TransactionLogDtoE(l)
	}
	if err := repo.db.GetTx(ctx).Create(&models).Error; err != nil {
		return platformerrors.FromGormError(ctx, err, "failed to write transaction logs", "txlog-repo-001")
	}
	for i, m := range models {
		logs[i].ID = m.ID
	}
	return nil
}

// FindByFilter lists newest first unless the pagination asks otherwise.
func (repo *TransactionLogGormRepository) FindByFilter(ctx context.Context, filter transactionlog.TransactionLogFilter, pagination *query.Pagination) ([]*transactionlog.TransactionLog, int64, error) {
	base := repo.db.GetTx(ctx).Model(&dbschema.TransactionLog{})
	if filter.Action != nil {
		base = base.Where("action = ?", string(*filter.Action))
	}
	if filter.Name != nil {
		base = base.Where("name = ?", *filter.Name)
	}
	if filter.BatchID != nil {
		base = base.Where("batch_id = ?", *filter.BatchID)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.FromGormError(ctx, err, "failed to count transaction logs", "txlog-repo-002")
	}

	if pagination == nil {
		pagination = &query.Pagination{Order: "desc"}
	}
	var rows []dbschema.TransactionLog
	if err := paging.Apply(base, pagination).Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.FromGormError(ctx, err, "failed to list transaction logs", "txlog-repo-003")
	}
	result := make([]*transactionlog.TransactionLog, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}
	return result, total, nil
}
