package transactionlog

import (
	"context"
	"fmt"
	"time"

	"github.com/xdd7520/QualityStar/internal/domain/query"
	"github.com/xdd7520/QualityStar/internal/utils/platformerrors"
)

type Action string

const (
	ActionUpload Action = "upload"
	ActionQuery  Action = "query"
	ActionOther  Action = "other_action"
)

func (a Action) Valid() bool {
	switch a {
	case ActionUpload, ActionQuery, ActionOther:
		return true
	}
	return false
}

// TransactionLog is one audit row per service name touched by a batch.
type TransactionLog struct {
	ID         uint      `json:"id"`
	ActionTime time.Time `json:"action_time"`
	Action     Action    `json:"action"`
	Details    string    `json:"details"`
	Name       string    `json:"name"`
	Count      int       `json:"count"`
	BatchID    string    `json:"batch_id"`
}

type TransactionLogFilter struct {
	Action  *Action
	Name    *string
	BatchID *string
}

type TransactionLogRepository interface {
	CreateBatch(ctx context.Context, logs []*TransactionLog) error
	FindByFilter(ctx context.Context, filter TransactionLogFilter, pagination *query.Pagination) ([]*TransactionLog, int64, error)
}

// NewBatchLogs builds one log row per name with a positive count. Names are emitted in the order given.
func NewBatchLogs(action Action, batchID string, names []string, counts map[string]int, at time.Time) []*TransactionLog {
	logs := make([]*TransactionLog, 0, len(names))
	for _, name := range names {
		count := counts[name]
		if count <= 0 {
			continue
		}
		logs = append(logs, &TransactionLog{
			ActionTime: at,
			Action:     action,
			Details:    fmt.Sprintf("service %s: %d new records", name, count),
			Name:       name,
			Count:      count,
			BatchID:    batchID,
		})
	}
	return logs
}

type TransactionLogService struct {
	repo TransactionLogRepository
}

func NewTransactionLogService(repo TransactionLogRepository) *TransactionLogService {
	return &TransactionLogService{repo: repo}
}

func (s *TransactionLogService) ListTransactionLogs(ctx context.Context, filter TransactionLogFilter, pagination *query.Pagination) ([]*TransactionLog, int64, error) {
	if filter.Action != nil && !filter.Action.Valid() {
		return nil, 0, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "unknown action", nil, "txlog-list-001")
	}
	logs, total, err := s.repo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list transaction logs")
	}
	return logs, total, nil
}
