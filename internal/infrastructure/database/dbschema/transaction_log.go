package dbschema

import (
	"time"

	"github.com/xdd7520/QualityStar/internal/domain/transactionlog"
	"github.com/xdd7520/QualityStar/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(TransactionLog{})
}

// TransactionLog is append-only, so it carries no updated_at.
type TransactionLog struct {
	ID         uint      `gorm:"primaryKey"`
	ActionTime time.Time `gorm:"not null;index:idx_transaction_log_action,priority:2"`
	Action     string    `gorm:"size:32;not null;index:idx_transaction_log_action,priority:1"`
	Details    string    `gorm:"type:text;not null;default:''"`
	Name       string    `gorm:"size:255;not null"`
	Count      int       `gorm:"not null;default:0"`
	BatchID    string    `gorm:"size:64;not null;index"`
}

func (TransactionLog) TableName() string {
	return "transaction_log"
}

func (t *TransactionLog) EtoD() *transactionlog.TransactionLog {
	return &transactionlog.TransactionLog{
		ID:         t.ID,
		ActionTime: t.ActionTime,
		Action:     transactionlog.Action(t.Action),
		Details:    t.Details,
		Name:       t.Name,
		Count:      t.Count,
		BatchID:    t.BatchID,
	}
}

func TransactionLogDtoE(t *transactionlog.TransactionLog) *TransactionLog {
	return &TransactionLog{
		ID:         t.ID,
		ActionTime: t.ActionTime,
		Action:     string(t.Action),
		Details:    t.Details,
		Name:       t.Name,
		Count:      t.Count,
		BatchID:    t.BatchID,
	}
}
