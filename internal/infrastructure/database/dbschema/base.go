package dbschema

import "time"

// BaseModel is embedded by tables keyed by an auto-increment id.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
