package paging

import (
	"gorm.io/gorm"

	"github.com/xdd7520/QualityStar/internal/domain/query"
)

// Apply adds cursor, ordering and window clauses for p. Rows are ordered by id.
func Apply(db *gorm.DB, p *query.Pagination) *gorm.DB {
	return ApplyOrdered(db, p, "id")
}

// ApplyOrdered is Apply with a custom sort column. The After cursor always compares ids.
func ApplyOrdered(db *gorm.DB, p *query.Pagination, column string) *gorm.DB {
	if p == nil {
		return db.Order(column + " ASC")
	}

	desc := p.Order == "desc"
	if p.After != nil {
		if desc {
			db = db.Where("id < ?", *p.After)
		} else {
			db = db.Where("id > ?", *p.After)
		}
	}
	if desc {
		db = db.Order(column + " DESC")
	} else {
		db = db.Order(column + " ASC")
	}

	if p.Limit != nil && *p.Limit > 0 {
		db = db.Limit(*p.Limit)
	}
	if p.Offset != nil && *p.Offset > 0 {
		db = db.Offset(*p.Offset)
	}
	return db
}
