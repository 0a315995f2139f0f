package option

import (
	"strings"

	"gorm.io/gorm"
)

// QueryOption mutates a gorm statement before execution.
type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type optionFunc func(*gorm.DB) *gorm.DB

func (f optionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

// WithSortBy applies an ORDER BY clause. An empty clause is a no-op.
func WithSortBy(clause string) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if strings.TrimSpace(clause) == "" {
			return db
		}
		return db.Order(clause)
	})
}

// WithQuerySortBy builds an ORDER BY clause from request parameters,
// admitting only allow-listed columns. Defaults to created_at DESC.
func WithQuerySortBy(sortBy, orderBy string, allowed map[string]bool) string {
	column := strings.ToLower(strings.TrimSpace(sortBy))
	if column == "" || !allowed[column] {
		column = "created_at"
	}

	direction := strings.ToUpper(strings.TrimSpace(orderBy))
	if direction != "ASC" && direction != "DESC" {
		direction = "DESC"
	}
	return column + " " + direction
}

// WithLimit caps the result set. Non-positive limits are ignored.
func WithLimit(limit int) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	})
}
