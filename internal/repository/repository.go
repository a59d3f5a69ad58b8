// Package repository is the store-access layer. It owns every transaction
// and every atomic counter update; handlers above it never touch gorm
// directly. All mutating operations take a context so request cancellation
// rolls the open transaction back.
package repository

import (
	"errors"
	"math"

	"emberlink/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SortBy string

const (
	SortByPoints SortBy = "points"
	SortByRecent SortBy = "recent"
)

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ListParams is the common pagination/sort contract for posts and comments.
// Page and Limit are 1-based; out-of-range pages yield empty items, not an
// error. ViewerID, when set, requests vote-state annotation for that user.
type ListParams struct {
	SortBy   SortBy
	Order    Order
	Page     int
	Limit    int
	ViewerID string
}

func (p ListParams) normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

func (p ListParams) offset() int {
	return (p.Page - 1) * p.Limit
}

// orderClause maps the sort contract onto whitelisted columns. Ties fall
// back to the store's natural row order; that order is not guaranteed stable
// across pages, which is a documented limitation.
func (p ListParams) orderClause() string {
	column := "created_at"
	if p.SortBy == SortByPoints {
		column = "points"
	}
	direction := "DESC"
	if p.Order == OrderAsc {
		direction = "ASC"
	}
	return column + " " + direction
}

func totalPages(count int64, limit int) int {
	return int(math.Ceil(float64(count) / float64(limit)))
}

func pagination(p ListParams, count int64) models.Pagination {
	return models.Pagination{Page: p.Page, TotalPages: totalPages(count, p.Limit)}
}

// forUpdate row-locks the upcoming read on stores that support it. sqlite
// allows a single writer at a time, so the transaction itself already
// serializes the read-then-branch sequence there.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// incrementCounter applies `column = column + delta` as a single column-level
// expression and reads the new value back. Returns gorm.ErrRecordNotFound if
// the subject row vanished, so callers can translate and roll back.
func incrementCounter(tx *gorm.DB, model interface{}, id uint, column string, delta int) (int, error) {
	result := tx.Model(model).Where("id = ?", id).
		Update(column, gorm.Expr(column+" + ?", delta))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var value int
	err := tx.Model(model).Where("id = ?", id).Select(column).Scan(&value).Error
	return value, err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
