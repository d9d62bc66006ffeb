package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PageMeta describes where a page sits in the full result set.
type PageMeta struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// Page is one page of results of any type.
type Page[T any] struct {
	Items []T
	Meta  PageMeta
}

// NewPage creates a Page, normalising a non-positive limit to 1.
func NewPage[T any](items []T, totalItems int64, page, limit int) *Page[T] {
	if limit <= 0 {
		limit = 1
	}
	return &Page[T]{
		Items: items,
		Meta: PageMeta{
			TotalItems:  totalItems,
			TotalPages:  (int(totalItems) + limit - 1) / limit,
			CurrentPage: page,
			PageSize:    limit,
		},
	}
}

// Paginate counts the rows matched by db, then fetches the requested page.
// Pages are 1-based; values below 1 select the first page.
func Paginate[T any](db *gorm.DB, page, limit int) (*Page[T], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	db = db.Session(&gorm.Session{})

	var totalItems int64
	if err := db.Model(new(T)).Count(&totalItems).Error; err != nil {
		return nil, errors.Wrap(err, "count failed")
	}

	results := make([]T, 0, limit)
	offset := (page - 1) * limit
	if err := db.Offset(offset).Limit(limit).Find(&results).Error; err != nil {
		return nil, errors.Wrap(err, "find page failed")
	}

	return NewPage(results, totalItems, page, limit), nil
}
