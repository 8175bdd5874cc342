package pagination

import (
	"github.com/estantedev/estante/pkg/errors"
)

// PagedResult carries one page of data plus row/page accounting computed
// against the full filtered set, not just the returned page.
type PagedResult[T any] struct {
	Data        []T   `json:"data"`
	CurrentPage int   `json:"page"`
	PageSize    int   `json:"pageSize"`
	RowCount    int64 `json:"rowCount"`
	PageCount   int   `json:"pageCount"`
}

// NewPagedResult builds a PagedResult. An empty filtered set yields
// PageCount 0, not 1.
func NewPagedResult[T any](data []T, page, pageSize int, rowCount int64) PagedResult[T] {
	if data == nil {
		data = []T{}
	}
	return PagedResult[T]{
		Data:        data,
		CurrentPage: page,
		PageSize:    pageSize,
		RowCount:    rowCount,
		PageCount:   pageCount(rowCount, pageSize),
	}
}

// Validate rejects non-positive page or page size.
func Validate(page, pageSize int) error {
	if page < 1 {
		return errors.Argument("page must be greater than zero")
	}
	if pageSize < 1 {
		return errors.Argument("page size must be greater than zero")
	}
	return nil
}

// Offset returns the row offset for a 1-based page.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

func pageCount(rowCount int64, pageSize int) int {
	if rowCount == 0 || pageSize < 1 {
		return 0
	}
	return int((rowCount + int64(pageSize) - 1) / int64(pageSize))
}
