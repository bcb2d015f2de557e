package dto

import (
	"math"

	"github.com/google/uuid"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// PageQuery is the page/limit pair accepted by list endpoints.
type PageQuery struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Normalize applies defaults and caps the limit.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

// Offset is the number of rows to skip.
func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Pagination describes one page of a list.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes the page count for total rows.
func NewPagination(total int64, q PageQuery) Pagination {
	return Pagination{
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(q.Limit))),
	}
}

// Page is a slice of rows plus its pagination.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// CropFilter narrows a crop listing by equality.
type CropFilter struct {
	Season string
	Status string
	Year   *int
}

// ExpenseFilter narrows an expense listing by equality.
type ExpenseFilter struct {
	CropID   *uuid.UUID
	Category string
}

// IncomeFilter narrows an income listing. Year matches the calendar year of
// the income date.
type IncomeFilter struct {
	Year     *int
	Category string
	CropID   *uuid.UUID
}
