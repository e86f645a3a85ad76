package repository

import (
	"context"

	"extraction-api/internal/domain/entity"
)

// Date range keywords accepted by Filter.DateRange. Each is a rolling window
// relative to request time; "month" means the trailing 30 days, not a
// calendar month.
const (
	RangeToday = "today"
	RangeWeek  = "week"
	RangeMonth = "month"
)

// Filter narrows a listing. Zero values match everything; set fields are
// combined with AND.
type Filter struct {
	Search    string // case-insensitive substring match on filename
	DateRange string // "", "today", "week" or "month"
}

// Page selects a bounded slice of the ordered result set. Number is 1-based.
type Page struct {
	Number  int
	PerPage int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

type ExtractionRepository interface {
	Create(ctx context.Context, ext *entity.Extraction) error
	Get(ctx context.Context, id int64) (*entity.Extraction, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
	List(ctx context.Context, f Filter, p Page) ([]entity.Extraction, int64, error)
	ListAll(ctx context.Context, f Filter) ([]entity.Extraction, error)
	Metrics(ctx context.Context) (*entity.Metrics, error)
}
