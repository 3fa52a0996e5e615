// Package pagination holds the page arithmetic shared by every listing
// operation.
package pagination

type Params struct {
	Page  int
	Limit int
}

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// Normalize clamps the parameters to sane values, applying the defaults for
// anything non-positive.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	return p
}

func (p Params) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}

// TotalPages is ceil(total/limit); zero totals yield zero pages.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

type Paged[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func NewPaged[T any](data []T, total int64, p Params) Paged[T] {
	p = p.Normalize()
	if data == nil {
		data = []T{}
	}
	return Paged[T]{
		Data:       data,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: TotalPages(total, p.Limit),
	}
}
