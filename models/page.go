package models

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage keeps Page*Size well inside a Postgres OFFSET.
	MaxPage = 1_000_000
)

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// PageRequest is zero-based: Page 0 is the first page.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir SortDirection
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

type Page[T any] struct {
	Items      []T
	Page       int
	Size       int
	TotalItems int64
}

func (p Page[T]) TotalPages() int {
	if p.Size <= 0 || p.TotalItems == 0 {
		return 0
	}
	return int((p.TotalItems + int64(p.Size) - 1) / int64(p.Size))
}

func MapPage[T, R any](p Page[T], fn func(T) R) Page[R] {
	items := make([]R, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, fn(item))
	}
	return Page[R]{Items: items, Page: p.Page, Size: p.Size, TotalItems: p.TotalItems}
}

// Normalize clamps page and size into range. Sort fields are left to the store.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}
