package repository

// DefaultPageSize applies when callers pass a non-positive page size.
const DefaultPageSize = 10

// PaginationOptions selects one page of a listing. PageNum is 1-indexed.
type PaginationOptions struct {
	PageNum  int
	PageSize int
}

// Normalize clamps nonsense input to the first page / default size so
// OFFSET arithmetic can never go negative.
func (o PaginationOptions) Normalize() PaginationOptions {
	if o.PageNum < 1 {
		o.PageNum = 1
	}
	if o.PageSize < 1 {
		o.PageSize = DefaultPageSize
	}
	return o
}

// Offset is the number of rows to skip for the requested page.
func (o PaginationOptions) Offset() int {
	return (o.PageNum - 1) * o.PageSize
}

// Paginated is one page of rows plus the descriptor callers render:
// the page requested, the total row count, and the page count derived
// from it.
type Paginated[T any] struct {
	Data       []T `json:"data"`
	PageNum    int `json:"pageNum"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	Count      int `json:"count"`
}

// NewPaginated builds the page descriptor from one logical snapshot of
// rows and total count.
func NewPaginated[T any](data []T, opts PaginationOptions, total int) Paginated[T] {
	totalPages := 0
	if opts.PageSize > 0 {
		totalPages = (total + opts.PageSize - 1) / opts.PageSize
	}
	return Paginated[T]{
		Data:       data,
		PageNum:    opts.PageNum,
		PageSize:   opts.PageSize,
		TotalPages: totalPages,
		Count:      total,
	}
}

// MapPage converts the element type of a page while keeping the
// descriptor intact. Services use it to expose serialized entities.
func MapPage[T, U any](p Paginated[T], fn func(T) U) Paginated[U] {
	data := make([]U, 0, len(p.Data))
	for _, item := range p.Data {
		data = append(data, fn(item))
	}
	return Paginated[U]{
		Data:       data,
		PageNum:    p.PageNum,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
		Count:      p.Count,
	}
}
