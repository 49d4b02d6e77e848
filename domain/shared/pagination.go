package shared

const (
	// DefaultPageSize is applied when the caller does not pick one.
	DefaultPageSize = 20

	// MaxPageSize caps a single listing request.
	MaxPageSize = 100
)

// PaginationParams is a normalized page request. Always build it through
// NewPaginationParams so page and size are within bounds.
type PaginationParams struct {
	Page int
	Size int
}

// NewPaginationParams clamps the raw page/size values: page at least 1,
// size defaulting to DefaultPageSize and capped at MaxPageSize.
func NewPaginationParams(page, size int) PaginationParams {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PaginationParams{Page: page, Size: size}
}

// Offset returns the number of rows to skip.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Size
}

// Page is one page of results together with totals.
type Page[T any] struct {
	Data       []T
	TotalItems int64
	Current    int
	Size       int
	TotalPages int
}

// NewPage assembles a page computing TotalPages from the item count.
func NewPage[T any](data []T, totalItems int64, params PaginationParams) Page[T] {
	totalPages := int((totalItems + int64(params.Size) - 1) / int64(params.Size))
	return Page[T]{
		Data:       data,
		TotalItems: totalItems,
		Current:    params.Page,
		Size:       params.Size,
		TotalPages: totalPages,
	}
}
