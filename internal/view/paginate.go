package view

// DefaultPageSize is used when a caller passes a non-positive page size.
const DefaultPageSize = 5

// AllowedPageSizes are the page sizes offered by the household UI.
var AllowedPageSizes = []int{5, 10, 50}

// PagedResult is one page of a sequence plus the metadata to render a pager.
// CurrentPage is always within [1, max(1, TotalPages)].
type PagedResult[T any] struct {
	Items       []T `json:"items"`
	TotalCount  int `json:"total_count"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
}

// Paginate returns page (1-based) of items split into pages of pageSize.
// A page past the end is clamped to the last page, a page below 1 becomes 1,
// and a non-positive pageSize becomes DefaultPageSize. It never panics.
func Paginate[T any](items []T, pageSize, page int) PagedResult[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if totalPages == 0 {
		page = 1
	}

	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	pageItems := make([]T, end-start)
	copy(pageItems, items[start:end])

	return PagedResult[T]{
		Items:       pageItems,
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    pageSize,
	}
}
