package view

import (
	"github.com/DaDevFox/fridgemate/internal/domain"
)

// ViewState is the caller-owned state of an inventory view.
type ViewState struct {
	SearchText   string           `json:"search_text"`
	ActiveFilter domain.FilterTag `json:"active_filter"`
	PageSize     int              `json:"page_size"`
	CurrentPage  int              `json:"current_page"`
}

// DefaultViewState is the state of a freshly opened inventory page.
func DefaultViewState() ViewState {
	return ViewState{ActiveFilter: domain.FilterAll, PageSize: DefaultPageSize, CurrentPage: 1}
}

// WithSearch returns a copy of s searching for text, back on the first page.
func (s ViewState) WithSearch(text string) ViewState {
	s.SearchText = text
	s.CurrentPage = 1
	return s
}

// WithFilter returns a copy of s using filter, back on the first page.
func (s ViewState) WithFilter(filter domain.FilterTag) ViewState {
	s.ActiveFilter = filter
	s.CurrentPage = 1
	return s
}

// WithPageSize returns a copy of s using size items per page, back on the first page.
func (s ViewState) WithPageSize(size int) ViewState {
	s.PageSize = size
	s.CurrentPage = 1
	return s
}

// WithPage returns a copy of s showing page.
func (s ViewState) WithPage(page int) ViewState {
	s.CurrentPage = page
	return s
}

// AnnotatedItem is an inventory item together with its derived status.
type AnnotatedItem struct {
	Item   domain.InventoryItem `json:"item"`
	Status domain.StatusTag     `json:"status"`
	// DaysRemaining is nil for items without an expiry date.
	DaysRemaining *int `json:"days_remaining,omitempty"`
}

// Annotate classifies every item as of today. The result holds copies; items is not modified.
func Annotate(today domain.Date, items []domain.InventoryItem) []AnnotatedItem {
	annotated := make([]AnnotatedItem, len(items))
	for i, item := range items {
		annotated[i] = AnnotatedItem{
			Item:   item,
			Status: Classify(today, item.ExpiryDate),
		}
		if item.ExpiryDate != nil {
			days := today.DaysUntil(*item.ExpiryDate)
			annotated[i].DaysRemaining = &days
		}
	}
	return annotated
}

// BuildView annotates, filters and paginates raw as of today.
func BuildView(raw []domain.InventoryItem, today domain.Date, state ViewState) PagedResult[AnnotatedItem] {
	annotated := Annotate(today, raw)
	filtered := Filter(annotated, state.SearchText, state.ActiveFilter)
	return Paginate(filtered, state.PageSize, state.CurrentPage)
}

// StatusCounts holds the number of items per status.
type StatusCounts struct {
	Fresh        int `json:"fresh"`
	ExpiringSoon int `json:"expiring_soon"`
	Expired      int `json:"expired"`
}

// Total returns the number of items counted.
func (c StatusCounts) Total() int {
	return c.Fresh + c.ExpiringSoon + c.Expired
}

// Summary counts annotated items per status.
func Summary(items []AnnotatedItem) StatusCounts {
	var counts StatusCounts
	for _, item := range items {
		switch item.Status {
		case domain.StatusExpired:
			counts.Expired++
		case domain.StatusExpiringSoon:
			counts.ExpiringSoon++
		default:
			counts.Fresh++
		}
	}
	return counts
}
