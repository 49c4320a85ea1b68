package view

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaDevFox/fridgemate/internal/domain"
)

var testToday = domain.NewDate(2023, time.November, 15)

// fridgeFixture mirrors the twelve rows of the household demo fridge:
// apples (#2, #6, #10) expired three days ago, cheese (#3, #7, #11) expires
// tomorrow, everything else keeps for another ten days.
func fridgeFixture() []domain.InventoryItem {
	rows := []struct {
		name, kind string
		qty        domain.Quantity
		days       int
	}{
		{"Молоко Ряженка", "Молоко", domain.Quantity{Amount: 100, Unit: "ml"}, 10},
		{"Яблоки", "Фрукты", domain.Quantity{Amount: 1, Unit: "kg"}, -3},
		{"Сыр", "Молочные продукты", domain.Quantity{Amount: 200, Unit: "g"}, 1},
		{"Хлеб", "Хлебобулочные изделия", domain.Quantity{Amount: 1, Unit: "pcs"}, 10},
	}

	items := make([]domain.InventoryItem, 0, 12)
	for i := 1; i <= 12; i++ {
		row := rows[(i-1)%len(rows)]
		expiry := testToday.AddDays(row.days)
		items = append(items, domain.InventoryItem{
			ID:         strconv.Itoa(i),
			Name:       row.name,
			Type:       row.kind,
			Quantity:   row.qty,
			AddedDate:  testToday.AddDays(-5),
			ExpiryDate: &expiry,
			Price:      decimal.NewFromInt(int64(i * 10)),
		})
	}
	return items
}

func ids(items []AnnotatedItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Item.ID
	}
	return out
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		daysRemaining int
		expected      domain.StatusTag
	}{
		{30, domain.StatusFresh},
		{2, domain.StatusFresh},
		{1, domain.StatusExpiringSoon},
		{0, domain.StatusExpiringSoon},
		{-1, domain.StatusExpired},
		{-400, domain.StatusExpired},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.daysRemaining), func(t *testing.T) {
			expiry := testToday.AddDays(tt.daysRemaining)
			if got := Classify(testToday, &expiry); got != tt.expected {
				t.Errorf("Classify(%d days) = %v, expected %v", tt.daysRemaining, got, tt.expected)
			}
		})
	}
}

func TestClassifyWithoutExpiryIsFresh(t *testing.T) {
	if got := Classify(testToday, nil); got != domain.StatusFresh {
		t.Errorf("Classify(nil) = %v, expected Fresh", got)
	}
}

func TestClassifyRaw(t *testing.T) {
	status, err := ClassifyRaw(testToday, "14.11.2023")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExpired, status)

	status, err = ClassifyRaw(testToday, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFresh, status)

	_, err = ClassifyRaw(testToday, "15 Ноя 2023")
	var dateErr *domain.InvalidDateError
	require.True(t, errors.As(err, &dateErr), "expected *InvalidDateError, got %v", err)
	assert.Equal(t, "15 Ноя 2023", dateErr.Value)
}

func TestAnnotateDoesNotMutateInput(t *testing.T) {
	items := fridgeFixture()
	before := fridgeFixture()

	annotated := Annotate(testToday, items)
	annotated[0].Item.Name = "changed"

	if diff := cmp.Diff(before, items); diff != "" {
		t.Errorf("input modified (-before +after):\n%s", diff)
	}
	require.NotNil(t, annotated[1].DaysRemaining)
	assert.Equal(t, -3, *annotated[1].DaysRemaining)
}

func TestAnnotateWithoutExpiry(t *testing.T) {
	annotated := Annotate(testToday, []domain.InventoryItem{{ID: "salt", Name: "Соль"}})

	assert.Equal(t, domain.StatusFresh, annotated[0].Status)
	assert.Nil(t, annotated[0].DaysRemaining)
}

func TestFilter(t *testing.T) {
	annotated := Annotate(testToday, fridgeFixture())

	tests := []struct {
		name     string
		search   string
		filter   domain.FilterTag
		expected []string
	}{
		{name: "everything", filter: domain.FilterAll, expected: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}},
		{name: "expired", filter: domain.FilterExpired, expected: []string{"2", "6", "10"}},
		{name: "recommend", filter: domain.FilterRecommend, expected: []string{"3", "7", "11"}},
		{name: "cyrillic search ignores case", search: "сыр", filter: domain.FilterAll, expected: []string{"3", "7", "11"}},
		{name: "upper case search", search: "ХЛЕБ", filter: domain.FilterAll, expected: []string{"4", "8", "12"}},
		{name: "substring", search: "ряж", filter: domain.FilterAll, expected: []string{"1", "5", "9"}},
		{name: "search and filter are anded", search: "сыр", filter: domain.FilterExpired, expected: []string{}},
		{name: "no match", search: "колбаса", filter: domain.FilterAll, expected: []string{}},
		{name: "unknown filter passes everything", search: "яблоки", filter: domain.FilterTag(99), expected: []string{"2", "6", "10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(annotated, tt.search, tt.filter)
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestFilterByName(t *testing.T) {
	recipes := []string{"Сырники", "Омлет", "Суп сырный", "Блины"}
	self := func(s string) string { return s }

	assert.Equal(t, []string{"Сырники", "Суп сырный"}, FilterByName(recipes, "СЫР", self))
	assert.Equal(t, recipes, FilterByName(recipes, "", self))
	assert.Empty(t, FilterByName(recipes, "борщ", self))
}

func TestFilterIsIdempotent(t *testing.T) {
	annotated := Annotate(testToday, fridgeFixture())

	for _, filter := range []domain.FilterTag{domain.FilterAll, domain.FilterExpired, domain.FilterRecommend} {
		for _, search := range []string{"", "сыр", "о", "zzz"} {
			once := Filter(annotated, search, filter)
			twice := Filter(once, search, filter)
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Errorf("Filter(%q, %v) not idempotent (-once +twice):\n%s", search, filter, diff)
			}
		}
	}
}

func TestPaginate(t *testing.T) {
	xs := make([]int, 12)
	for i := range xs {
		xs[i] = i + 1
	}

	tests := []struct {
		name       string
		items      []int
		pageSize   int
		page       int
		expected   []int
		totalPages int
		current    int
	}{
		{name: "first page", items: xs, pageSize: 5, page: 1, expected: []int{1, 2, 3, 4, 5}, totalPages: 3, current: 1},
		{name: "last partial page", items: xs, pageSize: 5, page: 3, expected: []int{11, 12}, totalPages: 3, current: 3},
		{name: "stale page clamps to last", items: xs, pageSize: 5, page: 999, expected: []int{11, 12}, totalPages: 3, current: 3},
		{name: "page below one", items: xs, pageSize: 5, page: 0, expected: []int{1, 2, 3, 4, 5}, totalPages: 3, current: 1},
		{name: "exact multiple", items: xs, pageSize: 6, page: 2, expected: []int{7, 8, 9, 10, 11, 12}, totalPages: 2, current: 2},
		{name: "one big page", items: xs, pageSize: 50, page: 1, expected: xs, totalPages: 1, current: 1},
		{name: "default page size", items: xs, pageSize: 0, page: 2, expected: []int{6, 7, 8, 9, 10}, totalPages: 3, current: 2},
		{name: "empty input", items: nil, pageSize: 5, page: 4, expected: []int{}, totalPages: 0, current: 1},
		{name: "max int page size", items: xs, pageSize: math.MaxInt, page: 1, expected: xs, totalPages: 1, current: 1},
		{name: "max int page size past end", items: xs, pageSize: math.MaxInt, page: 3, expected: xs, totalPages: 1, current: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tt.items, tt.pageSize, tt.page)
			assert.Equal(t, tt.expected, got.Items)
			assert.Equal(t, len(tt.items), got.TotalCount)
			assert.Equal(t, tt.totalPages, got.TotalPages)
			assert.Equal(t, tt.current, got.CurrentPage)
			assert.LessOrEqual(t, len(got.Items), got.PageSize)
		})
	}
}

func TestPaginateClampMatchesLastPage(t *testing.T) {
	xs := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}

	if diff := cmp.Diff(Paginate(xs, 5, 3), Paginate(xs, 5, 999)); diff != "" {
		t.Errorf("clamped page differs from last page (-want +got):\n%s", diff)
	}
}

func TestPaginationCoversEveryItemOnce(t *testing.T) {
	annotated := Annotate(testToday, fridgeFixture())

	for _, pageSize := range []int{1, 2, 5, 7, 10, 12, 50} {
		filtered := Filter(annotated, "", domain.FilterAll)
		first := Paginate(filtered, pageSize, 1)

		var all []AnnotatedItem
		for page := 1; page <= first.TotalPages; page++ {
			all = append(all, Paginate(filtered, pageSize, page).Items...)
		}

		if diff := cmp.Diff(filtered, all); diff != "" {
			t.Errorf("pageSize %d: concatenated pages differ (-filtered +pages):\n%s", pageSize, diff)
		}
	}
}

func TestPaginateDoesNotAliasInput(t *testing.T) {
	xs := []int{1, 2, 3}
	page := Paginate(xs, 2, 1)
	page.Items[0] = 100

	assert.Equal(t, []int{1, 2, 3}, xs)
}

func TestBuildViewExpiredScenario(t *testing.T) {
	state := ViewState{ActiveFilter: domain.ParseFilterTag("Expired"), PageSize: 5, CurrentPage: 1}

	got := BuildView(fridgeFixture(), testToday, state)

	assert.Equal(t, []string{"2", "6", "10"}, ids(got.Items))
	assert.Equal(t, 3, got.TotalCount)
	assert.Equal(t, 1, got.TotalPages)
	assert.Equal(t, 1, got.CurrentPage)
	for _, item := range got.Items {
		assert.Equal(t, domain.StatusExpired, item.Status)
	}
}

func TestBuildViewSearchScenario(t *testing.T) {
	state := DefaultViewState().WithSearch("сыр")

	got := BuildView(fridgeFixture(), testToday, state)

	require.Len(t, got.Items, 3)
	for _, item := range got.Items {
		assert.Equal(t, "Сыр", item.Item.Name)
		assert.Equal(t, domain.StatusExpiringSoon, item.Status)
	}
}

func TestBuildViewIsDeterministic(t *testing.T) {
	state := ViewState{SearchText: "о", ActiveFilter: domain.FilterAll, PageSize: 5, CurrentPage: 2}

	first := BuildView(fridgeFixture(), testToday, state)
	second := BuildView(fridgeFixture(), testToday, state)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("BuildView not deterministic (-first +second):\n%s", diff)
	}
}

func TestBuildViewDoesNotMutateInput(t *testing.T) {
	items := fridgeFixture()
	snapshot := slices.Clone(items)

	BuildView(items, testToday, DefaultViewState().WithFilter(domain.FilterRecommend))

	if diff := cmp.Diff(snapshot, items); diff != "" {
		t.Errorf("BuildView modified input (-before +after):\n%s", diff)
	}
}

func TestBuildViewStalePageAfterFilterChange(t *testing.T) {
	// Page 3 of "All" is valid, but the caller forgot to reset it when switching to "Expired".
	state := DefaultViewState().WithPage(3)
	state.ActiveFilter = domain.FilterExpired

	got := BuildView(fridgeFixture(), testToday, state)

	assert.Equal(t, 1, got.CurrentPage)
	assert.Len(t, got.Items, 3)
}

func TestViewStateHelpersResetPage(t *testing.T) {
	state := DefaultViewState().WithPage(4)

	assert.Equal(t, 1, state.WithSearch("x").CurrentPage)
	assert.Equal(t, 1, state.WithFilter(domain.FilterExpired).CurrentPage)
	assert.Equal(t, 1, state.WithPageSize(10).CurrentPage)
	assert.Equal(t, 4, state.CurrentPage, "helpers must return copies")
}

func TestSummary(t *testing.T) {
	counts := Summary(Annotate(testToday, fridgeFixture()))

	assert.Equal(t, StatusCounts{Fresh: 6, ExpiringSoon: 3, Expired: 3}, counts)
	assert.Equal(t, 12, counts.Total())
}
