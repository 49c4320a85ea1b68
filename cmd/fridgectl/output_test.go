package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaDevFox/fridgemate/internal/domain"
	"github.com/DaDevFox/fridgemate/internal/grpcapi"
	"github.com/DaDevFox/fridgemate/internal/service"
	"github.com/DaDevFox/fridgemate/internal/view"
)

func TestRenderItemPage(t *testing.T) {
	expiry := domain.NewDate(2023, 11, 16)
	days := 1

	resp := &grpcapi.ListItemsResponse{
		Page: view.PagedResult[view.AnnotatedItem]{
			Items: []view.AnnotatedItem{
				{
					Item: domain.InventoryItem{
						ID:         "a1",
						Name:       "Сыр",
						Quantity:   domain.Quantity{Amount: 200, Unit: "g"},
						ExpiryDate: &expiry,
					},
					Status:        domain.StatusExpiringSoon,
					DaysRemaining: &days,
				},
				{
					Item:   domain.InventoryItem{ID: "b2", Name: "Соль", Quantity: domain.Quantity{Amount: 1, Unit: "kg"}},
					Status: domain.StatusFresh,
				},
			},
			TotalCount:  2,
			TotalPages:  1,
			CurrentPage: 1,
			PageSize:    5,
		},
		Counts: view.StatusCounts{Fresh: 1, ExpiringSoon: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, renderItemPage(&buf, resp))

	out := buf.String()
	assert.Contains(t, out, "All: 2  Expired: 0  Recommend: 1")
	assert.Contains(t, out, "16.11.2023")
	assert.Contains(t, out, "200 g")
	assert.Contains(t, out, "Page 1 of 1 (2 items, 5 per page)")

	lines := strings.Split(out, "\n")
	var salt string
	for _, line := range lines {
		if strings.HasPrefix(line, "b2") {
			salt = line
		}
	}
	require.NotEmpty(t, salt)

	// ID, name, amount, unit, expiry, days, status
	fields := strings.Fields(salt)
	require.Len(t, fields, 7)
	assert.Equal(t, "-", fields[4])
	assert.Equal(t, "-", fields[5])
}

func TestRenderItemPageEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderItemPage(&buf, &grpcapi.ListItemsResponse{}))
	assert.Contains(t, buf.String(), "No items.")
}

func TestRenderBudget(t *testing.T) {
	budget := &domain.Budget{Total: decimal.NewFromInt(1000), Spent: decimal.RequireFromString("250.5")}

	var buf bytes.Buffer
	require.NoError(t, renderBudget(&buf, &grpcapi.BudgetResponse{Budget: budget, Remaining: budget.Remaining()}))

	out := buf.String()
	assert.Contains(t, out, "1000.00")
	assert.Contains(t, out, "250.50")
	assert.Contains(t, out, "749.50")
}

func TestRenderSuggestions(t *testing.T) {
	suggestions := []service.RecipeSuggestion{
		{
			Recipe:  &domain.Recipe{ID: "r1", Name: "Омлет"},
			Matched: []string{"яйца", "молоко"},
		},
		{
			Recipe:  &domain.Recipe{ID: "r2", Name: "Сырники"},
			Matched: []string{"яйца"},
			Missing: []string{"творог"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, renderSuggestions(&buf, suggestions))

	out := buf.String()
	assert.Contains(t, out, "яйца, молоко")
	assert.Contains(t, out, "творог")

	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "r1") {
			assert.True(t, strings.HasSuffix(strings.TrimSpace(line), "-"), "nothing missing for %q", line)
		}
	}
}

func TestRenderShoppingList(t *testing.T) {
	entries := []*domain.ShoppingEntry{
		{ID: "e1", Name: "Хлеб", Bought: true},
		{ID: "e2", Name: "Молоко"},
	}

	var buf bytes.Buffer
	require.NoError(t, renderShoppingList(&buf, entries))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "[x]"))
	assert.True(t, strings.HasPrefix(lines[1], "[ ]"))

	buf.Reset()
	require.NoError(t, renderShoppingList(&buf, nil))
	assert.Contains(t, buf.String(), "empty")
}
