package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/DaDevFox/fridgemate/internal/domain"
	"github.com/DaDevFox/fridgemate/internal/events"
)

func shoppingNames(entries []*domain.ShoppingEntry) []string {
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name
	}
	return names
}

func TestShoppingAdd(t *testing.T) {
	tests := []struct {
		name    string
		note    string
		want    string
		wantErr bool
	}{
		{name: "plain", note: "Хлеб", want: "Хлеб"},
		{name: "trimmed", note: "  Молоко  ", want: "Молоко"},
		{name: "empty", note: "", wantErr: true},
		{name: "multi-line", note: "Хлеб\nМолоко", wantErr: true},
		{name: "too long", note: strings.Repeat("я", domain.MaxShoppingEntryLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestServicesWithRealDB(t, FixedClock{testNow})

			entry, err := s.shopping.Add(context.Background(), tt.note)
			if tt.wantErr {
				var validationErr *domain.ValidationError
				require.ErrorAs(t, err, &validationErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, entry.Name)
			assert.False(t, entry.Bought)
			assert.NotEmpty(t, entry.ID)
		})
	}
}

func TestShoppingToggleAndClear(t *testing.T) {
	s := setupTestServicesWithRealDB(t, FixedClock{testNow})
	ctx := context.Background()

	bread, err := s.shopping.Add(ctx, "Хлеб")
	require.NoError(t, err)
	_, err = s.shopping.Add(ctx, "Молоко")
	require.NoError(t, err)

	toggled, err := s.shopping.Toggle(ctx, bread.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Bought)

	toggled, err = s.shopping.Toggle(ctx, bread.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Bought)

	_, err = s.shopping.Toggle(ctx, "missing")
	assert.True(t, domain.IsNotFound(err))

	entries, err := s.shopping.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Хлеб", "Молоко"}, shoppingNames(entries))

	cleared, err := s.shopping.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, cleared)

	entries, err = s.shopping.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestShoppingMoveBoughtToFridge(t *testing.T) {
	s := setupTestServicesWithRealDB(t, FixedClock{testNow})
	ctx := context.Background()

	for _, note := range []string{"Хлеб", "Молоко", "Яйца"} {
		entry, err := s.shopping.Add(ctx, note)
		require.NoError(t, err)
		if note != "Молоко" {
			_, err = s.shopping.Toggle(ctx, entry.ID)
			require.NoError(t, err)
		}
	}

	added, err := s.shopping.MoveBoughtToFridge(ctx)
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, "Хлеб", added[0].Name)
	assert.Equal(t, "Яйца", added[1].Name)
	assert.Equal(t, domain.Quantity{Amount: 1, Unit: "pcs"}, added[0].Quantity)
	assert.Equal(t, domain.DateOf(testNow), added[0].AddedDate)

	remaining, err := s.shopping.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Молоко"}, shoppingNames(remaining))

	items, err := s.repo.GetAllItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	s.bus.Wait()
	assert.Len(t, s.recorder.ofType(events.ItemAdded), 2)

	// Nothing is bought any more.
	added, err = s.shopping.MoveBoughtToFridge(ctx)
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestShoppingMoveStopsAtFirstFailure(t *testing.T) {
	repo := new(MockRepository)
	entries := []*domain.ShoppingEntry{
		{ID: "a", Name: "Хлеб", Bought: true},
		{ID: "b", Name: "Молоко", Bought: true},
	}
	repo.On("ListShoppingEntries", mock.Anything).Return(entries, nil)
	repo.On("AddItem", mock.Anything, mock.MatchedBy(func(item *domain.InventoryItem) bool { return item.Name == "Хлеб" })).Return(nil).Once()
	repo.On("AddItem", mock.Anything, mock.MatchedBy(func(item *domain.InventoryItem) bool { return item.Name == "Молоко" })).Return(errors.New("disk full")).Once()
	repo.On("DeleteShoppingEntries", mock.Anything, []string{"a"}).Return(1, nil)

	logger := newTestLogger()
	bus := events.NewEventBus("test", logger)
	defer bus.Close()
	inventory := NewInventoryService(repo, nil, bus, FixedClock{testNow}, logger)
	shopping := NewShoppingService(repo, inventory, FixedClock{testNow}, logger)

	added, err := shopping.MoveBoughtToFridge(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	require.Len(t, added, 1)
	assert.Equal(t, "Хлеб", added[0].Name)
	assert.True(t, added[0].Price.Equal(decimal.Zero))
	repo.AssertExpectations(t)
}
