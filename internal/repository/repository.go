package repository

import (
	"context"
	"sort"
	"time"

	"github.com/DaDevFox/fridgemate/internal/domain"
)

// InventoryRepository defines the interface for household data persistence
type InventoryRepository interface {
	// Item operations
	AddItem(ctx context.Context, item *domain.InventoryItem) error
	GetItem(ctx context.Context, id string) (*domain.InventoryItem, error)
	UpdateItem(ctx context.Context, item *domain.InventoryItem) error
	DeleteItem(ctx context.Context, id string) error
	ListItems(ctx context.Context, filters ListFilters) ([]*domain.InventoryItem, int, error)

	// Bulk operations
	GetAllItems(ctx context.Context) ([]*domain.InventoryItem, error)
	DeleteItems(ctx context.Context, ids []string) (int, error)

	// Product type operations
	AddProductType(ctx context.Context, productType *domain.ProductType) error
	GetProductType(ctx context.Context, id string) (*domain.ProductType, error)
	ListProductTypes(ctx context.Context) ([]*domain.ProductType, error)

	// Notification operations
	AddNotification(ctx context.Context, notification *domain.Notification) error
	ListNotifications(ctx context.Context, filters NotificationFilters) ([]*domain.Notification, error)
	DeleteNotification(ctx context.Context, id string) error
	DeleteNotificationsBefore(ctx context.Context, cutoff time.Time) (int, error)

	// Budget operations
	GetBudget(ctx context.Context) (*domain.Budget, error)
	SaveBudget(ctx context.Context, budget *domain.Budget) error
	DeleteBudget(ctx context.Context) error

	// Recipe operations
	AddRecipe(ctx context.Context, recipe *domain.Recipe) error
	GetRecipe(ctx context.Context, id string) (*domain.Recipe, error)
	ListRecipes(ctx context.Context) ([]*domain.Recipe, error)

	// Shopping list operations
	AddShoppingEntry(ctx context.Context, entry *domain.ShoppingEntry) error
	GetShoppingEntry(ctx context.Context, id string) (*domain.ShoppingEntry, error)
	UpdateShoppingEntry(ctx context.Context, entry *domain.ShoppingEntry) error
	ListShoppingEntries(ctx context.Context) ([]*domain.ShoppingEntry, error)
	DeleteShoppingEntries(ctx context.Context, ids []string) (int, error)

	Close() error
}

// ListFilters provides filtering options for listing items.
// Items are always returned in insertion order.
type ListFilters struct {
	Type   string
	Limit  int
	Offset int
}

// NotificationFilters narrows ListNotifications. Zero values match everything.
type NotificationFilters struct {
	Type   domain.NotificationType
	ItemID string
	Since  time.Time
}

func (f NotificationFilters) matches(n *domain.Notification) bool {
	if f.Type != "" && n.Type != f.Type {
		return false
	}
	if f.ItemID != "" && n.ItemID != f.ItemID {
		return false
	}
	if !f.Since.IsZero() && n.CreatedAt.Before(f.Since) {
		return false
	}
	return true
}

// storedItem wraps an item with its insertion sequence number.
type storedItem struct {
	Seq  uint64                `json:"seq"`
	Item *domain.InventoryItem `json:"item"`
}

func sortStoredItems(stored []storedItem) []*domain.InventoryItem {
	sort.SliceStable(stored, func(i, j int) bool {
		return stored[i].Seq < stored[j].Seq
	})
	items := make([]*domain.InventoryItem, len(stored))
	for i, s := range stored {
		items[i] = s.Item
	}
	return items
}

// sequenced wraps a recipe or shopping entry with its insertion sequence number.
type sequenced[T any] struct {
	Seq   uint64 `json:"seq"`
	Value *T     `json:"value"`
}

func sortSequenced[T any](stored []sequenced[T]) []*T {
	sort.SliceStable(stored, func(i, j int) bool {
		return stored[i].Seq < stored[j].Seq
	})
	values := make([]*T, len(stored))
	for i, s := range stored {
		values[i] = s.Value
	}
	return values
}

// applyListFilters filters by type and applies offset/limit. It returns the
// page together with the number of items that passed the type filter.
func applyListFilters(items []*domain.InventoryItem, filters ListFilters) ([]*domain.InventoryItem, int) {
	if filters.Type != "" {
		matched := items[:0:0]
		for _, item := range items {
			if item.Type == filters.Type {
				matched = append(matched, item)
			}
		}
		items = matched
	}

	total := len(items)

	if filters.Offset > 0 {
		if filters.Offset >= len(items) {
			items = []*domain.InventoryItem{}
		} else {
			items = items[filters.Offset:]
		}
	}

	if filters.Limit > 0 && filters.Limit < len(items) {
		items = items[:filters.Limit]
	}

	return items, total
}

func sortNotifications(notifications []*domain.Notification) {
	sort.SliceStable(notifications, func(i, j int) bool {
		if notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].ID < notifications[j].ID
		}
		return notifications[i].CreatedAt.Before(notifications[j].CreatedAt)
	})
}

// DefaultProductTypes are seeded into an empty database.
func DefaultProductTypes() []*domain.ProductType {
	return []*domain.ProductType{
		{ID: "milk", Name: "Молоко", ShelfDays: 7, QuantityUnit: "ml"},
		{ID: "dairy", Name: "Молочные продукты", ShelfDays: 14, QuantityUnit: "g"},
		{ID: "fruit", Name: "Фрукты", ShelfDays: 10, QuantityUnit: "kg"},
		{ID: "vegetables", Name: "Овощи", ShelfDays: 10, QuantityUnit: "kg"},
		{ID: "bakery", Name: "Хлебобулочные изделия", ShelfDays: 4, QuantityUnit: "pcs"},
		{ID: "meat", Name: "Мясо", ShelfDays: 3, QuantityUnit: "g"},
		{ID: "grocery", Name: "Бакалея", ShelfDays: 365, QuantityUnit: "g"},
	}
}
