package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/DaDevFox/fridgemate/internal/domain"
	"github.com/DaDevFox/fridgemate/internal/repository"
)

// MockRepository implements repository.InventoryRepository for testing
type MockRepository struct {
	mock.Mock
}

var _ repository.InventoryRepository = (*MockRepository)(nil)

func (m *MockRepository) AddItem(ctx context.Context, item *domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockRepository) GetItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*domain.InventoryItem)
	return item, args.Error(1)
}

func (m *MockRepository) UpdateItem(ctx context.Context, item *domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockRepository) DeleteItem(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) ListItems(ctx context.Context, filters repository.ListFilters) ([]*domain.InventoryItem, int, error) {
	args := m.Called(ctx, filters)
	items, _ := args.Get(0).([]*domain.InventoryItem)
	return items, args.Int(1), args.Error(2)
}

func (m *MockRepository) GetAllItems(ctx context.Context) ([]*domain.InventoryItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*domain.InventoryItem)
	return items, args.Error(1)
}

func (m *MockRepository) DeleteItems(ctx context.Context, ids []string) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) AddProductType(ctx context.Context, productType *domain.ProductType) error {
	args := m.Called(ctx, productType)
	return args.Error(0)
}

func (m *MockRepository) GetProductType(ctx context.Context, id string) (*domain.ProductType, error) {
	args := m.Called(ctx, id)
	productType, _ := args.Get(0).(*domain.ProductType)
	return productType, args.Error(1)
}

func (m *MockRepository) ListProductTypes(ctx context.Context) ([]*domain.ProductType, error) {
	args := m.Called(ctx)
	types, _ := args.Get(0).([]*domain.ProductType)
	return types, args.Error(1)
}

func (m *MockRepository) AddNotification(ctx context.Context, notification *domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockRepository) ListNotifications(ctx context.Context, filters repository.NotificationFilters) ([]*domain.Notification, error) {
	args := m.Called(ctx, filters)
	notifications, _ := args.Get(0).([]*domain.Notification)
	return notifications, args.Error(1)
}

func (m *MockRepository) DeleteNotification(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) DeleteNotificationsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) GetBudget(ctx context.Context) (*domain.Budget, error) {
	args := m.Called(ctx)
	budget, _ := args.Get(0).(*domain.Budget)
	return budget, args.Error(1)
}

func (m *MockRepository) SaveBudget(ctx context.Context, budget *domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockRepository) DeleteBudget(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockRepository) AddRecipe(ctx context.Context, recipe *domain.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRepository) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	args := m.Called(ctx, id)
	recipe, _ := args.Get(0).(*domain.Recipe)
	return recipe, args.Error(1)
}

func (m *MockRepository) ListRecipes(ctx context.Context) ([]*domain.Recipe, error) {
	args := m.Called(ctx)
	recipes, _ := args.Get(0).([]*domain.Recipe)
	return recipes, args.Error(1)
}

func (m *MockRepository) AddShoppingEntry(ctx context.Context, entry *domain.ShoppingEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockRepository) GetShoppingEntry(ctx context.Context, id string) (*domain.ShoppingEntry, error) {
	args := m.Called(ctx, id)
	entry, _ := args.Get(0).(*domain.ShoppingEntry)
	return entry, args.Error(1)
}

func (m *MockRepository) UpdateShoppingEntry(ctx context.Context, entry *domain.ShoppingEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockRepository) ListShoppingEntries(ctx context.Context) ([]*domain.ShoppingEntry, error) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).([]*domain.ShoppingEntry)
	return entries, args.Error(1)
}

func (m *MockRepository) DeleteShoppingEntries(ctx context.Context, ids []string) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}
