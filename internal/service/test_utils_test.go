package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/DaDevFox/fridgemate/internal/domain"
	"github.com/DaDevFox/fridgemate/internal/events"
	"github.com/DaDevFox/fridgemate/internal/repository"
)

const expectedNoError = "Expected no error, got %v"

// testNow is 15 November 2023, 10:00 UTC.
var testNow = time.Date(2023, time.November, 15, 10, 0, 0, 0, time.UTC)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel) // Reduce noise in tests
	return logger
}

// eventRecorder collects every event published on a bus.
type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) handle(ctx context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) ofType(eventType events.EventType) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []events.Event
	for _, event := range r.events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

type testServices struct {
	repo          repository.InventoryRepository
	bus           *events.EventBus
	recorder      *eventRecorder
	inventory     *InventoryService
	budgets       *BudgetService
	notifications *NotificationService
	recipes       *RecipeService
	shopping      *ShoppingService
}

// setupTestServicesWithRealDB wires all services to a bolt database in a temp dir
func setupTestServicesWithRealDB(t *testing.T, clock Clock) *testServices {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := repository.NewInventoryRepository(dbPath, repository.DatabaseTypeBolt)
	require.NoError(t, err)

	logger := newTestLogger()
	bus := events.NewEventBus("test_"+t.Name(), logger)
	recorder := &eventRecorder{}
	for _, eventType := range []events.EventType{events.ItemAdded, events.ItemRemoved, events.ItemsExpired, events.BudgetExceeded, events.RecipeAdded} {
		bus.Subscribe(eventType, recorder.handle)
	}

	budgets := NewBudgetService(repo, bus, clock, logger)
	inventory := NewInventoryService(repo, budgets, bus, clock, logger)

	t.Cleanup(func() {
		bus.Close()
		repo.Close()
	})

	return &testServices{
		repo:          repo,
		bus:           bus,
		recorder:      recorder,
		inventory:     inventory,
		budgets:       budgets,
		notifications: NewNotificationService(repo, clock, logger),
		recipes:       NewRecipeService(repo, inventory, bus, clock, logger),
		shopping:      NewShoppingService(repo, inventory, clock, logger),
	}
}

// addTestItem stores an item expiring daysFromToday days after testNow.
func addTestItem(t *testing.T, s *InventoryService, name string, daysFromToday int) *domain.InventoryItem {
	t.Helper()
	item, err := s.AddItem(context.Background(), AddItemRequest{
		Name:       name,
		Quantity:   domain.Quantity{Amount: 1, Unit: "pcs"},
		AddedDate:  domain.DateOf(testNow).AddDays(-5).String(),
		ExpiryDate: domain.DateOf(testNow).AddDays(daysFromToday).String(),
	})
	require.NoError(t, err)
	return item
}
