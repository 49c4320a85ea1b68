package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// EventType identifies what happened in the household inventory.
type EventType string

const (
	ItemAdded      EventType = "item_added"
	ItemRemoved    EventType = "item_removed"
	ItemsExpired   EventType = "items_expired"
	BudgetExceeded EventType = "budget_exceeded"
	RecipeAdded    EventType = "recipe_added"
)

// Event is delivered to every handler subscribed to its type.
type Event struct {
	ID        string
	Type      EventType
	Source    string
	Timestamp time.Time
	Payload   any
}

// ItemPayload accompanies ItemAdded and ItemRemoved.
type ItemPayload struct {
	ItemID   string
	ItemName string
}

// ItemsExpiredPayload accompanies ItemsExpired.
type ItemsExpiredPayload struct {
	ItemIDs []string
}

// RecipePayload accompanies RecipeAdded.
type RecipePayload struct {
	RecipeID   string
	RecipeName string
}

// BudgetExceededPayload accompanies BudgetExceeded. Amounts are decimal strings.
type BudgetExceededPayload struct {
	Expense   string
	Remaining string
}

// EventHandler defines the interface for handling events
type EventHandler func(ctx context.Context, event Event) error

// Publisher is the part of the bus the services depend on.
type Publisher interface {
	Publish(ctx context.Context, eventType EventType, payload any)
}

// EventBus provides in-memory pub/sub functionality
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[EventType][]EventHandler
	serviceName string
	closed      bool
	logger      *logrus.Logger

	// inflight counts running handlers; idle is signalled when it drops to zero.
	inflightMu sync.Mutex
	idle       *sync.Cond
	inflight   int
}

// NewEventBus creates a new event bus for a service
func NewEventBus(serviceName string, logger *logrus.Logger) *EventBus {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	eb := &EventBus{
		subscribers: make(map[EventType][]EventHandler),
		serviceName: serviceName,
		logger:      logger,
	}
	eb.idle = sync.NewCond(&eb.inflightMu)
	return eb
}

// Subscribe registers a handler for a specific event type
func (eb *EventBus) Subscribe(eventType EventType, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.subscribers[eventType] = append(eb.subscribers[eventType], handler)
}

// Publish sends an event to all registered handlers. Handlers run
// asynchronously; events published after Close are dropped.
func (eb *EventBus) Publish(ctx context.Context, eventType EventType, payload any) {
	eb.PublishEvent(ctx, Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    eb.serviceName,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

// PublishEvent publishes a pre-constructed event
func (eb *EventBus) PublishEvent(ctx context.Context, event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		eb.logger.WithField("event_type", event.Type).Debug("Event bus closed, dropping event")
		return
	}

	handlers := eb.subscribers[event.Type]
	if len(handlers) == 0 {
		return
	}

	// Handlers must not inherit the publisher's cancellation.
	ctx = context.WithoutCancel(ctx)

	eb.handlersStarted(len(handlers))
	for _, handler := range handlers {
		go func(h EventHandler) {
			defer eb.handlerDone()
			if err := h(ctx, event); err != nil {
				eb.logger.WithFields(logrus.Fields{
					"event_id":   event.ID,
					"event_type": event.Type,
					"error":      err,
				}).Error("Event handler failed")
			}
		}(handler)
	}
}

func (eb *EventBus) handlersStarted(n int) {
	eb.inflightMu.Lock()
	eb.inflight += n
	eb.inflightMu.Unlock()
}

func (eb *EventBus) handlerDone() {
	eb.inflightMu.Lock()
	eb.inflight--
	if eb.inflight == 0 {
		eb.idle.Broadcast()
	}
	eb.inflightMu.Unlock()
}

// Wait blocks until no handler is running. It may be called while other
// goroutines keep publishing; it then returns at the first idle moment.
func (eb *EventBus) Wait() {
	eb.inflightMu.Lock()
	for eb.inflight > 0 {
		eb.idle.Wait()
	}
	eb.inflightMu.Unlock()
}

// Close stops accepting events and waits for in-flight handlers.
func (eb *EventBus) Close() {
	eb.mu.Lock()
	eb.closed = true
	eb.mu.Unlock()

	eb.Wait()
}
