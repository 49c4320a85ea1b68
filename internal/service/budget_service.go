package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/DaDevFox/fridgemate/internal/domain"
	"github.com/DaDevFox/fridgemate/internal/events"
	"github.com/DaDevFox/fridgemate/internal/repository"
)

// BudgetService manages the household grocery budget
type BudgetService struct {
	// mu serializes read-modify-write cycles on the stored budget.
	mu sync.Mutex

	repo   repository.InventoryRepository
	bus    events.Publisher
	clock  Clock
	logger *logrus.Logger
}

// NewBudgetService creates a new budget service instance
func NewBudgetService(repo repository.InventoryRepository, bus events.Publisher, clock Clock, logger *logrus.Logger) *BudgetService {
	return &BudgetService{
		repo:   repo,
		bus:    bus,
		clock:  clock,
		logger: logger,
	}
}

// CreateBudget starts a new budget with nothing spent, replacing any existing one.
func (s *BudgetService) CreateBudget(ctx context.Context, total decimal.Decimal) (*domain.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: total must be positive, got %s", domain.ErrInvalidBudget, total)
	}

	budget := &domain.Budget{
		Total:     total,
		Spent:     decimal.Zero,
		UpdatedAt: s.clock.Now(),
	}
	if err := s.repo.SaveBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	s.logger.WithField("total", total.String()).Info("budget created")
	return budget, nil
}

// GetBudget returns the current budget
func (s *BudgetService) GetBudget(ctx context.Context) (*domain.Budget, error) {
	return s.repo.GetBudget(ctx)
}

// DeleteBudget removes the budget
func (s *BudgetService) DeleteBudget(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeleteBudget(ctx); err != nil {
		return err
	}
	s.logger.Info("budget deleted")
	return nil
}

// AddExpense subtracts amount from the budget. It fails with ErrBudgetExceeded
// instead of letting the remaining amount go negative.
func (s *BudgetService) AddExpense(ctx context.Context, amount decimal.Decimal) (*domain.Budget, error) {
	if !amount.IsPositive() {
		return nil, &domain.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	budget, err := s.repo.GetBudget(ctx)
	if err != nil {
		return nil, err
	}

	if !budget.CanAfford(amount) {
		s.logger.WithFields(logrus.Fields{
			"amount":    amount.String(),
			"remaining": budget.Remaining().String(),
		}).Warn("expense rejected, budget exceeded")
		return nil, fmt.Errorf("%w: remaining %s, requested %s", domain.ErrBudgetExceeded, budget.Remaining(), amount)
	}

	budget.Spent = budget.Spent.Add(amount)
	budget.UpdatedAt = s.clock.Now()
	if err := s.repo.SaveBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	return budget, nil
}

// UpdateLimit changes the budget total. The new total must cover what is already spent.
func (s *BudgetService) UpdateLimit(ctx context.Context, total decimal.Decimal) (*domain.Budget, error) {
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: total must be positive, got %s", domain.ErrInvalidBudget, total)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	budget, err := s.repo.GetBudget(ctx)
	if err != nil {
		return nil, err
	}

	if total.LessThan(budget.Spent) {
		return nil, fmt.Errorf("%w: total %s is below spent %s", domain.ErrInvalidBudget, total, budget.Spent)
	}

	budget.Total = total
	budget.UpdatedAt = s.clock.Now()
	if err := s.repo.SaveBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	return budget, nil
}

// RecordPurchase books the price of a bought item. Unlike AddExpense the
// purchase is always recorded: the goods are already in the fridge. An overrun
// is logged, published as BudgetExceeded and stored as a BGT notification.
// Without a budget nothing is recorded and the returned budget is nil.
func (s *BudgetService) RecordPurchase(ctx context.Context, itemName string, price decimal.Decimal) (*domain.Budget, error) {
	if !price.IsPositive() {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	budget, err := s.repo.GetBudget(ctx)
	if errors.Is(err, domain.ErrBudgetNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	budget.Spent = budget.Spent.Add(price)
	budget.UpdatedAt = s.clock.Now()
	if err := s.repo.SaveBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	if remaining := budget.Remaining(); remaining.IsNegative() {
		s.logger.WithFields(logrus.Fields{
			"item_name": itemName,
			"price":     price.String(),
			"remaining": remaining.String(),
		}).Warn("purchase exceeds budget")

		s.bus.Publish(ctx, events.BudgetExceeded, events.BudgetExceededPayload{
			Expense:   price.String(),
			Remaining: remaining.String(),
		})

		notification := &domain.Notification{
			Type:      domain.NotificationBudget,
			Message:   truncateMessage(fmt.Sprintf("Бюджет превышен на %s после покупки «%s»", remaining.Neg().StringFixed(2), itemName)),
			CreatedAt: s.clock.Now(),
		}
		if err := s.repo.AddNotification(ctx, notification); err != nil {
			s.logger.WithError(err).Error("failed to store budget notification")
		}
	}

	return budget, nil
}
