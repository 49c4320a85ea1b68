package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/DaDevFox/fridgemate/internal/domain"
	"github.com/DaDevFox/fridgemate/internal/repository"
)

// boughtQuantity is the amount a bought shopping entry puts into the fridge.
var boughtQuantity = domain.Quantity{Amount: 1, Unit: "pcs"}

// ShoppingService manages the household shopping list
type ShoppingService struct {
	repo      repository.InventoryRepository
	inventory *InventoryService
	clock     Clock
	logger    *logrus.Logger

	// mu serializes changes so an entry is never moved into the fridge twice.
	mu sync.Mutex
}

// NewShoppingService creates a new shopping list service instance
func NewShoppingService(
	repo repository.InventoryRepository,
	inventory *InventoryService,
	clock Clock,
	logger *logrus.Logger,
) *ShoppingService {
	return &ShoppingService{
		repo:      repo,
		inventory: inventory,
		clock:     clock,
		logger:    logger,
	}
}

// Add appends a note to the shopping list
func (s *ShoppingService) Add(ctx context.Context, note string) (*domain.ShoppingEntry, error) {
	if err := domain.ValidateShoppingNote(note); err != nil {
		return nil, err
	}

	entry := &domain.ShoppingEntry{
		Name:      domain.SanitizeName(note),
		CreatedAt: s.clock.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.AddShoppingEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to add shopping entry: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"entry_id":   entry.ID,
		"entry_name": entry.Name,
	}).Info("shopping entry added")

	return entry, nil
}

// List returns the shopping list in insertion order
func (s *ShoppingService) List(ctx context.Context) ([]*domain.ShoppingEntry, error) {
	entries, err := s.repo.ListShoppingEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping entries: %w", err)
	}
	return entries, nil
}

// Toggle flips the bought mark of an entry
func (s *ShoppingService) Toggle(ctx context.Context, id string) (*domain.ShoppingEntry, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.repo.GetShoppingEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	entry.Bought = !entry.Bought
	if err := s.repo.UpdateShoppingEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update shopping entry: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"entry_id": entry.ID,
		"bought":   entry.Bought,
	}).Debug("shopping entry toggled")

	return entry, nil
}

// Clear empties the shopping list and reports how many entries were removed
func (s *ShoppingService) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.ListShoppingEntries(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list shopping entries: %w", err)
	}

	ids := make([]string, len(entries))
	for i, entry := range entries {
		ids[i] = entry.ID
	}

	deleted, err := s.repo.DeleteShoppingEntries(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to clear shopping list: %w", err)
	}

	s.logger.WithField("count", deleted).Info("shopping list cleared")
	return deleted, nil
}

// MoveBoughtToFridge adds every bought entry to the inventory as one piece
// and removes it from the list. Entries moved before a failure stay moved.
func (s *ShoppingService) MoveBoughtToFridge(ctx context.Context) ([]*domain.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.ListShoppingEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping entries: %w", err)
	}

	var (
		added   []*domain.InventoryItem
		moved   []string
		moveErr error
	)
	for _, entry := range entries {
		if !entry.Bought {
			continue
		}
		item, err := s.inventory.AddItem(ctx, AddItemRequest{Name: entry.Name, Quantity: boughtQuantity})
		if err != nil {
			moveErr = fmt.Errorf("failed to move %q into the fridge: %w", entry.Name, err)
			break
		}
		added = append(added, item)
		moved = append(moved, entry.ID)
	}

	if len(moved) > 0 {
		if _, err := s.repo.DeleteShoppingEntries(ctx, moved); err != nil {
			return added, fmt.Errorf("failed to remove moved shopping entries: %w", err)
		}
	}

	s.logger.WithField("count", len(added)).Info("bought products moved into the fridge")
	return added, moveErr
}
