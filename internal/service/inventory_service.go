package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/DaDevFox/fridgemate/internal/domain"
	"github.com/DaDevFox/fridgemate/internal/events"
	"github.com/DaDevFox/fridgemate/internal/repository"
	"github.com/DaDevFox/fridgemate/internal/view"
)

// AddItemRequest describes a product put into the fridge.
type AddItemRequest struct {
	Name     string          `json:"name"`
	Type     string          `json:"type,omitempty"`
	Quantity domain.Quantity `json:"quantity"`
	// AddedDate is an ISO or dd.mm.yyyy date and defaults to today.
	AddedDate string `json:"added_date,omitempty"`
	// ExpiryDate defaults to AddedDate plus the shelf life of Type.
	ExpiryDate string          `json:"expiry_date,omitempty"`
	Price      decimal.Decimal `json:"price"`
}

// InventoryService manages the items of the household inventory
type InventoryService struct {
	repo    repository.InventoryRepository
	budgets *BudgetService
	bus     events.Publisher
	clock   Clock
	logger  *logrus.Logger
}

// NewInventoryService creates a new inventory service instance. budgets may be
// nil, in which case purchases are not booked.
func NewInventoryService(
	repo repository.InventoryRepository,
	budgets *BudgetService,
	bus events.Publisher,
	clock Clock,
	logger *logrus.Logger,
) *InventoryService {
	return &InventoryService{
		repo:    repo,
		budgets: budgets,
		bus:     bus,
		clock:   clock,
		logger:  logger,
	}
}

// AddItem validates and stores a new item. Unparsable dates are reported as
// *domain.InvalidDateError.
func (s *InventoryService) AddItem(ctx context.Context, req AddItemRequest) (*domain.InventoryItem, error) {
	now := s.clock.Now()

	item := &domain.InventoryItem{
		Name:      domain.SanitizeName(req.Name),
		Type:      req.Type,
		Quantity:  req.Quantity,
		AddedDate: today(s.clock),
		Price:     req.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if raw := strings.TrimSpace(req.AddedDate); raw != "" {
		added, err := domain.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		item.AddedDate = added
	}
	if raw := strings.TrimSpace(req.ExpiryDate); raw != "" {
		expiry, err := domain.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		item.ExpiryDate = &expiry
	}

	if item.Type != "" {
		productType, err := s.repo.GetProductType(ctx, item.Type)
		if err != nil {
			if domain.IsNotFound(err) {
				return nil, &domain.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown product type %q", item.Type)}
			}
			return nil, fmt.Errorf("failed to get product type: %w", err)
		}
		if item.ExpiryDate == nil && productType.ShelfDays > 0 {
			expiry := productType.DefaultExpiry(item.AddedDate)
			item.ExpiryDate = &expiry
		}
		if item.Quantity.Unit == "" {
			item.Quantity.Unit = productType.QuantityUnit
		}
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.AddItem(ctx, item); err != nil {
		s.logger.WithError(err).WithField("item_name", item.Name).Error("failed to add inventory item")
		return nil, fmt.Errorf("failed to add item: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"item_id":     item.ID,
		"item_name":   item.Name,
		"expiry_date": item.ExpiryDate,
		"price":       item.Price.String(),
	}).Info("inventory item added")

	s.bus.Publish(ctx, events.ItemAdded, events.ItemPayload{ItemID: item.ID, ItemName: item.Name})

	if s.budgets != nil {
		if _, err := s.budgets.RecordPurchase(ctx, item.Name, item.Price); err != nil {
			// The item is stored; a failed booking must not undo that.
			s.logger.WithError(err).WithField("item_id", item.ID).Error("failed to record purchase")
		}
	}

	return item, nil
}

// GetItem retrieves a single item by ID
func (s *InventoryService) GetItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, err
	}
	return s.repo.GetItem(ctx, id)
}

// UpdateItem replaces the stored fields of an existing item
func (s *InventoryService) UpdateItem(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	existing, err := s.GetItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	updated := *item
	updated.Name = domain.SanitizeName(updated.Name)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = s.clock.Now()
	if updated.AddedDate.IsZero() {
		updated.AddedDate = existing.AddedDate
	}

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateItem(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	s.logger.WithField("item_id", updated.ID).Info("inventory item updated")
	return &updated, nil
}

// DeleteItem removes an item
func (s *InventoryService) DeleteItem(ctx context.Context, id string) error {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"item_id":   id,
		"item_name": item.Name,
	}).Info("inventory item removed")

	s.bus.Publish(ctx, events.ItemRemoved, events.ItemPayload{ItemID: id, ItemName: item.Name})
	return nil
}

// DeleteExpired removes every item that is expired as of today and reports how many were removed.
func (s *InventoryService) DeleteExpired(ctx context.Context) (int, error) {
	expired, err := s.ExpiredItems(ctx)
	if err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	ids := make([]string, len(expired))
	for i, item := range expired {
		ids[i] = item.Item.ID
	}

	deleted, err := s.repo.DeleteItems(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired items: %w", err)
	}

	s.logger.WithField("count", deleted).Info("expired items removed")
	s.bus.Publish(ctx, events.ItemsExpired, events.ItemsExpiredPayload{ItemIDs: ids})

	return deleted, nil
}

// DeleteAll empties the inventory
func (s *InventoryService) DeleteAll(ctx context.Context) (int, error) {
	items, err := s.repo.GetAllItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list items: %w", err)
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	deleted, err := s.repo.DeleteItems(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete items: %w", err)
	}

	s.logger.WithField("count", deleted).Info("inventory cleared")
	return deleted, nil
}

// ListView builds the filtered, paginated inventory page as of today.
func (s *InventoryService) ListView(ctx context.Context, state view.ViewState) (view.PagedResult[view.AnnotatedItem], error) {
	items, err := s.loadItems(ctx)
	if err != nil {
		return view.PagedResult[view.AnnotatedItem]{}, err
	}
	return view.BuildView(items, today(s.clock), state), nil
}

// Summary counts the items of the whole inventory per status.
func (s *InventoryService) Summary(ctx context.Context) (view.StatusCounts, error) {
	items, err := s.loadItems(ctx)
	if err != nil {
		return view.StatusCounts{}, err
	}
	return view.Summary(view.Annotate(today(s.clock), items)), nil
}

// ExpiredItems returns the expired items in insertion order.
func (s *InventoryService) ExpiredItems(ctx context.Context) ([]view.AnnotatedItem, error) {
	return s.itemsWithFilter(ctx, domain.FilterExpired)
}

// ExpiringItems returns the items that expire today or tomorrow.
func (s *InventoryService) ExpiringItems(ctx context.Context) ([]view.AnnotatedItem, error) {
	return s.itemsWithFilter(ctx, domain.FilterRecommend)
}

// AvailableItems returns the items that are not expired as of today, in
// insertion order.
func (s *InventoryService) AvailableItems(ctx context.Context) ([]view.AnnotatedItem, error) {
	items, err := s.loadItems(ctx)
	if err != nil {
		return nil, err
	}

	annotated := view.Annotate(today(s.clock), items)
	available := annotated[:0]
	for _, item := range annotated {
		if item.Status != domain.StatusExpired {
			available = append(available, item)
		}
	}
	return available, nil
}

// ListProductTypes returns all known product types
func (s *InventoryService) ListProductTypes(ctx context.Context) ([]*domain.ProductType, error) {
	return s.repo.ListProductTypes(ctx)
}

// AddProductType registers a product type
func (s *InventoryService) AddProductType(ctx context.Context, productType *domain.ProductType) (*domain.ProductType, error) {
	productType.Name = domain.SanitizeName(productType.Name)
	if productType.ID != "" {
		if err := domain.ValidateID(productType.ID); err != nil {
			return nil, err
		}
	}

	switch {
	case productType.Name == "":
		return nil, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	case productType.ShelfDays < 0:
		return nil, &domain.ValidationError{Field: "shelf_days", Reason: "must not be negative"}
	}

	if err := s.repo.AddProductType(ctx, productType); err != nil {
		return nil, fmt.Errorf("failed to add product type: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"type_id":    productType.ID,
		"type_name":  productType.Name,
		"shelf_days": productType.ShelfDays,
	}).Info("product type added")

	return productType, nil
}

func (s *InventoryService) itemsWithFilter(ctx context.Context, filter domain.FilterTag) ([]view.AnnotatedItem, error) {
	items, err := s.loadItems(ctx)
	if err != nil {
		return nil, err
	}
	return view.Filter(view.Annotate(today(s.clock), items), "", filter), nil
}

func (s *InventoryService) loadItems(ctx context.Context) ([]domain.InventoryItem, error) {
	stored, err := s.repo.GetAllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]domain.InventoryItem, len(stored))
	for i, item := range stored {
		items[i] = *item
	}
	return items, nil
}
