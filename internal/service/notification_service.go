package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/DaDevFox/fridgemate/internal/domain"
	"github.com/DaDevFox/fridgemate/internal/repository"
	"github.com/DaDevFox/fridgemate/internal/view"
)

// DefaultRetention is how long notifications are kept by Cleanup.
const DefaultRetention = 7 * 24 * time.Hour

// NotificationService turns item statuses into household notifications
type NotificationService struct {
	repo   repository.InventoryRepository
	clock  Clock
	logger *logrus.Logger
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(repo repository.InventoryRepository, clock Clock, logger *logrus.Logger) *NotificationService {
	return &NotificationService{
		repo:   repo,
		clock:  clock,
		logger: logger,
	}
}

// Scan creates an EXP notification for every expired item and a SON
// notification for every item expiring soon, at most one per item and type per day.
func (s *NotificationService) Scan(ctx context.Context) ([]*domain.Notification, error) {
	stored, err := s.repo.GetAllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	sentToday, err := s.repo.ListNotifications(ctx, repository.NotificationFilters{Since: startOfDay(s.clock)})
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	type key struct {
		itemID string
		typ    domain.NotificationType
	}
	seen := make(map[key]bool, len(sentToday))
	for _, n := range sentToday {
		seen[key{n.ItemID, n.Type}] = true
	}

	now := s.clock.Now()
	day := today(s.clock)

	var created []*domain.Notification
	for _, item := range stored {
		var (
			typ     domain.NotificationType
			message string
		)
		switch view.Classify(day, item.ExpiryDate) {
		case domain.StatusExpired:
			typ = domain.NotificationExpired
			message = fmt.Sprintf("Срок годности продукта «%s» истёк %s", item.Name, formatDate(item.ExpiryDate))
		case domain.StatusExpiringSoon:
			typ = domain.NotificationExpiring
			message = fmt.Sprintf("Срок годности продукта «%s» истекает %s", item.Name, formatDate(item.ExpiryDate))
		default:
			continue
		}

		if seen[key{item.ID, typ}] {
			continue
		}

		notification := &domain.Notification{
			Type:      typ,
			Message:   truncateMessage(message),
			ItemID:    item.ID,
			CreatedAt: now,
		}
		if err := s.repo.AddNotification(ctx, notification); err != nil {
			return created, fmt.Errorf("failed to add notification: %w", err)
		}
		seen[key{item.ID, typ}] = true
		created = append(created, notification)
	}

	if len(created) > 0 {
		s.logger.WithField("count", len(created)).Info("notifications created")
	}

	return created, nil
}

// List returns notifications newest first. An empty type returns all of them.
func (s *NotificationService) List(ctx context.Context, typ domain.NotificationType) ([]*domain.Notification, error) {
	notifications, err := s.repo.ListNotifications(ctx, repository.NotificationFilters{Type: typ})
	if err != nil {
		return nil, err
	}
	slices.Reverse(notifications)
	return notifications, nil
}

// Delete removes a single notification
func (s *NotificationService) Delete(ctx context.Context, id string) error {
	if err := domain.ValidateID(id); err != nil {
		return err
	}
	return s.repo.DeleteNotification(ctx, id)
}

// Cleanup removes notifications older than retention. A non-positive
// retention means DefaultRetention.
func (s *NotificationService) Cleanup(ctx context.Context, retention time.Duration) (int, error) {
	if retention <= 0 {
		retention = DefaultRetention
	}

	removed, err := s.repo.DeleteNotificationsBefore(ctx, s.clock.Now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("failed to clean up notifications: %w", err)
	}

	if removed > 0 {
		s.logger.WithField("count", removed).Info("old notifications removed")
	}
	return removed, nil
}

// Run scans and cleans up immediately and then on every interval until ctx is done.
func (s *NotificationService) Run(ctx context.Context, interval, retention time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("notification interval must be positive, got %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.tick(ctx, retention)

		select {
		case <-ctx.Done():
			s.logger.Info("notification loop stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (s *NotificationService) tick(ctx context.Context, retention time.Duration) {
	if _, err := s.Scan(ctx); err != nil {
		s.logger.WithError(err).Error("notification scan failed")
	}
	if _, err := s.Cleanup(ctx, retention); err != nil {
		s.logger.WithError(err).Error("notification cleanup failed")
	}
}

func formatDate(date *domain.Date) string {
	if date == nil {
		return ""
	}
	return date.Time().Format(domain.DisplayDateLayout)
}

// truncateMessage cuts message to MaxNotificationLength runes.
func truncateMessage(message string) string {
	runes := []rune(message)
	if len(runes) <= domain.MaxNotificationLength {
		return message
	}
	return string(runes[:domain.MaxNotificationLength-1]) + "…"
}
