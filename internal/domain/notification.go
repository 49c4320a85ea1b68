package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotificationType is the three-letter code of a notification.
type NotificationType string

const (
	NotificationExpired  NotificationType = "EXP"
	NotificationExpiring NotificationType = "SON"
	NotificationBudget   NotificationType = "BGT"
)

// MaxNotificationLength bounds the message, in runes.
const MaxNotificationLength = 160

// Notification tells the household about an item or the budget.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	ItemID    string           `json:"item_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// Budget tracks household spending against a limit.
type Budget struct {
	Total     decimal.Decimal `json:"total"`
	Spent     decimal.Decimal `json:"spent"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Remaining returns the unspent part of the budget.
func (b *Budget) Remaining() decimal.Decimal {
	return b.Total.Sub(b.Spent)
}

// CanAfford reports whether amount fits into the remaining budget.
func (b *Budget) CanAfford(amount decimal.Decimal) bool {
	return !b.Remaining().Sub(amount).IsNegative()
}
