package domain

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Quantity is an amount in a unit, e.g. 200 g or 1 pcs.
type Quantity struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

func (q Quantity) String() string {
	amount := strconv.FormatFloat(q.Amount, 'f', -1, 64)
	if q.Unit == "" {
		return amount
	}
	return amount + " " + q.Unit
}

// InventoryItem is a product stored in the household fridge or pantry.
type InventoryItem struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Quantity   Quantity        `json:"quantity"`
	AddedDate  Date            `json:"added_date"`
	ExpiryDate *Date           `json:"expiry_date,omitempty"`
	Price      decimal.Decimal `json:"price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Validate checks the fields every stored item must satisfy.
func (i *InventoryItem) Validate() error {
	switch {
	case strings.TrimSpace(i.Name) == "":
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	case utf8.RuneCountInString(i.Name) > MaxNameLength:
		return &ValidationError{Field: "name", Reason: "too long"}
	case i.Quantity.Amount <= 0:
		return &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	case i.Price.IsNegative():
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	case i.AddedDate.IsZero():
		return &ValidationError{Field: "added_date", Reason: "must be set"}
	case i.ExpiryDate != nil && i.ExpiryDate.Before(i.AddedDate):
		return &ValidationError{Field: "expiry_date", Reason: "must not precede the added date"}
	}
	return nil
}

// ProductType groups items and carries the default shelf life of its products.
type ProductType struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ShelfDays    int    `json:"shelf_days"`
	QuantityUnit string `json:"quantity_unit"`
}

// DefaultExpiry returns the expiry date of a product of this type added on added.
func (t *ProductType) DefaultExpiry(added Date) Date {
	return added.AddDays(t.ShelfDays)
}

// MaxNameLength bounds item and product type names.
const MaxNameLength = 256
