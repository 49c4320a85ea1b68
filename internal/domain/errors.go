package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrBudgetNotFound is returned when no budget has been created yet.
	ErrBudgetNotFound = errors.New("budget not found")
	// ErrBudgetExceeded is returned when an expense would drive the remaining budget below zero.
	ErrBudgetExceeded = errors.New("not enough budget remaining")
	// ErrInvalidBudget is returned for a non-positive total or a limit below the spent amount.
	ErrInvalidBudget = errors.New("invalid budget")
)

// InvalidDateError is returned when a date string cannot be parsed.
type InvalidDateError struct {
	Value string
	Err   error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q: %v", e.Value, e.Err)
}

func (e *InvalidDateError) Unwrap() error {
	return e.Err
}

// InventoryItemNotFoundError represents an error when an item is not found
type InventoryItemNotFoundError struct {
	ID string
}

func (e *InventoryItemNotFoundError) Error() string {
	return fmt.Sprintf("inventory item with ID '%s' not found", e.ID)
}

// ProductTypeNotFoundError represents an error when a product type is not found
type ProductTypeNotFoundError struct {
	ID string
}

func (e *ProductTypeNotFoundError) Error() string {
	return fmt.Sprintf("product type with ID '%s' not found", e.ID)
}

// NotificationNotFoundError represents an error when a notification is not found
type NotificationNotFoundError struct {
	ID string
}

func (e *NotificationNotFoundError) Error() string {
	return fmt.Sprintf("notification with ID '%s' not found", e.ID)
}

// RecipeNotFoundError represents an error when a recipe is not found
type RecipeNotFoundError struct {
	ID string
}

func (e *RecipeNotFoundError) Error() string {
	return fmt.Sprintf("recipe with ID '%s' not found", e.ID)
}

// ShoppingEntryNotFoundError represents an error when a shopping list entry is not found
type ShoppingEntryNotFoundError struct {
	ID string
}

func (e *ShoppingEntryNotFoundError) Error() string {
	return fmt.Sprintf("shopping list entry with ID '%s' not found", e.ID)
}

// ValidationError reports a rejected field value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsNotFound reports whether err is any of the not-found errors.
func IsNotFound(err error) bool {
	var (
		itemErr   *InventoryItemNotFoundError
		typeErr   *ProductTypeNotFoundError
		notifErr  *NotificationNotFoundError
		recipeErr *RecipeNotFoundError
		entryErr  *ShoppingEntryNotFoundError
	)
	return errors.As(err, &itemErr) ||
		errors.As(err, &typeErr) ||
		errors.As(err, &notifErr) ||
		errors.As(err, &recipeErr) ||
		errors.As(err, &entryErr) ||
		errors.Is(err, ErrBudgetNotFound)
}
