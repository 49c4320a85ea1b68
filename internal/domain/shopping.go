package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxShoppingEntryLength bounds a shopping list entry, in runes.
const MaxShoppingEntryLength = 20

// ShoppingEntry is one line of the household shopping list.
type ShoppingEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Bought    bool      `json:"bought"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidateShoppingNote checks a raw note before it becomes an entry. Notes are
// single-line.
func ValidateShoppingNote(note string) error {
	switch {
	case strings.TrimSpace(note) == "":
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	case strings.ContainsAny(note, "\r\n"):
		return &ValidationError{Field: "name", Reason: "must be a single line"}
	case utf8.RuneCountInString(note) > MaxShoppingEntryLength:
		return &ValidationError{Field: "name", Reason: "too long"}
	}
	return nil
}
