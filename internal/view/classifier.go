package view

import (
	"strings"

	"github.com/DaDevFox/fridgemate/internal/domain"
)

// ExpiringSoonDays is the largest number of days remaining that still counts as expiring soon.
const ExpiringSoonDays = 1

// Classify derives the status of an item expiring on expiry as seen on today.
// Items without an expiry date are treated as non-perishable.
func Classify(today domain.Date, expiry *domain.Date) domain.StatusTag {
	if expiry == nil {
		return domain.StatusFresh
	}
	return StatusForDays(today.DaysUntil(*expiry))
}

// StatusForDays maps whole calendar days remaining to a status.
func StatusForDays(daysRemaining int) domain.StatusTag {
	switch {
	case daysRemaining < 0:
		return domain.StatusExpired
	case daysRemaining <= ExpiringSoonDays:
		return domain.StatusExpiringSoon
	default:
		return domain.StatusFresh
	}
}

// ClassifyRaw parses an expiry date string and classifies it. An empty string
// means no expiry date. Unparsable input yields *domain.InvalidDateError unchanged.
func ClassifyRaw(today domain.Date, rawExpiry string) (domain.StatusTag, error) {
	if strings.TrimSpace(rawExpiry) == "" {
		return Classify(today, nil), nil
	}
	expiry, err := domain.ParseDate(rawExpiry)
	if err != nil {
		return 0, err
	}
	return Classify(today, &expiry), nil
}
