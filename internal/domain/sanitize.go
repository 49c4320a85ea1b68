package domain

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxIDLength bounds item, product type and notification IDs.
const MaxIDLength = 128

// safeIDPattern allows UUIDs and slug-style IDs such as "milk".
var safeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)

// SanitizeName removes control characters, collapses runs of whitespace and
// trims the result. Length limits are left to Validate.
func SanitizeName(name string) string {
	if name == "" {
		return name
	}

	var b strings.Builder
	b.Grow(len(name))

	space := false
	for _, r := range name {
		switch {
		case unicode.IsSpace(r):
			space = true
			continue
		case unicode.IsControl(r):
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}

	return b.String()
}

// ValidateID checks that id is safe to embed in a storage key.
func ValidateID(id string) error {
	switch {
	case id == "":
		return &ValidationError{Field: "id", Reason: "is required"}
	case len(id) > MaxIDLength:
		return &ValidationError{Field: "id", Reason: "too long"}
	case !safeIDPattern.MatchString(id):
		return &ValidationError{Field: "id", Reason: "contains invalid characters"}
	}
	return nil
}
