package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxRecipeNameLength bounds recipe names, in runes.
	MaxRecipeNameLength = 50
	// MaxIngredientsLength bounds the ingredient list, in runes.
	MaxIngredientsLength = 1000
	// MaxInstructionsLength bounds the cooking instructions, in runes.
	MaxInstructionsLength = 100000
)

// Recipe is a dish the household can cook. Ingredients is a comma or
// semicolon separated list such as "молоко, яйца; мука".
type Recipe struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Ingredients  string    `json:"ingredients"`
	Serving      int       `json:"serving"`
	Instructions string    `json:"instructions"`
	CreatedAt    time.Time `json:"created_at"`
}

// IngredientList splits Ingredients into trimmed, non-empty names.
func (r *Recipe) IngredientList() []string {
	return splitIngredients(r.Ingredients)
}

// Validate checks the fields every stored recipe must satisfy.
func (r *Recipe) Validate() error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	case utf8.RuneCountInString(r.Name) > MaxRecipeNameLength:
		return &ValidationError{Field: "name", Reason: "too long"}
	case strings.TrimSpace(r.Ingredients) == "":
		return &ValidationError{Field: "ingredients", Reason: "must not be empty"}
	case utf8.RuneCountInString(r.Ingredients) > MaxIngredientsLength:
		return &ValidationError{Field: "ingredients", Reason: "too long"}
	case !validIngredients(r.Ingredients):
		return &ValidationError{Field: "ingredients", Reason: "must be words separated by commas or semicolons"}
	case r.Serving <= 0:
		return &ValidationError{Field: "serving", Reason: "must be greater than zero"}
	case strings.TrimSpace(r.Instructions) == "":
		return &ValidationError{Field: "instructions", Reason: "must not be empty"}
	case utf8.RuneCountInString(r.Instructions) > MaxInstructionsLength:
		return &ValidationError{Field: "instructions", Reason: "too long"}
	}
	return nil
}

func isIngredientSeparator(r rune) bool {
	return r == ',' || r == ';'
}

func splitIngredients(list string) []string {
	var names []string
	for _, part := range strings.FieldsFunc(list, isIngredientSeparator) {
		if name := strings.Join(strings.Fields(part), " "); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// validIngredients accepts letters, digits, spaces, hyphens and separators,
// with no empty entry between two separators.
func validIngredients(list string) bool {
	for _, r := range list {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' || r == '_' || isIngredientSeparator(r) {
			continue
		}
		return false
	}

	parts := strings.FieldsFunc(strings.TrimSpace(list), isIngredientSeparator)
	if len(parts) == 0 {
		return false
	}
	separators := strings.Count(list, ",") + strings.Count(list, ";")
	if separators >= len(parts) {
		// A leading, trailing or doubled separator leaves an empty entry.
		return false
	}
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return false
		}
	}
	return true
}
