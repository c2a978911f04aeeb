package validation

import (
	"fmt"
	"unicode/utf8"

	"pizzeria/internal/models"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateMenu validates every entry and rejects duplicate identifiers
func ValidateMenu(items []models.MenuItem) error {
	seen := make(map[string]int, len(items))
	for i, item := range items {
		if err := ValidateMenuItem(item, i); err != nil {
			return err
		}
		if first, dup := seen[item.ID]; dup {
			return ValidationError{
				Field:   fmt.Sprintf("items[%d].id", i),
				Message: fmt.Sprintf("duplicate id %q (first seen at items[%d])", item.ID, first),
			}
		}
		seen[item.ID] = i
	}
	return nil
}

// ValidateMenuItem validates a single catalog entry at the given position
func ValidateMenuItem(item models.MenuItem, index int) error {
	if item.ID == "" {
		return ValidationError{
			Field:   fmt.Sprintf("items[%d].id", index),
			Message: "item id is required",
		}
	}

	if item.Name == "" {
		return ValidationError{
			Field:   fmt.Sprintf("items[%d].name", index),
			Message: "item name is required",
		}
	}

	if utf8.RuneCountInString(item.Name) > 50 {
		return ValidationError{
			Field:   fmt.Sprintf("items[%d].name", index),
			Message: "item name must be less than 50 characters",
		}
	}

	if item.Price < 0 {
		return ValidationError{
			Field:   fmt.Sprintf("items[%d].price", index),
			Message: "item price must not be negative",
		}
	}

	if !item.Category.Valid() {
		return ValidationError{
			Field:   fmt.Sprintf("items[%d].category", index),
			Message: "category must be one of: pizza, drink, dessert",
		}
	}
	return nil
}
