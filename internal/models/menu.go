package models

// Category represents the menu section an item belongs to
type Category string

const (
	CategoryPizza   Category = "pizza"
	CategoryDrink   Category = "drink"
	CategoryDessert Category = "dessert"
)

// Categories lists the menu sections in display order
var Categories = []Category{CategoryPizza, CategoryDrink, CategoryDessert}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryPizza, CategoryDrink, CategoryDessert:
		return true
	default:
		return false
	}
}

// MenuItem represents one orderable catalog entry. Price is in whole currency units.
type MenuItem struct {
	ID          string   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Description string   `json:"description" db:"description"`
	Price       int64    `json:"price" db:"price"`
	Image       string   `json:"image" db:"image"`
	Category    Category `json:"category" db:"category"`
}
