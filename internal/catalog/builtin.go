package catalog

import (
	"context"

	"pizzeria/internal/models"
)

var builtinMenu = []models.MenuItem{
	{ID: "margherita", Name: "Margherita", Description: "San Marzano tomatoes, fior di latte, basil", Price: 68, Image: "img/margherita.jpg", Category: models.CategoryPizza},
	{ID: "diavola", Name: "Diavola", Description: "Spicy salami, mozzarella, chili oil", Price: 78, Image: "img/diavola.jpg", Category: models.CategoryPizza},
	{ID: "quattro-formaggi", Name: "Quattro Formaggi", Description: "Mozzarella, gorgonzola, parmigiano, taleggio", Price: 82, Image: "img/quattro-formaggi.jpg", Category: models.CategoryPizza},
	{ID: "prosciutto-funghi", Name: "Prosciutto e Funghi", Description: "Cooked ham, champignons, mozzarella", Price: 79, Image: "img/prosciutto-funghi.jpg", Category: models.CategoryPizza},
	{ID: "marinara", Name: "Marinara", Description: "Tomato, garlic, oregano, olive oil", Price: 54, Image: "img/marinara.jpg", Category: models.CategoryPizza},
	{ID: "aranciata", Name: "Aranciata", Description: "Sicilian orange soda", Price: 14, Image: "img/aranciata.jpg", Category: models.CategoryDrink},
	{ID: "limonata", Name: "Limonata", Description: "House lemonade with mint", Price: 16, Image: "img/limonata.jpg", Category: models.CategoryDrink},
	{ID: "chianti", Name: "Chianti (glass)", Description: "Tuscan red, 150 ml", Price: 28, Image: "img/chianti.jpg", Category: models.CategoryDrink},
	{ID: "tiramisu", Name: "Tiramisù", Description: "Mascarpone, espresso, cocoa", Price: 32, Image: "img/tiramisu.jpg", Category: models.CategoryDessert},
	{ID: "panna-cotta", Name: "Panna Cotta", Description: "Vanilla cream with berry coulis", Price: 28, Image: "img/panna-cotta.jpg", Category: models.CategoryDessert},
}

// Builtin is the menu shipped with the binary
type Builtin struct{}

// LoadMenu returns a copy of the shipped menu
func (Builtin) LoadMenu(context.Context) ([]models.MenuItem, error) {
	return BuiltinItems(), nil
}

// BuiltinItems returns a copy of the shipped menu
func BuiltinItems() []models.MenuItem {
	out := make([]models.MenuItem, len(builtinMenu))
	copy(out, builtinMenu)
	return out
}

// Default returns a catalog of the shipped menu
func Default() *Catalog {
	return MustNew(builtinMenu)
}
