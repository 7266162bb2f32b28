package model

import "time"

// BuiltinCategories is the fixed category list, in display and
// statistics order. Custom categories come after it and never
// participate in grouped statistics.
var BuiltinCategories = []string{
	"Fruits & Légumes",
	"Viandes & Poissons",
	"Produits Laitiers",
	"Épicerie",
	"Surgelés",
	"Hygiène & Beauté",
	"Entretien",
	"Autres",
}

type CustomCategory struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// IsBuiltinCategory reports whether name matches a built-in category
// exactly (case-sensitive).
func IsBuiltinCategory(name string) bool {
	for _, c := range BuiltinCategories {
		if c == name {
			return true
		}
	}
	return false
}

// CategoryExists reports whether name is valid at creation time:
// either a built-in category or one of the given custom categories.
func CategoryExists(name string, custom []CustomCategory) bool {
	if IsBuiltinCategory(name) {
		return true
	}
	for _, c := range custom {
		if c.Name == name {
			return true
		}
	}
	return false
}
