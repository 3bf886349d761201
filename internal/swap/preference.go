package swap

import "strings"

// DietaryPreference restricts which substitutes may be suggested.
type DietaryPreference string

// Dietary preferences. PreferenceUnrecognized is the explicit result of
// ParseDietaryPreference for unknown keys and behaves like omnivore.
const (
	PreferenceOmnivore     DietaryPreference = "omnivore"
	PreferenceVegetarian   DietaryPreference = "vegetarian"
	PreferenceVegan        DietaryPreference = "vegan"
	PreferencePescatarian  DietaryPreference = "pescatarian"
	PreferenceUnrecognized DietaryPreference = "unrecognized"
)

// ParseDietaryPreference maps a key to a DietaryPreference. An empty key is
// omnivore; unknown keys yield PreferenceUnrecognized.
func ParseDietaryPreference(s string) DietaryPreference {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "omnivore":
		return PreferenceOmnivore
	case "vegetarian":
		return PreferenceVegetarian
	case "vegan":
		return PreferenceVegan
	case "pescatarian":
		return PreferencePescatarian
	default:
		return PreferenceUnrecognized
	}
}

// animalSubstitutes are substitutes excluded for plant-based diets.
//
//nolint:gochecknoglobals // Read-only reference data.
var animalSubstitutes = []string{"닭고기", "생선", "연어", "닭가슴살"}

// excludes reports whether a substitute is excluded under p.
func (p DietaryPreference) excludes(substitute string) bool {
	if p != PreferenceVegan && p != PreferenceVegetarian {
		return false
	}
	for _, s := range animalSubstitutes {
		if s == substitute {
			return true
		}
	}
	return false
}
