package greenops

import "strings"

type categoryKeywords struct {
	category Category
	keywords []string
}

// categoryTable is checked in order; the first category with a keyword
// contained in the food name wins.
//
//nolint:gochecknoglobals // Read-only reference data.
var categoryTable = []categoryKeywords{
	{CategoryMeat, []string{"소고기", "돼지고기", "닭고기", "양고기", "한우", "삼겹살", "치킨"}},
	{CategorySeafood, []string{"생선", "새우", "게", "조개", "굴", "연어", "참치"}},
	{CategoryDairy, []string{"우유", "치즈", "버터", "요거트", "달걀"}},
	{CategoryGrain, []string{"쌀", "밥", "빵", "면", "파스타"}},
	{CategoryVegetable, []string{"채소", "상추", "양배추", "브로콜리", "당근", "감자"}},
	{CategoryFruit, []string{"과일", "사과", "바나나", "오렌지", "포도", "딸기"}},
	{CategoryOther, []string{"두부", "콩", "커피", "차", "견과류"}},
}

// Categorize assigns a food category by keyword. Names matching no keyword
// are CategoryOther.
func Categorize(name string) Category {
	lower := strings.ToLower(name)
	for _, c := range categoryTable {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.category
			}
		}
	}
	return CategoryOther
}

// RateSustainability rates an emissions value in kg CO2e:
// below 0.5 is HIGH, below 1.5 is MEDIUM, anything else LOW.
func RateSustainability(kg float64) Rating {
	switch {
	case kg < HighSustainabilityBelow:
		return RatingHigh
	case kg < MediumSustainabilityBelow:
		return RatingMedium
	default:
		return RatingLow
	}
}
