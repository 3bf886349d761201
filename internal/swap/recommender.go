// Package swap proposes lower-carbon substitutes for a logged food.
//
// Recommendations come from a fixed, ordered substitution table and are
// fully deterministic: the same name, portion and preference always yield
// the same suggestions.
package swap

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rshade/ecoplate/internal/greenops"
)

// MaxSuggestions is the maximum number of suggestions Recommend returns.
const MaxSuggestions = 3

// Suggestion is one proposed substitute for a food.
type Suggestion struct {
	OriginalFood        string            `json:"original_food"`
	RecommendedFood     string            `json:"recommended_food"`
	Reduction           float64           `json:"carbon_reduction"`
	ReductionPercentage float64           `json:"carbon_reduction_percentage"`
	Message             string            `json:"recommendation_message"`
	Category            greenops.Category `json:"category"`
}

type substitute struct {
	name string
	// perHundred is the kg CO2e saved per 100 g of the original food.
	perHundred float64
	message    string
}

type substitution struct {
	key         string
	substitutes []substitute
}

// substitutionTable is matched in order; the first key contained in the food
// name wins.
//
//nolint:gochecknoglobals // Read-only reference data.
var substitutionTable = []substitution{
	{"소고기", []substitute{
		{"닭고기", 1.9, "소고기 대신 닭고기는 어떠세요? 탄소 배출량을 76% 줄일 수 있어요!"},
		{"두부", 2.3, "소고기 대신 두부로 바꿔보세요! 탄소 배출량을 92% 줄일 수 있어요!"},
		{"콩고기", 2.2, "식물성 콩고기로 바꿔보세요! 맛은 비슷하면서 탄소 배출량을 88% 줄일 수 있어요!"},
	}},
	{"한우", []substitute{
		{"닭고기", 2.2, "한우 대신 닭고기는 어떠세요? 탄소 배출량을 78% 줄일 수 있어요!"},
		{"생선", 2.3, "한우 대신 생선요리는 어떠세요? 탄소 배출량을 82% 줄일 수 있어요!"},
	}},
	{"삼겹살", []substitute{
		{"닭가슴살", 0.8, "삼겹살 대신 닭가슴살은 어떠세요? 탄소 배출량을 57% 줄일 수 있어요!"},
		{"연어", 0.8, "삼겹살 대신 연어구이는 어떠세요? 탄소 배출량을 57% 줄일 수 있어요!"},
	}},
	{"치즈", []substitute{
		{"아몬드 치즈", 0.6, "일반 치즈 대신 아몬드 치즈는 어떠세요? 탄소 배출량을 60% 줄일 수 있어요!"},
		{"두부", 0.8, "치즈 대신 두부요리는 어떠세요? 탄소 배출량을 80% 줄일 수 있어요!"},
	}},
	{"밥", []substitute{
		{"현미밥", 0.1, "흰쌀밥 대신 현미밥은 어떠세요? 탄소 배출량을 33% 줄이고 영양도 더 좋아요!"},
		{"콩밥", 0.05, "밥에 콩을 넣어보세요! 탄소 배출량을 17% 줄이고 단백질도 보충할 수 있어요!"},
	}},
	{"새우", []substitute{
		{"생선", 1.3, "새우 대신 생선요리는 어떠세요? 탄소 배출량을 72% 줄일 수 있어요!"},
		{"조개", 1.5, "새우 대신 조개요리는 어떠세요? 탄소 배출량을 83% 줄일 수 있어요!"},
	}},
}

// genericSubstitutes are offered when the food matches no table key, or when
// the preference filters out every substitute of the matched key.
func genericSubstitutes(food string) []substitute {
	return []substitute{
		{"채소 샐러드", 0.4, fmt.Sprintf("%s 대신 신선한 채소 샐러드는 어떠세요? 탄소 배출량을 크게 줄일 수 있어요!", food)},
		{"두부 요리", 0.3, fmt.Sprintf("%s 대신 두부 요리는 어떠세요? 탄소 배출량을 줄이고 건강도 챙길 수 있어요!", food)},
	}
}

// Recommend returns up to MaxSuggestions substitutes for portionGrams of food,
// in table order. Reductions scale the substitute's per-100 g saving by the
// portion; percentages are relative to greenops.EstimateFood and are 0 when
// the original estimate is 0.
func Recommend(food string, portionGrams float64, pref DietaryPreference) []Suggestion {
	original := greenops.EstimateFood(food, portionGrams)

	var out []Suggestion
	for _, row := range substitutionTable {
		if !strings.Contains(food, row.key) {
			continue
		}
		for _, s := range row.substitutes {
			if pref.excludes(s.name) {
				continue
			}
			out = append(out, suggest(food, portionGrams, original, s, greenops.Categorize(s.name)))
		}
		log.Debug().
			Str("component", "swap").
			Str("food", food).
			Str("key", row.key).
			Str("preference", string(pref)).
			Int("suggestions", len(out)).
			Msg("substitution table matched")
		break
	}

	if len(out) == 0 {
		for _, s := range genericSubstitutes(food) {
			out = append(out, suggest(food, portionGrams, original, s, greenops.CategoryVegetable))
		}
	}

	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

func suggest(food string, portionGrams, original float64, s substitute, cat greenops.Category) Suggestion {
	reduction := portionGrams / greenops.GramsPerHundred * s.perHundred

	var pct float64
	if original > 0 {
		pct = greenops.Round(reduction/original*100, 1)
	}

	return Suggestion{
		OriginalFood:        food,
		RecommendedFood:     s.name,
		Reduction:           greenops.Round(reduction, greenops.ResultPrecision),
		ReductionPercentage: pct,
		Message:             s.message,
		Category:            cat,
	}
}
