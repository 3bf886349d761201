package greenops

// FactorEntry pairs a lookup key with an emission factor. Tables are ordered
// slices of FactorEntry so that first-match semantics do not depend on map
// iteration order.
type FactorEntry struct {
	Key    string
	Factor float64
}

// foodTable lists Korean dishes in kg CO2e per 200 g serving, compiled from
// domestic and international LCA studies. Order is significant for substring
// matching.
//
//nolint:gochecknoglobals // Read-only reference data.
var foodTable = []FactorEntry{
	// Soups, high carbon
	{"설렁탕", 10.01}, {"갈비탕", 5.05}, {"곰탕", 8.54}, {"갈비찜", 12.3},
	{"꼬리곰탕", 9.87}, {"사골국", 7.23}, {"육개장", 4.82},
	// Soups, medium carbon
	{"닭곰탕", 2.01}, {"삼계탕", 2.45}, {"닭개장", 1.89}, {"추어탕", 1.67},
	{"해장국", 2.34}, {"알탕", 1.92},
	// Soups and stews, low carbon
	{"김치찌개", 1.2}, {"된장찌개", 0.8}, {"순두부찌개", 0.6}, {"미역국", 0.3},
	{"무국", 0.25}, {"콩나물국", 0.28}, {"북엇국", 0.45}, {"시금치국", 0.22},
	// Grilled, high carbon
	{"불고기", 8.5}, {"갈비", 12.3}, {"LA갈비", 11.8}, {"돼지갈비", 7.2},
	{"삼겹살", 6.8}, {"목살", 5.9}, {"등심", 9.2}, {"안심", 8.7}, {"한우구이", 15.6},
	// Grilled and stir-fried, medium carbon
	{"닭갈비", 2.1}, {"닭불고기", 1.8}, {"제육볶음", 4.2}, {"오징어볶음", 1.3},
	{"낙지볶음", 1.5}, {"생선구이", 1.2}, {"고등어구이", 1.0}, {"삼치구이", 1.1},
	// Rice dishes
	{"비빔밥", 1.5}, {"김치볶음밥", 2.1}, {"볶음밥", 1.8}, {"오므라이스", 2.3},
	{"카레라이스", 2.7}, {"덮밥", 3.2}, {"불고기덮밥", 6.8}, {"치킨마요덮밥", 3.9},
	// Noodles
	{"냉면", 1.8}, {"물냉면", 1.6}, {"비빔냉면", 1.9}, {"짜장면", 2.5},
	{"짬뽕", 3.2}, {"우동", 1.4}, {"라면", 1.1}, {"잔치국수", 0.9},
	{"칼국수", 1.3}, {"수제비", 1.0},
	// Side dishes
	{"김치", 0.1}, {"깍두기", 0.12}, {"나물반찬", 0.08}, {"콩나물무침", 0.06},
	{"시금치나물", 0.05}, {"도라지나물", 0.07}, {"고사리나물", 0.09}, {"버섯볶음", 0.11},
	// Braised and steamed
	{"찜닭", 2.8}, {"아귀찜", 1.9}, {"코다리찜", 1.4}, {"돼지족발", 5.6}, {"보쌈", 4.8},
	// Hot pots and braises
	{"부대찌개", 3.4}, {"청국장", 0.7}, {"고등어조림", 1.1}, {"갈치조림", 1.3}, {"두부조림", 0.4},
	// Seafood
	{"회", 2.1}, {"초밥", 1.8}, {"연어회", 2.3}, {"광어회", 1.9},
	{"새우", 3.2}, {"게", 2.8}, {"조개찜", 1.6}, {"굴", 0.8},
	// Chicken and western
	{"후라이드치킨", 3.1}, {"양념치킨", 3.3}, {"간장치킨", 3.0}, {"파스타", 2.1},
	{"피자", 4.5}, {"햄버거", 5.2}, {"스테이크", 18.7},
	// Desserts and drinks
	{"팥빙수", 0.8}, {"아이스크림", 1.2}, {"케이크", 2.1}, {"커피", 0.3},
	{"녹차", 0.05}, {"주스", 0.4},
	// Snacks
	{"김밥", 1.3}, {"토스트", 1.1}, {"샌드위치", 1.8}, {"핫도그", 2.3},
	{"떡볶이", 0.9}, {"순대", 2.1}, {"어묵", 0.7}, {"붕어빵", 0.4},
}

// foodIndex is the exact-match index over foodTable.
//
//nolint:gochecknoglobals // Built once from foodTable.
var foodIndex = buildIndex(foodTable)

// keywordFactorsPer100g is the category fallback in kg CO2e per 100 g.
// The first keyword contained in the identifier wins.
//
//nolint:gochecknoglobals // Read-only reference data.
var keywordFactorsPer100g = []FactorEntry{
	// Meat
	{"소", 2.5}, {"돼지", 1.2}, {"닭", 0.6}, {"양", 2.4},
	{"고기", 2.0}, {"갈비", 2.8}, {"등심", 2.6},
	// Seafood
	{"생선", 0.5}, {"새우", 1.8}, {"게", 1.5}, {"조개", 0.3},
	{"회", 1.0}, {"초밥", 0.9},
	// Other
	{"밥", 0.3}, {"면", 0.2}, {"국", 0.5}, {"찌개", 0.4},
	{"채소", 0.1}, {"과일", 0.1}, {"두부", 0.2},
}

// DishGroup is a dish grouping within the food table.
type DishGroup struct {
	Name   string
	Dishes []string
}

// dishGroups groups reference dishes for low-carbon alternative lookups.
//
//nolint:gochecknoglobals // Read-only reference data.
var dishGroups = []DishGroup{
	{"국물요리", []string{"설렁탕", "갈비탕", "곰탕", "닭곰탕", "김치찌개", "된장찌개", "순두부찌개"}},
	{"구이요리", []string{"불고기", "갈비", "삼겹살", "닭갈비", "생선구이"}},
	{"밥요리", []string{"비빔밥", "김치볶음밥", "볶음밥", "덮밥"}},
	{"면요리", []string{"냉면", "짜장면", "짬뽕", "우동", "라면"}},
	{"해산물", []string{"회", "초밥", "새우", "게", "조개찜", "굴"}},
	{"치킨양식", []string{"후라이드치킨", "양념치킨", "파스타", "피자", "햄버거"}},
	{"찜조림", []string{"갈비찜", "찜닭", "보쌈", "족발"}},
	{"간식", []string{"김밥", "토스트", "떡볶이", "순대"}},
	{"반찬", []string{"김치", "나물반찬", "콩나물무침"}},
	{"디저트", []string{"팥빙수", "아이스크림", "케이크"}},
}

// DefaultDishGroup is returned by DishGroupOf for dishes outside every group.
const DefaultDishGroup = "기타"

func buildIndex(entries []FactorEntry) map[string]float64 {
	idx := make(map[string]float64, len(entries))
	for _, e := range entries {
		if _, dup := idx[e.Key]; !dup {
			idx[e.Key] = e.Factor
		}
	}
	return idx
}

// FoodFactor returns the per-serving factor of an exact food-table key.
func FoodFactor(name string) (float64, bool) {
	f, ok := foodIndex[name]
	return f, ok
}

// FoodTable returns a copy of the food reference table in table order.
func FoodTable() []FactorEntry {
	out := make([]FactorEntry, len(foodTable))
	copy(out, foodTable)
	return out
}

// DishGroupOf returns the dish grouping a table dish belongs to.
func DishGroupOf(name string) string {
	for _, g := range dishGroups {
		for _, d := range g.Dishes {
			if d == name {
				return g.Name
			}
		}
	}
	return DefaultDishGroup
}

// DishesInGroup returns the dishes of a grouping, or nil for unknown groups.
func DishesInGroup(group string) []string {
	for _, g := range dishGroups {
		if g.Name == group {
			out := make([]string, len(g.Dishes))
			copy(out, g.Dishes)
			return out
		}
	}
	return nil
}
