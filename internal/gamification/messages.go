package gamification

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
)

// MessageCategory groups candidate messages.
type MessageCategory string

// Message categories.
const (
	CategoryGreeting       MessageCategory = "greeting"
	CategorySuccess        MessageCategory = "success"
	CategoryEncouragement  MessageCategory = "encouragement"
	CategoryInsight        MessageCategory = "insight"
	CategoryTip            MessageCategory = "tip"
	CategoryError          MessageCategory = "error"
	CategoryRecommendation MessageCategory = "recommendation"
)

// Message keys.
const (
	KeyMorning   = "morning"
	KeyAfternoon = "afternoon"
	KeyEvening   = "evening"

	KeyMealLogged         = "meal_logged"
	KeySwapAccepted       = "swap_accepted"
	KeyChallengeCompleted = "challenge_completed"

	KeyLowCarbonChoice   = "low_carbon_choice"
	KeyImprovementNeeded = "improvement_needed"
	KeyStreakMotivation  = "streak_motivation"

	KeyCarbonSavings    = "carbon_savings"
	KeyWeeklySummary    = "weekly_summary"
	KeyMilestoneReached = "milestone_reached"

	KeyNetworkError    = "network_error"
	KeyValidationError = "validation_error"
	KeyServerError     = "server_error"
	KeyNotFound        = "not_found"
	KeyGeneralError    = "general"

	KeyMeatLover       = "meat_lover"
	KeyHealthConscious = "health_conscious"
	KeyFrequentLogger  = "frequent_logger"
)

// Fallback texts.
const (
	insightFallback  = "계속해서 환경을 생각해주셔서 감사해요! 🌍"
	categoryFallback = "함께 지구를 지켜나가요! 🌍✨"
)

type messageSet struct {
	category MessageCategory
	key      string
	texts    []string
}

// messageTable holds every candidate message. The first key of a category is
// its fallback for unknown keys, except for insights, which fall back to a
// fixed thank-you line.
//
//nolint:gochecknoglobals // Read-only reference data.
var messageTable = []messageSet{
	{CategoryGreeting, KeyMorning, []string{
		"좋은 아침이에요! 오늘도 지구를 지키는 하루 되세요 🌅",
		"상쾌한 아침이네요! 오늘은 어떤 맛있는 선택을 하실 건가요? ☀️",
		"새로운 하루의 시작! 환경을 생각하는 식사로 시작해보세요 🌱",
	}},
	{CategoryGreeting, KeyAfternoon, []string{
		"오늘 하루도 수고 많으셨어요! 점심은 맛있게 드셨나요? 😊",
		"따뜻한 오후네요! 오늘의 식사는 어떠셨는지 궁금해요 🍽️",
		"점심시간이 기다려지는 오후예요! 맛있는 선택 하세요 ✨",
	}},
	{CategoryGreeting, KeyEvening, []string{
		"하루 마무리 잘 하고 계시나요? 저녁 식사도 기록해보세요 🌙",
		"편안한 저녁 시간이에요! 오늘 하루 정말 고생하셨어요 💚",
		"저녁노을이 아름다운 시간이네요! 오늘의 마지막 식사는? 🌆",
	}},
	{CategorySuccess, KeyMealLogged, []string{
		"훌륭해요! 오늘도 지구를 지키는 선택을 하셨네요 🌍",
		"멋진 기록이에요! 작은 실천이 큰 변화를 만듭니다 ✨",
		"잘하셨어요! 꾸준한 기록이 미래를 바꿔나가요 👏",
		"완벽해요! 이런 관심이 지구를 건강하게 만들어요 💚",
		"대단해요! 환경을 생각하는 여러분의 마음이 아름다워요 🌱",
	}},
	{CategorySuccess, KeySwapAccepted, []string{
		"와! 정말 현명한 선택이에요! 지구가 미소짓고 있을 거예요 😊",
		"훌륭한 결정이에요! 이런 작은 변화가 세상을 바꿔나가요 🌍",
		"멋져요! 환경을 생각하는 선택에 박수를 보내드려요 👏",
		"좋은 선택이에요! 미래 세대가 고마워할 거예요 🌱",
		"완벽해요! 지속 가능한 미래를 함께 만들어가요 ✨",
	}},
	{CategorySuccess, KeyChallengeCompleted, []string{
		"축하해요! 챌린지 완성! 정말 자랑스러워요 🎉",
		"와! 해내셨네요! 이런 노력이 진짜 멋져요 🏆",
		"대성공! 꾸준한 노력의 결과네요! 👑",
		"완벽해요! 도전 정신이 빛나는 순간이에요 ⭐",
		"훌륭해요! 이런 실천력이 세상을 바꿔나가요 💪",
	}},
	{CategoryEncouragement, KeyLowCarbonChoice, []string{
		"지금 선택하신 음식, 지구에게 정말 좋은 선택이에요! 🌿",
		"환경을 생각한 멋진 선택이네요! 계속 이렇게 해주세요 💚",
		"친환경 식단 실천! 작은 변화가 큰 의미를 만들어요 🌱",
		"지구를 사랑하는 마음이 느껴져요! 고마워요 🌍",
	}},
	{CategoryEncouragement, KeyImprovementNeeded, []string{
		"괜찮아요! 완벽하지 않아도 돼요. 조금씩 나아가면 되니까요 😊",
		"시작이 반이에요! 이미 환경을 생각하고 계시니까요 ✨",
		"천천히 해도 괜찮아요! 꾸준함이 더 중요해요 🐢",
		"작은 변화부터 시작해보세요! 여러분을 응원해요 💪",
		"실수는 성장의 기회예요! 다음엔 더 좋은 선택하실 거예요 🌱",
	}},
	{CategoryEncouragement, KeyStreakMotivation, []string{
		"연속 기록 대단해요! 이런 꾸준함이 변화를 만들어요 🔥",
		"매일매일 실천하는 모습이 정말 멋져요! 계속해주세요 📅",
		"꾸준한 기록! 습관의 힘을 보여주고 계시네요 💪",
		"중단 없는 실천! 진정한 환경 지킴이시네요 👑",
	}},
	{CategoryInsight, KeyCarbonSavings, []string{
		"와! 지금까지 {amount}kg의 탄소를 절약하셨어요! 나무 {trees}그루를 심은 효과예요 🌳",
		"대단해요! {amount}kg 탄소 절약은 자동차 {km}km 덜 타기와 같은 효과예요 🚗",
		"훌륭해요! {amount}kg의 탄소를 줄이셨네요! 지구가 숨쉬기 편해졌어요 🌍",
	}},
	{CategoryInsight, KeyWeeklySummary, []string{
		"이번 주도 수고하셨어요! {meals}번의 기록으로 {carbon}kg 탄소를 절약했어요 📊",
		"한 주 동안 {meals}번 기록하며 환경을 생각해주셨네요! 고마워요 💚",
		"일주일 요약: {meals}번의 선택으로 {carbon}kg 탄소 절약! 멋져요 ✨",
	}},
	{CategoryInsight, KeyMilestoneReached, []string{
		"축하해요! {milestone} 달성! 정말 자랑스러운 순간이에요 🎉",
		"와! {milestone} 완성! 이런 성취가 세상을 바꿔나가요 🏆",
		"대단해요! {milestone} 도달! 꾸준한 노력의 결실이네요 👏",
	}},
	{CategoryTip, "", []string{
		"💡 소고기 대신 닭고기를 선택하면 50% 이상 탄소를 절약할 수 있어요!",
		"🌱 제철 음식을 선택하면 맛도 좋고 환경에도 좋아요!",
		"🐟 일주일에 2번 생선 요리를 먹으면 탄소 발자국을 크게 줄일 수 있어요!",
		"🥬 채소를 더 많이 먹으면 건강과 환경, 두 마리 토끼를 잡을 수 있어요!",
		"♻️ 음식물 쓰레기를 줄이는 것도 탄소 절약의 중요한 방법이에요!",
		"🌾 통곡물을 선택하면 영양도 풍부하고 환경에도 도움이 돼요!",
		"🍄 버섯류는 단백질도 풍부하고 탄소 발자국이 낮은 훌륭한 식재료예요!",
		"🥗 로컬 푸드를 선택하면 운송 과정의 탄소 배출을 줄일 수 있어요!",
	}},
	{CategoryError, KeyGeneralError, []string{"예상치 못한 일이 발생했네요. 다시 시도해주시면 될 거예요! 화이팅! 💪"}},
	{CategoryError, KeyNetworkError, []string{"잠시 연결이 원활하지 않네요. 조금 후에 다시 시도해주세요! 😊"}},
	{CategoryError, KeyValidationError, []string{"앗! 입력하신 내용을 다시 한번 확인해주세요 ✨"}},
	{CategoryError, KeyServerError, []string{"서버에 작은 문제가 있네요. 금방 해결될 거예요! 잠시만 기다려주세요 🙏"}},
	{CategoryError, KeyNotFound, []string{"찾으시는 내용을 찾을 수 없어요. 다른 방법으로 시도해보세요! 💡"}},
}

// Candidates returns the candidate messages for (category, key). Unknown
// keys fall back to the category's first key; insights with an unknown key
// and unknown categories yield a single generic line.
func Candidates(category MessageCategory, key string) []string {
	var first []string
	for _, set := range messageTable {
		if set.category != category {
			continue
		}
		if set.key == key || category == CategoryTip {
			return set.texts
		}
		if first == nil {
			first = set.texts
		}
	}

	switch {
	case category == CategoryInsight:
		return []string{insightFallback}
	case first != nil:
		return first
	default:
		return []string{categoryFallback}
	}
}

// PickMessage returns a candidate chosen with rng. A nil rng picks the first
// candidate.
func PickMessage(category MessageCategory, key string, rng *rand.Rand) string {
	texts := Candidates(category, key)
	if rng == nil {
		return texts[0]
	}
	return texts[rng.IntN(len(texts))]
}

// MessageAt returns candidate index modulo the number of candidates.
func MessageAt(category MessageCategory, key string, index int) string {
	texts := Candidates(category, key)
	i := index % len(texts)
	if i < 0 {
		i += len(texts)
	}
	return texts[i]
}

// Greeting hours: morning is [5, 12), afternoon [12, 18), evening otherwise.
const (
	morningStartHour   = 5
	afternoonStartHour = 12
	eveningStartHour   = 18
)

// GreetingKey maps an hour of day to a greeting key.
func GreetingKey(hour int) string {
	switch {
	case hour >= morningStartHour && hour < afternoonStartHour:
		return KeyMorning
	case hour >= afternoonStartHour && hour < eveningStartHour:
		return KeyAfternoon
	default:
		return KeyEvening
	}
}

//nolint:gochecknoglobals // Compiled once.
var placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

// Render substitutes {name} placeholders in template. When any placeholder
// has no value the template is returned unchanged.
func Render(template string, vars map[string]string) string {
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if _, ok := vars[m[1]]; !ok {
			return template
		}
	}
	return placeholderPattern.ReplaceAllStringFunc(template, func(ph string) string {
		return vars[ph[1:len(ph)-1]]
	})
}

// InsightMessage picks an insight template with rng and renders it.
func InsightMessage(key string, vars map[string]string, rng *rand.Rand) string {
	return Render(PickMessage(CategoryInsight, key, rng), vars)
}

// RecommendationMessage builds a personalised swap message for switching to
// foodTo, saving reductionPct percent, tailored to a meal pattern key.
func RecommendationMessage(foodTo string, reductionPct float64, pattern string, rng *rand.Rand) string {
	bases := []string{
		fmt.Sprintf("%s로 바꾸면 %.0f%% 탄소를 절약할 수 있어요!", foodTo, reductionPct),
		fmt.Sprintf("%s는 맛도 좋고 환경에도 좋은 선택이에요!", foodTo),
		fmt.Sprintf("%s로 건강하고 친환경적인 식사를 해보세요!", foodTo),
	}

	var suffix string
	switch pattern {
	case KeyMeatLover:
		suffix = " 고기 요리를 자주 드시는군요! 가끔은 이런 선택도 어떠세요? 😊"
	case KeyHealthConscious:
		suffix = " 건강을 생각하시는 분이시군요! 이 선택이 더 도움이 될 거예요 💪"
	case KeyFrequentLogger:
		suffix = " 꾸준한 기록 습관이 멋져요! 이런 선택으로 더 발전해보세요 🌟"
	default:
		suffix = " 환경을 생각하는 마음이 아름다워요! 💚"
	}

	base := bases[0]
	if rng != nil {
		base = bases[rng.IntN(len(bases))]
	}
	return strings.TrimSpace(base) + suffix
}
