package planner

import "github.com/SaaS-team111111/easyNutri-iter2/internal/model"

// OptionsPerMeal is the size of the recommendation set offered per slot.
const OptionsPerMeal = 4

// GeneratedMeals are rows ready to insert; ids are left zero.
type GeneratedMeals struct {
	Entries         []model.MealEntry
	Recommendations []model.MealRecommendation
}

// Generate builds one default entry and a set of alternative options for
// every generated meal slot of days [fromDay, toDay). Nothing is generated
// when foods is empty.
func Generate(planID int64, fromDay, toDay int, foods []model.FoodItem, factor float64, rng Rand) GeneratedMeals {
	var out GeneratedMeals
	if len(foods) == 0 || fromDay >= toDay {
		return out
	}
	for day := fromDay; day < toDay; day++ {
		for _, mt := range model.GeneratedMealTypes {
			food := foods[rng.IntN(len(foods))]
			out.Entries = append(out.Entries, model.MealEntry{
				PlanID:     planID,
				FoodItemID: food.ID,
				DayIndex:   day,
				MealType:   mt,
				Grams:      DrawPortion(mt, factor, rng),
				Food:       food,
			})
			for _, option := range sample(foods, OptionsPerMeal, rng) {
				out.Recommendations = append(out.Recommendations, model.MealRecommendation{
					PlanID:           planID,
					FoodItemID:       option.ID,
					DayIndex:         day,
					MealType:         mt,
					RecommendedGrams: DrawPortion(mt, factor, rng),
					Food:             option,
				})
			}
		}
	}
	return out
}

// sample picks up to n distinct foods.
func sample(foods []model.FoodItem, n int, rng Rand) []model.FoodItem {
	idx := make([]int, len(foods))
	for i := range idx {
		idx[i] = i
	}
	rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]model.FoodItem, 0, n)
	for _, i := range idx[:n] {
		out = append(out, foods[i])
	}
	return out
}
