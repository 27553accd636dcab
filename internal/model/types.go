package model

import "time"

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	HeightCm  *int      `json:"height_cm,omitempty"`
	WeightKg  *int      `json:"weight_kg,omitempty"`
	Age       *int      `json:"age,omitempty"`
	Sex       string    `json:"sex,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FoodItem is a catalog row. Nutrient values are per 100g.
type FoodItem struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	CaloriesPer100g int     `json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatPer100g      float64 `json:"fat_per_100g"`
	SodiumMgPer100g int     `json:"sodium_mg_per_100g"`
}

type Plan struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	Goal         Goal       `json:"goal"`
	DurationDays int        `json:"duration_days"`
	Status       PlanStatus `json:"status"`
	CurrentDay   int        `json:"current_day"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Completed reports whether every day of the plan has been tracked. It can be
// true while Status is still active, until the completion write lands.
func (p Plan) Completed() bool {
	return p.CurrentDay >= p.DurationDays
}

func (p Plan) DaysRemaining() int {
	if p.Completed() {
		return 0
	}
	return p.DurationDays - p.CurrentDay
}

type MealEntry struct {
	ID         int64    `json:"id"`
	PlanID     int64    `json:"meal_plan_id"`
	FoodItemID int64    `json:"food_item_id"`
	DayIndex   int      `json:"day_index"`
	MealType   MealType `json:"meal_type"`
	Grams      int      `json:"grams"`
	Food       FoodItem `json:"food_item"`
}

type MealRecommendation struct {
	ID               int64    `json:"id"`
	PlanID           int64    `json:"meal_plan_id"`
	FoodItemID       int64    `json:"food_item_id"`
	DayIndex         int      `json:"day_index"`
	MealType         MealType `json:"meal_type"`
	RecommendedGrams int      `json:"recommended_grams"`
	Food             FoodItem `json:"food_item"`
}

type ActualMealEntry struct {
	ID         int64    `json:"id"`
	PlanID     int64    `json:"meal_plan_id"`
	FoodItemID int64    `json:"food_item_id"`
	DayIndex   int      `json:"day_index"`
	MealType   MealType `json:"meal_type"`
	Grams      int      `json:"grams"`
	Food       FoodItem `json:"food_item"`
}

type DailyTracking struct {
	ID        int64     `json:"id"`
	PlanID    int64     `json:"meal_plan_id"`
	DayIndex  int       `json:"day_index"`
	Feedback  Feedback  `json:"feedback"`
	CreatedAt time.Time `json:"created_at"`
}
