package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/model"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/planner"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const allDays = math.MaxInt32

const foodColumns = `f.id, f.name, f.calories_per_100g, f.protein_per_100g, f.carbs_per_100g, f.fat_per_100g, f.sodium_mg_per_100g`

func foodDest(f *model.FoodItem) []any {
	return []any{&f.ID, &f.Name, &f.CaloriesPer100g, &f.ProteinPer100g, &f.CarbsPer100g, &f.FatPer100g, &f.SodiumMgPer100g}
}

// mealOrder sorts rows breakfast, lunch, dinner, snack.
func mealOrder(alias string) string {
	return fmt.Sprintf(`CASE %[1]s.meal_type WHEN 'breakfast' THEN 0 WHEN 'lunch' THEN 1 WHEN 'dinner' THEN 2 ELSE 3 END`, alias)
}

const planColumns = `id, user_id, goal, duration_days, status, current_day, created_at, updated_at`

func scanPlan(row interface{ Scan(...any) error }) (model.Plan, error) {
	var p model.Plan
	var goal, status string
	if err := row.Scan(&p.ID, &p.UserID, &goal, &p.DurationDays, &status, &p.CurrentDay, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return model.Plan{}, err
	}
	p.Goal = model.Goal(goal)
	p.Status = model.PlanStatus(status)
	return p, nil
}

func getPlan(ctx context.Context, q querier, planID int64) (model.Plan, error) {
	p, err := scanPlan(q.QueryRowContext(ctx, `SELECT `+planColumns+` FROM meal_plans WHERE id = ?`, planID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Plan{}, notFoundf("plan %d", planID)
		}
		return model.Plan{}, fmt.Errorf("load plan %d: %w", planID, err)
	}
	return p, nil
}

func listFoods(ctx context.Context, q querier) ([]model.FoodItem, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+foodColumns+` FROM food_items f ORDER BY f.id`)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	defer rows.Close()

	out := make([]model.FoodItem, 0)
	for rows.Next() {
		var f model.FoodItem
		if err := rows.Scan(foodDest(&f)...); err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foods: %w", err)
	}
	return out, nil
}

func foodByID(ctx context.Context, q querier, id int64) (model.FoodItem, error) {
	var f model.FoodItem
	err := q.QueryRowContext(ctx, `SELECT `+foodColumns+` FROM food_items f WHERE f.id = ?`, id).Scan(foodDest(&f)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.FoodItem{}, notFoundf("food %d", id)
		}
		return model.FoodItem{}, fmt.Errorf("load food %d: %w", id, err)
	}
	return f, nil
}

// listMealEntries returns planned entries for days [from, to).
func listMealEntries(ctx context.Context, q querier, planID int64, from, to int) ([]model.MealEntry, error) {
	rows, err := q.QueryContext(ctx, `
SELECT e.id, e.meal_plan_id, e.food_item_id, e.day_index, e.meal_type, e.grams, `+foodColumns+`
FROM meal_entries e JOIN food_items f ON f.id = e.food_item_id
WHERE e.meal_plan_id = ? AND e.day_index >= ? AND e.day_index < ?
ORDER BY e.day_index, `+mealOrder("e")+`, e.id`, planID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list meal entries for plan %d: %w", planID, err)
	}
	defer rows.Close()

	out := make([]model.MealEntry, 0)
	for rows.Next() {
		var e model.MealEntry
		var mealType string
		dest := append([]any{&e.ID, &e.PlanID, &e.FoodItemID, &e.DayIndex, &mealType, &e.Grams}, foodDest(&e.Food)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan meal entry: %w", err)
		}
		e.MealType = model.MealType(mealType)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal entries: %w", err)
	}
	return out, nil
}

// listActualMeals returns recorded actual meals for days [from, to).
func listActualMeals(ctx context.Context, q querier, planID int64, from, to int) ([]model.ActualMealEntry, error) {
	rows, err := q.QueryContext(ctx, `
SELECT a.id, a.meal_plan_id, a.food_item_id, a.day_index, a.meal_type, a.grams, `+foodColumns+`
FROM actual_meal_entries a JOIN food_items f ON f.id = a.food_item_id
WHERE a.meal_plan_id = ? AND a.day_index >= ? AND a.day_index < ?
ORDER BY a.day_index, `+mealOrder("a")+`, a.id`, planID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list actual meals for plan %d: %w", planID, err)
	}
	defer rows.Close()

	out := make([]model.ActualMealEntry, 0)
	for rows.Next() {
		var a model.ActualMealEntry
		var mealType string
		dest := append([]any{&a.ID, &a.PlanID, &a.FoodItemID, &a.DayIndex, &mealType, &a.Grams}, foodDest(&a.Food)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan actual meal: %w", err)
		}
		a.MealType = model.MealType(mealType)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actual meals: %w", err)
	}
	return out, nil
}

func listRecommendations(ctx context.Context, q querier, planID int64, day int, mealType model.MealType) ([]model.MealRecommendation, error) {
	rows, err := q.QueryContext(ctx, `
SELECT r.id, r.meal_plan_id, r.food_item_id, r.day_index, r.meal_type, r.recommended_grams, `+foodColumns+`
FROM meal_recommendations r JOIN food_items f ON f.id = r.food_item_id
WHERE r.meal_plan_id = ? AND r.day_index = ? AND r.meal_type = ?
ORDER BY r.id`, planID, day, string(mealType))
	if err != nil {
		return nil, fmt.Errorf("list recommendations for plan %d: %w", planID, err)
	}
	defer rows.Close()

	out := make([]model.MealRecommendation, 0)
	for rows.Next() {
		var r model.MealRecommendation
		var mt string
		dest := append([]any{&r.ID, &r.PlanID, &r.FoodItemID, &r.DayIndex, &mt, &r.RecommendedGrams}, foodDest(&r.Food)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		r.MealType = model.MealType(mt)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recommendations: %w", err)
	}
	return out, nil
}

func listTrackings(ctx context.Context, q querier, planID int64) ([]model.DailyTracking, error) {
	rows, err := q.QueryContext(ctx, `
SELECT id, meal_plan_id, day_index, feedback, created_at
FROM daily_trackings WHERE meal_plan_id = ? ORDER BY day_index`, planID)
	if err != nil {
		return nil, fmt.Errorf("list trackings for plan %d: %w", planID, err)
	}
	defer rows.Close()

	out := make([]model.DailyTracking, 0)
	for rows.Next() {
		var t model.DailyTracking
		var feedback string
		if err := rows.Scan(&t.ID, &t.PlanID, &t.DayIndex, &feedback, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tracking: %w", err)
		}
		t.Feedback = model.Feedback(feedback)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trackings: %w", err)
	}
	return out, nil
}

// consumedToDate sums the closed days [0, current_day) of plan, preferring
// actual meals over planned ones day by day.
func consumedToDate(ctx context.Context, q querier, plan model.Plan) (planner.Consumed, error) {
	closed := plan.CurrentDay
	if closed > plan.DurationDays {
		closed = plan.DurationDays
	}
	if closed <= 0 {
		return planner.Consumed{}, nil
	}
	planned, err := listMealEntries(ctx, q, plan.ID, 0, closed)
	if err != nil {
		return planner.Consumed{}, err
	}
	actual, err := listActualMeals(ctx, q, plan.ID, 0, closed)
	if err != nil {
		return planner.Consumed{}, err
	}
	days := make([]planner.DayPortions, closed)
	for _, e := range planned {
		days[e.DayIndex].Planned = append(days[e.DayIndex].Planned, planner.Portion{Food: e.Food, Grams: e.Grams})
	}
	for _, a := range actual {
		days[a.DayIndex].Actual = append(days[a.DayIndex].Actual, planner.Portion{Food: a.Food, Grams: a.Grams})
	}
	return planner.ConsumedFromDays(days), nil
}

func insertGenerated(ctx context.Context, tx *sql.Tx, gen planner.GeneratedMeals) error {
	if len(gen.Entries) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO meal_entries(meal_plan_id, food_item_id, day_index, meal_type, grams) VALUES(?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare meal entry insert: %w", err)
		}
		defer stmt.Close()
		for _, e := range gen.Entries {
			if _, err := stmt.ExecContext(ctx, e.PlanID, e.FoodItemID, e.DayIndex, string(e.MealType), e.Grams); err != nil {
				return fmt.Errorf("insert meal entry day %d %s: %w", e.DayIndex, e.MealType, err)
			}
		}
	}
	if len(gen.Recommendations) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO meal_recommendations(meal_plan_id, food_item_id, day_index, meal_type, recommended_grams) VALUES(?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare recommendation insert: %w", err)
		}
		defer stmt.Close()
		for _, r := range gen.Recommendations {
			if _, err := stmt.ExecContext(ctx, r.PlanID, r.FoodItemID, r.DayIndex, string(r.MealType), r.RecommendedGrams); err != nil {
				return fmt.Errorf("insert recommendation day %d %s: %w", r.DayIndex, r.MealType, err)
			}
		}
	}
	return nil
}
