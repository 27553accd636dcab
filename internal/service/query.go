package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/model"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/planner"
)

func GetPlan(ctx context.Context, db *sql.DB, planID int64) (model.Plan, error) {
	return getPlan(ctx, db, planID)
}

// ActivePlanForUser returns the user's active plan, or nil when there is none.
func ActivePlanForUser(ctx context.Context, db *sql.DB, userID int64) (*model.Plan, error) {
	if _, err := userByID(ctx, db, userID); err != nil {
		return nil, err
	}
	p, err := scanPlan(db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM meal_plans WHERE user_id = ? AND status = 'active'`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load active plan for user %d: %w", userID, err)
	}
	return &p, nil
}

func MealsForDay(ctx context.Context, db *sql.DB, planID int64, day int) ([]model.MealEntry, error) {
	if _, err := getPlan(ctx, db, planID); err != nil {
		return nil, err
	}
	if day < 0 {
		return nil, validationf("day must be >= 0")
	}
	return listMealEntries(ctx, db, planID, day, day+1)
}

// MealsByType groups one day's entries by meal slot.
type MealsByType map[model.MealType][]model.MealEntry

// TodayMeals returns the planned entries of the plan's current day. A plan
// with no days left has no today and yields an empty map.
func TodayMeals(ctx context.Context, db *sql.DB, planID int64) (MealsByType, error) {
	plan, err := getPlan(ctx, db, planID)
	if err != nil {
		return nil, err
	}
	out := MealsByType{}
	if plan.Completed() {
		return out, nil
	}
	entries, err := listMealEntries(ctx, db, planID, plan.CurrentDay, plan.CurrentDay+1)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		out[e.MealType] = append(out[e.MealType], e)
	}
	return out, nil
}

func TodayActualMeals(ctx context.Context, db *sql.DB, planID int64) ([]model.ActualMealEntry, error) {
	plan, err := getPlan(ctx, db, planID)
	if err != nil {
		return nil, err
	}
	return listActualMeals(ctx, db, planID, plan.CurrentDay, plan.CurrentDay+1)
}

// RecommendationsFor returns the alternative options offered for one slot.
func RecommendationsFor(ctx context.Context, db *sql.DB, planID int64, day int, mealType model.MealType) ([]model.MealRecommendation, error) {
	if !mealType.Valid() {
		return nil, validationf("unknown meal type %q", mealType)
	}
	plan, err := getPlan(ctx, db, planID)
	if err != nil {
		return nil, err
	}
	if day < 0 || day >= plan.DurationDays {
		return nil, validationf("day must be between 0 and %d, got %d", plan.DurationDays-1, day)
	}
	return listRecommendations(ctx, db, planID, day, mealType)
}

// ConsumedToDate sums what was eaten over the closed days of a plan. Days
// with recorded actual meals count those, other days count the plan.
func ConsumedToDate(ctx context.Context, db *sql.DB, planID int64) (planner.Consumed, error) {
	plan, err := getPlan(ctx, db, planID)
	if err != nil {
		return planner.Consumed{}, err
	}
	return consumedToDate(ctx, db, plan)
}

// RecommendedTotal sums every planned entry of the plan across all days.
func RecommendedTotal(ctx context.Context, db *sql.DB, planID int64) (planner.Totals, error) {
	if _, err := getPlan(ctx, db, planID); err != nil {
		return planner.Totals{}, err
	}
	entries, err := listMealEntries(ctx, db, planID, 0, allDays)
	if err != nil {
		return planner.Totals{}, err
	}
	portions := make([]planner.Portion, 0, len(entries))
	for _, e := range entries {
		portions = append(portions, planner.Portion{Food: e.Food, Grams: e.Grams})
	}
	return planner.Aggregate(portions), nil
}

type NutritionSummary struct {
	PlanID      int64            `json:"plan_id"`
	Recommended planner.Totals   `json:"recommended_total"`
	Consumed    planner.Consumed `json:"consumed_to_date"`
}

func PlanNutrition(ctx context.Context, db *sql.DB, planID int64) (NutritionSummary, error) {
	recommended, err := RecommendedTotal(ctx, db, planID)
	if err != nil {
		return NutritionSummary{}, err
	}
	consumed, err := ConsumedToDate(ctx, db, planID)
	if err != nil {
		return NutritionSummary{}, err
	}
	return NutritionSummary{PlanID: planID, Recommended: recommended, Consumed: consumed}, nil
}

type GoalProgressReport struct {
	PlanID       int64                    `json:"plan_id"`
	Goal         model.Goal               `json:"goal"`
	DurationDays int                      `json:"duration_days"`
	DaysTracked  int                      `json:"days_tracked"`
	Metrics      []planner.MetricProgress `json:"metrics"`
}

func GoalProgress(ctx context.Context, db *sql.DB, planID int64) (GoalProgressReport, error) {
	plan, err := getPlan(ctx, db, planID)
	if err != nil {
		return GoalProgressReport{}, err
	}
	consumed, err := consumedToDate(ctx, db, plan)
	if err != nil {
		return GoalProgressReport{}, err
	}
	return GoalProgressReport{
		PlanID:       plan.ID,
		Goal:         plan.Goal,
		DurationDays: plan.DurationDays,
		DaysTracked:  consumed.DaysTracked,
		Metrics:      planner.Progress(planner.TargetsFor(plan.Goal), consumed, plan.DurationDays),
	}, nil
}

type DayDetail struct {
	DayIndex int                     `json:"day_index"`
	Meals    []model.MealEntry       `json:"meals"`
	Actual   []model.ActualMealEntry `json:"actual_meals"`
	Feedback model.Feedback          `json:"feedback,omitempty"`
}

type PlanDetail struct {
	Plan model.Plan  `json:"plan"`
	Days []DayDetail `json:"days"`
}

// GetPlanDetail returns the plan with every day's planned meals, actual
// meals and feedback.
func GetPlanDetail(ctx context.Context, db *sql.DB, planID int64) (PlanDetail, error) {
	plan, err := getPlan(ctx, db, planID)
	if err != nil {
		return PlanDetail{}, err
	}
	entries, err := listMealEntries(ctx, db, planID, 0, allDays)
	if err != nil {
		return PlanDetail{}, err
	}
	actuals, err := listActualMeals(ctx, db, planID, 0, allDays)
	if err != nil {
		return PlanDetail{}, err
	}
	trackings, err := listTrackings(ctx, db, planID)
	if err != nil {
		return PlanDetail{}, err
	}

	days := make([]DayDetail, plan.DurationDays)
	for i := range days {
		days[i] = DayDetail{DayIndex: i, Meals: []model.MealEntry{}, Actual: []model.ActualMealEntry{}}
	}
	inRange := func(day int) bool { return day >= 0 && day < len(days) }
	for _, e := range entries {
		if inRange(e.DayIndex) {
			days[e.DayIndex].Meals = append(days[e.DayIndex].Meals, e)
		}
	}
	for _, a := range actuals {
		if inRange(a.DayIndex) {
			days[a.DayIndex].Actual = append(days[a.DayIndex].Actual, a)
		}
	}
	for _, t := range trackings {
		if inRange(t.DayIndex) {
			days[t.DayIndex].Feedback = t.Feedback
		}
	}
	return PlanDetail{Plan: plan, Days: days}, nil
}
