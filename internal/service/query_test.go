package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/model"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/planner"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/service"
)

func portionsOf(entries []model.MealEntry) []planner.Portion {
	out := make([]planner.Portion, 0, len(entries))
	for _, e := range entries {
		out = append(out, planner.Portion{Food: e.Food, Grams: e.Grams})
	}
	return out
}

func TestConsumedToDateFreshPlanIsZero(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	seedCatalog(t, sqldb)
	user := seedUser(t, sqldb)
	svc := newPlanService(t, sqldb)

	plan := createPlan(t, svc, user.ID, model.GoalWeightLoss, 7)
	got, err := service.ConsumedToDate(context.Background(), sqldb, plan.ID)
	if err != nil {
		t.Fatalf("consumed to date: %v", err)
	}
	if got != (planner.Consumed{}) {
		t.Fatalf("expected zero consumption, got %+v", got)
	}
}

func TestConsumedToDatePrefersActualMeals(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	foods := seedCatalog(t, sqldb)
	user := seedUser(t, sqldb)
	svc := newPlanService(t, sqldb)
	ctx := context.Background()

	plan := createPlan(t, svc, user.ID, model.GoalBalancedDiet, 3)
	salmon := foods[3]
	if _, err := svc.Advance(ctx, plan.ID, model.StrictlyFollowed, []service.ActualMealInput{
		{MealType: model.Dinner, FoodItemID: salmon.ID, Grams: 200},
	}); err != nil {
		t.Fatalf("advance day 0: %v", err)
	}
	if _, err := svc.Advance(ctx, plan.ID, model.StrictlyFollowed, nil); err != nil {
		t.Fatalf("advance day 1: %v", err)
	}

	detail, err := service.GetPlanDetail(ctx, sqldb, plan.ID)
	if err != nil {
		t.Fatalf("plan detail: %v", err)
	}
	want := planner.Aggregate([]planner.Portion{{Food: salmon, Grams: 200}}).
		Add(planner.Aggregate(portionsOf(detail.Days[1].Meals)))

	got, err := service.ConsumedToDate(ctx, sqldb, plan.ID)
	if err != nil {
		t.Fatalf("consumed to date: %v", err)
	}
	if got.DaysTracked != 2 {
		t.Fatalf("expected 2 tracked days, got %d", got.DaysTracked)
	}
	if got.Totals != want {
		t.Fatalf("expected %+v, got %+v", want, got.Totals)
	}
}

func TestRecommendedTotalSumsAllDays(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	seedCatalog(t, sqldb)
	user := seedUser(t, sqldb)
	svc := newPlanService(t, sqldb)
	ctx := context.Background()

	plan := createPlan(t, svc, user.ID, model.GoalMuscleGain, 2)
	detail, err := service.GetPlanDetail(ctx, sqldb, plan.ID)
	if err != nil {
		t.Fatalf("plan detail: %v", err)
	}
	var all []model.MealEntry
	for _, d := range detail.Days {
		all = append(all, d.Meals...)
	}
	got, err := service.RecommendedTotal(ctx, sqldb, plan.ID)
	if err != nil {
		t.Fatalf("recommended total: %v", err)
	}
	if want := planner.Aggregate(portionsOf(all)); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if got.Calories <= 0 {
		t.Fatalf("expected positive calories, got %d", got.Calories)
	}
}

func TestGoalProgressIsIdempotentAndCapped(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	seedCatalog(t, sqldb, service.FoodInput{Name: "Soy Sauce", CaloriesPer100g: 53, ProteinPer100g: 8, CarbsPer100g: 5, SodiumMgPer100g: 5000})
	user := seedUser(t, sqldb)
	svc := newPlanService(t, sqldb)
	ctx := context.Background()

	plan := createPlan(t, svc, user.ID, model.GoalLowSodium, 2)
	if _, err := svc.Advance(ctx, plan.ID, model.LessHealthy, nil); err != nil {
		t.Fatalf("advance: %v", err)
	}
	first, err := service.GoalProgress(ctx, sqldb, plan.ID)
	if err != nil {
		t.Fatalf("goal progress: %v", err)
	}
	second, err := service.GoalProgress(ctx, sqldb, plan.ID)
	if err != nil {
		t.Fatalf("goal progress: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("goal progress changed between reads: %+v vs %+v", first, second)
	}
	if len(first.Metrics) != 1 || first.Metrics[0].Metric != planner.MetricSodium {
		t.Fatalf("expected a single sodium metric, got %+v", first.Metrics)
	}
	if first.Metrics[0].Percentage != 100 {
		t.Fatalf("expected percentage capped at 100, got %v", first.Metrics[0].Percentage)
	}
	if first.DaysTracked != 1 {
		t.Fatalf("expected 1 tracked day, got %d", first.DaysTracked)
	}
}

func TestGoalProgressBalancedDiet(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	seedCatalog(t, sqldb)
	user := seedUser(t, sqldb)
	svc := newPlanService(t, sqldb)

	plan := createPlan(t, svc, user.ID, model.GoalBalancedDiet, 3)
	report, err := service.GoalProgress(context.Background(), sqldb, plan.ID)
	if err != nil {
		t.Fatalf("goal progress: %v", err)
	}
	if len(report.Metrics) != 4 {
		t.Fatalf("expected 4 metrics, got %d", len(report.Metrics))
	}
	for _, m := range report.Metrics {
		if m.Percentage != 0 {
			t.Fatalf("expected no progress on a fresh plan, got %+v", m)
		}
	}
}

func TestTodayMealsAndOptions(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	seedCatalog(t, sqldb)
	user := seedUser(t, sqldb)
	svc := newPlanService(t, sqldb)
	ctx := context.Background()

	plan := createPlan(t, svc, user.ID, model.GoalWeightLoss, 2)
	today, err := service.TodayMeals(ctx, sqldb, plan.ID)
	if err != nil {
		t.Fatalf("today meals: %v", err)
	}
	for _, mt := range model.GeneratedMealTypes {
		if len(today[mt]) != 1 || today[mt][0].DayIndex != 0 {
			t.Fatalf("expected one %s entry for day 0, got %+v", mt, today[mt])
		}
	}
	if len(today[model.Snack]) != 0 {
		t.Fatalf("expected no snack entries")
	}

	options, err := service.RecommendationsFor(ctx, sqldb, plan.ID, 1, model.Lunch)
	if err != nil {
		t.Fatalf("recommendations: %v", err)
	}
	if len(options) != planner.OptionsPerMeal {
		t.Fatalf("expected %d options, got %d", planner.OptionsPerMeal, len(options))
	}
	seen := map[int64]bool{}
	for _, o := range options {
		if seen[o.FoodItemID] {
			t.Fatalf("duplicate option food %d", o.FoodItemID)
		}
		seen[o.FoodItemID] = true
	}
	if _, err := service.RecommendationsFor(ctx, sqldb, plan.ID, 0, "brunch"); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := service.RecommendationsFor(ctx, sqldb, plan.ID, plan.DurationDays, model.Lunch); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected validation error for day past the plan, got %v", err)
	}

	meals, err := service.MealsForDay(ctx, sqldb, plan.ID, 1)
	if err != nil {
		t.Fatalf("meals for day: %v", err)
	}
	if len(meals) != 3 || meals[0].MealType != model.Breakfast || meals[2].MealType != model.Dinner {
		t.Fatalf("expected breakfast, lunch, dinner for day 1, got %+v", meals)
	}

	actual, err := service.TodayActualMeals(ctx, sqldb, plan.ID)
	if err != nil {
		t.Fatalf("today actual meals: %v", err)
	}
	if len(actual) != 0 {
		t.Fatalf("expected no actual meals yet, got %d", len(actual))
	}
}

func TestTodayMealsOnFinishedPlanIsEmpty(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	seedCatalog(t, sqldb)
	user := seedUser(t, sqldb)
	svc := newPlanService(t, sqldb)
	ctx := context.Background()

	plan := createPlan(t, svc, user.ID, model.GoalWeightLoss, 1)
	if _, err := svc.Advance(ctx, plan.ID, model.StrictlyFollowed, nil); err != nil {
		t.Fatalf("advance: %v", err)
	}
	today, err := service.TodayMeals(ctx, sqldb, plan.ID)
	if err != nil {
		t.Fatalf("today meals: %v", err)
	}
	if len(today) != 0 {
		t.Fatalf("expected no meals for a finished plan, got %v", today)
	}
}

func TestActivePlanForUser(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	seedCatalog(t, sqldb)
	user := seedUser(t, sqldb)
	svc := newPlanService(t, sqldb)
	ctx := context.Background()

	got, err := service.ActivePlanForUser(ctx, sqldb, user.ID)
	if err != nil || got != nil {
		t.Fatalf("expected no active plan, got %+v, %v", got, err)
	}
	plan := createPlan(t, svc, user.ID, model.GoalLowSodium, 2)
	got, err = service.ActivePlanForUser(ctx, sqldb, user.ID)
	if err != nil {
		t.Fatalf("active plan: %v", err)
	}
	if got == nil || got.ID != plan.ID {
		t.Fatalf("expected plan %d, got %+v", plan.ID, got)
	}
	if _, err := service.ActivePlanForUser(ctx, sqldb, 999); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
}

func TestReadsOnUnknownPlan(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	ctx := context.Background()
	if _, err := service.GoalProgress(ctx, sqldb, 1); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := service.GetPlanDetail(ctx, sqldb, 1); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := service.PlanNutrition(ctx, sqldb, 1); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
