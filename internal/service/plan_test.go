package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/model"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/planner"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/service"
)

func TestCreatePlanGeneratesThreeMealsPerDay(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	seedCatalog(t, sqldb)
	svc := newPlanService(t, sqldb)

	for _, goal := range model.Goals {
		for _, days := range []int{1, 3, 7} {
			user := seedUser(t, sqldb)
			plan := createPlan(t, svc, user.ID, goal, days)

			if plan.Status != model.PlanActive || plan.CurrentDay != 0 || plan.Goal != goal {
				t.Fatalf("unexpected new plan %+v", plan)
			}
			if got := countPlanRows(t, sqldb, "meal_entries", plan.ID); got != days*3 {
				t.Fatalf("%s/%d: expected %d entries, got %d", goal, days, days*3, got)
			}
			if got := countPlanRows(t, sqldb, "meal_recommendations", plan.ID); got != days*3*planner.OptionsPerMeal {
				t.Fatalf("%s/%d: expected %d recommendations, got %d", goal, days, days*3*planner.OptionsPerMeal, got)
			}
			if got := countPlanRows(t, sqldb, "daily_trackings", plan.ID); got != 0 {
				t.Fatalf("expected no trackings, got %d", got)
			}
		}
	}
}

func TestCreatePlanValidation(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	seedCatalog(t, sqldb)
	user := seedUser(t, sqldb)
	svc := newPlanService(t, sqldb)

	cases := []service.CreatePlanInput{
		{UserID: user.ID, Goal: "Keto", DurationDays: 3},
		{UserID: user.ID, Goal: model.GoalLowSodium, DurationDays: 0},
		{UserID: user.ID, Goal: model.GoalLowSodium, DurationDays: -2},
		{UserID: user.ID, Goal: model.GoalLowSodium, DurationDays: service.MaxDurationDays + 1},
		{Goal: model.GoalLowSodium, DurationDays: 3},
	}
	for _, in := range cases {
		if _, err := svc.CreatePlan(context.Background(), in); !errors.Is(err, service.ErrValidation) {
			t.Fatalf("%+v: expected validation error, got %v", in, err)
		}
	}
	var plans int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM meal_plans`).Scan(&plans); err != nil {
		t.Fatalf("count plans: %v", err)
	}
	if plans != 0 {
		t.Fatalf("expected no plans persisted, got %d", plans)
	}
}

func TestCreatePlanUnknownUser(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	svc := newPlanService(t, sqldb)
	_, err := svc.CreatePlan(context.Background(), service.CreatePlanInput{UserID: 42, Goal: model.GoalMuscleGain, DurationDays: 3})
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreatePlanRejectsSecondActivePlan(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	seedCatalog(t, sqldb)
	user := seedUser(t, sqldb)
	svc := newPlanService(t, sqldb)
	ctx := context.Background()

	first := createPlan(t, svc, user.ID, model.GoalWeightLoss, 3)
	in := service.CreatePlanInput{UserID: user.ID, Goal: model.GoalMuscleGain, DurationDays: 5}
	if _, err := svc.CreatePlan(ctx, in); !errors.Is(err, service.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	second, err := svc.ReplacePlan(ctx, in)
	if err != nil {
		t.Fatalf("replace plan: %v", err)
	}
	if second.ID == first.ID || second.Goal != model.GoalMuscleGain {
		t.Fatalf("unexpected replacement %+v", second)
	}
	if _, err := service.GetPlan(ctx, sqldb, first.ID); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected replaced plan to be gone, got %v", err)
	}
	if got := countPlanRows(t, sqldb, "meal_entries", first.ID); got != 0 {
		t.Fatalf("expected replaced plan entries to cascade, got %d", got)
	}
}

func TestCompletedPlanDoesNotBlockNewPlan(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	seedCatalog(t, sqldb)
	user := seedUser(t, sqldb)
	svc := newPlanService(t, sqldb)
	ctx := context.Background()

	plan := createPlan(t, svc, user.ID, model.GoalBalancedDiet, 1)
	if _, err := svc.Advance(ctx, plan.ID, model.StrictlyFollowed, nil); err != nil {
		t.Fatalf("advance: %v", err)
	}
	createPlan(t, svc, user.ID, model.GoalBalancedDiet, 2)
}

func TestCreatePlanWithEmptyCatalog(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	user := seedUser(t, sqldb)
	svc := newPlanService(t, sqldb)

	plan := createPlan(t, svc, user.ID, model.GoalLowSodium, 4)
	if got := countPlanRows(t, sqldb, "meal_entries", plan.ID); got != 0 {
		t.Fatalf("expected no entries for an empty catalog, got %d", got)
	}
	if got := countPlanRows(t, sqldb, "meal_recommendations", plan.ID); got != 0 {
		t.Fatalf("expected no recommendations for an empty catalog, got %d", got)
	}
}

func TestLowSodiumPlanDrawsFromCatalog(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	foods := seedCatalog(t, sqldb,
		service.FoodInput{Name: "Ham", CaloriesPer100g: 145, ProteinPer100g: 21, SodiumMgPer100g: 100},
		service.FoodInput{Name: "Rice", CaloriesPer100g: 130, ProteinPer100g: 2.7, SodiumMgPer100g: 5},
		service.FoodInput{Name: "Chicken", CaloriesPer100g: 165, ProteinPer100g: 31, SodiumMgPer100g: 74},
		service.FoodInput{Name: "Broccoli", CaloriesPer100g: 34, ProteinPer100g: 2.8, SodiumMgPer100g: 33},
	)
	user := seedUser(t, sqldb)
	svc := newPlanService(t, sqldb)
	ctx := context.Background()

	plan := createPlan(t, svc, user.ID, model.GoalLowSodium, 3)
	known := map[int64]bool{}
	for _, f := range foods {
		known[f.ID] = true
	}
	detail, err := service.GetPlanDetail(ctx, sqldb, plan.ID)
	if err != nil {
		t.Fatalf("plan detail: %v", err)
	}
	total := 0
	for _, day := range detail.Days {
		for _, e := range day.Meals {
			if !known[e.FoodItemID] {
				t.Fatalf("entry uses food %d outside the catalog", e.FoodItemID)
			}
			total++
		}
	}
	if total != 9 {
		t.Fatalf("expected 9 entries, got %d", total)
	}

	ranked := planner.Rank(foods, model.GoalLowSodium, nil)
	if ranked[0].SodiumMgPer100g != 5 || ranked[1].SodiumMgPer100g != 33 || ranked[3].SodiumMgPer100g != 100 {
		t.Fatalf("unexpected ranking %+v", ranked)
	}
}

func TestDeletePlan(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	seedCatalog(t, sqldb)
	user := seedUser(t, sqldb)
	svc := newPlanService(t, sqldb)
	ctx := context.Background()

	plan := createPlan(t, svc, user.ID, model.GoalWeightLoss, 2)
	if err := svc.DeletePlan(ctx, plan.ID); err != nil {
		t.Fatalf("delete plan: %v", err)
	}
	if err := svc.DeletePlan(ctx, plan.ID); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
	if got := countPlanRows(t, sqldb, "meal_recommendations", plan.ID); got != 0 {
		t.Fatalf("expected recommendations removed, got %d", got)
	}
}

func TestCompletePlanRequiresFinishedDays(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	seedCatalog(t, sqldb)
	user := seedUser(t, sqldb)
	svc := newPlanService(t, sqldb)

	plan := createPlan(t, svc, user.ID, model.GoalWeightLoss, 2)
	if err := svc.CompletePlan(context.Background(), plan.ID); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.CompletePlan(context.Background(), 999); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
