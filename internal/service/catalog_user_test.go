package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/service"
)

func TestCreateFoodAndList(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	ctx := context.Background()

	foods := seedCatalog(t, sqldb)
	listed, err := service.ListFoods(ctx, sqldb)
	if err != nil {
		t.Fatalf("list foods: %v", err)
	}
	if len(listed) != len(foods) {
		t.Fatalf("expected %d foods, got %d", len(foods), len(listed))
	}
	for i := range foods {
		if listed[i] != foods[i] {
			t.Fatalf("food %d mismatch: %+v vs %+v", i, listed[i], foods[i])
		}
	}

	got, err := service.FoodByID(ctx, sqldb, foods[2].ID)
	if err != nil || got.Name != "Broccoli" {
		t.Fatalf("food by id: %+v, %v", got, err)
	}
	if _, err := service.FoodByID(ctx, sqldb, 12345); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateFoodValidation(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	ctx := context.Background()

	bad := []service.FoodInput{
		{Name: " ", CaloriesPer100g: 10},
		{Name: "Negative", CaloriesPer100g: -1},
		{Name: "Negative protein", ProteinPer100g: -0.5},
		{Name: "Negative sodium", SodiumMgPer100g: -3},
	}
	for _, in := range bad {
		if _, err := service.CreateFood(ctx, sqldb, in); !errors.Is(err, service.ErrValidation) {
			t.Fatalf("%+v: expected validation error, got %v", in, err)
		}
	}
}

func TestCreateUser(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	ctx := context.Background()

	height, age := 170, 30
	u, err := service.CreateUser(ctx, sqldb, service.UserInput{Name: " Grace ", HeightCm: &height, Age: &age, Sex: "f"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.Name != "Grace" || u.Sex != "F" || u.HeightCm == nil || *u.HeightCm != 170 || u.WeightKg != nil {
		t.Fatalf("unexpected user %+v", u)
	}
	if u.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}

	zero := 0
	bad := []service.UserInput{
		{Name: ""},
		{Name: "X", Sex: "Q"},
		{Name: "Y", WeightKg: &zero},
	}
	for _, in := range bad {
		if _, err := service.CreateUser(ctx, sqldb, in); !errors.Is(err, service.ErrValidation) {
			t.Fatalf("%+v: expected validation error, got %v", in, err)
		}
	}

	users, err := service.ListUsers(ctx, sqldb)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 || users[0].ID != u.ID {
		t.Fatalf("expected one user, got %+v", users)
	}
	if _, err := service.UserByID(ctx, sqldb, 77); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
