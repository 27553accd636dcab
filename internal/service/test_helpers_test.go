package service_test

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/db"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/model"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/planner"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "easynutri.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func newPlanService(t *testing.T, sqldb *sql.DB) *service.PlanService {
	t.Helper()
	seed := int64(7)
	return service.NewPlanService(sqldb, planner.NewRand(&seed), zaptest.NewLogger(t))
}

var defaultFoods = []service.FoodInput{
	{Name: "Chicken Breast", CaloriesPer100g: 165, ProteinPer100g: 31, CarbsPer100g: 0, FatPer100g: 3.6, SodiumMgPer100g: 74},
	{Name: "Brown Rice", CaloriesPer100g: 112, ProteinPer100g: 2.6, CarbsPer100g: 23, FatPer100g: 0.9, SodiumMgPer100g: 5},
	{Name: "Broccoli", CaloriesPer100g: 34, ProteinPer100g: 2.8, CarbsPer100g: 7, FatPer100g: 0.4, SodiumMgPer100g: 33},
	{Name: "Salmon", CaloriesPer100g: 208, ProteinPer100g: 20, CarbsPer100g: 0, FatPer100g: 13, SodiumMgPer100g: 59},
	{Name: "Greek Yogurt", CaloriesPer100g: 59, ProteinPer100g: 10, CarbsPer100g: 3.6, FatPer100g: 0.4, SodiumMgPer100g: 36},
	{Name: "Oats", CaloriesPer100g: 389, ProteinPer100g: 17, CarbsPer100g: 66, FatPer100g: 7, SodiumMgPer100g: 2},
	{Name: "Ham", CaloriesPer100g: 145, ProteinPer100g: 21, CarbsPer100g: 1.5, FatPer100g: 6, SodiumMgPer100g: 1200},
}

func seedCatalog(t *testing.T, sqldb *sql.DB, foods ...service.FoodInput) []model.FoodItem {
	t.Helper()
	if len(foods) == 0 {
		foods = defaultFoods
	}
	out := make([]model.FoodItem, 0, len(foods))
	for _, in := range foods {
		f, err := service.CreateFood(context.Background(), sqldb, in)
		if err != nil {
			t.Fatalf("create food %q: %v", in.Name, err)
		}
		out = append(out, f)
	}
	return out
}

func seedUser(t *testing.T, sqldb *sql.DB) model.User {
	t.Helper()
	u, err := service.CreateUser(context.Background(), sqldb, service.UserInput{Name: "Ada"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func createPlan(t *testing.T, svc *service.PlanService, userID int64, goal model.Goal, days int) model.Plan {
	t.Helper()
	p, err := svc.CreatePlan(context.Background(), service.CreatePlanInput{UserID: userID, Goal: goal, DurationDays: days})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}
	return p
}

func countPlanRows(t *testing.T, sqldb *sql.DB, table string, planID int64) int {
	t.Helper()
	var n int
	q := fmt.Sprintf(`SELECT COUNT(1) FROM %s WHERE meal_plan_id = ?`, table)
	if err := sqldb.QueryRow(q, planID).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
