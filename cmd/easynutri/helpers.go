package easynutri

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/app"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/db"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/logging"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/model"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/planner"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/service"
)

func resolveDBPath() (string, error) {
	return app.ResolveDBPath(cfg.DBPath)
}

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

func newLogger() (*zap.Logger, error) {
	return logging.New(cfg.LogLevel)
}

// withPlans opens the database and hands run a PlanService seeded from
// --seed or the environment.
func withPlans(run func(*service.PlanService) error) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	return withDB(func(sqldb *sql.DB) error {
		return run(service.NewPlanService(sqldb, planner.NewRand(cfg.Seed), log))
	})
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

// parseActual reads MEAL=FOOD_ID:GRAMS, e.g. lunch=12:180.
func parseActual(value string) (service.ActualMealInput, error) {
	meal, rest, ok := strings.Cut(value, "=")
	if !ok {
		return service.ActualMealInput{}, fmt.Errorf("invalid --actual %q (expected meal=FOOD_ID:GRAMS)", value)
	}
	mealType, err := model.ParseMealType(meal)
	if err != nil {
		return service.ActualMealInput{}, err
	}
	food, grams, ok := strings.Cut(rest, ":")
	if !ok {
		return service.ActualMealInput{}, fmt.Errorf("invalid --actual %q (expected meal=FOOD_ID:GRAMS)", value)
	}
	foodID, err := parseInt64Arg("food id", food)
	if err != nil {
		return service.ActualMealInput{}, err
	}
	g, err := strconv.Atoi(strings.TrimSpace(grams))
	if err != nil {
		return service.ActualMealInput{}, fmt.Errorf("invalid grams %q", grams)
	}
	return service.ActualMealInput{MealType: mealType, FoodItemID: foodID, Grams: g}, nil
}

func optionalInt(set bool, v int) *int {
	if !set {
		return nil
	}
	return &v
}
