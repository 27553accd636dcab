package service

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/model"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/planner"
)

// ActualMealInput is what the user really ate for one meal of the day being
// closed. Inputs with no food or no grams are ignored.
type ActualMealInput struct {
	MealType   model.MealType `json:"meal_type"`
	FoodItemID int64          `json:"food_item_id"`
	Grams      int            `json:"grams"`
}

func (in ActualMealInput) empty() bool {
	return in.FoodItemID == 0 || in.Grams == 0
}

type AdvanceResult struct {
	PlanID          int64 `json:"plan_id"`
	ClosedDay       int   `json:"closed_day"`
	CurrentDay      int   `json:"current_day"`
	Completed       bool  `json:"completed"`
	ActualRecorded  int   `json:"actual_recorded"`
	RegeneratedDays int   `json:"regenerated_days"`
}

// Advance closes the plan's current day and, when that was the last day,
// marks the plan completed in a separate write.
func (s *PlanService) Advance(ctx context.Context, planID int64, feedback model.Feedback, actuals []ActualMealInput) (AdvanceResult, error) {
	res, err := s.AdvanceDay(ctx, planID, feedback, actuals)
	if err != nil {
		return res, err
	}
	if res.Completed {
		if err := s.CompletePlan(ctx, planID); err != nil {
			return res, err
		}
	}
	return res, nil
}

// AdvanceDay records feedback and actual meals for the current day, moves
// the plan to the next day and regenerates every remaining day from the
// updated history. All of it happens in one transaction. A plan with no
// days left fails with ErrAlreadyCompleted and nothing is written.
func (s *PlanService) AdvanceDay(ctx context.Context, planID int64, feedback model.Feedback, actuals []ActualMealInput) (AdvanceResult, error) {
	if !feedback.Valid() {
		return AdvanceResult{}, validationf("unknown feedback %q", feedback)
	}
	for _, a := range actuals {
		if a.Grams < 0 {
			return AdvanceResult{}, validationf("grams must be >= 0 for %s", a.MealType)
		}
		if a.FoodItemID < 0 {
			return AdvanceResult{}, validationf("food_item_id must be >= 0 for %s", a.MealType)
		}
		if !a.MealType.Valid() && !a.empty() {
			return AdvanceResult{}, validationf("unknown meal type %q", a.MealType)
		}
	}

	var out AdvanceResult
	var regen regenStats
	err := withTx(ctx, s.db, "advance day", func(tx *sql.Tx) error {
		plan, err := claimPlan(ctx, tx, planID)
		if err != nil {
			return err
		}
		day := plan.CurrentDay
		out = AdvanceResult{PlanID: planID, ClosedDay: day}

		recorded, err := recordActualMeals(ctx, tx, planID, day, actuals)
		if err != nil {
			return err
		}
		out.ActualRecorded = recorded

		if _, err := tx.ExecContext(ctx, `INSERT INTO daily_trackings(meal_plan_id, day_index, feedback) VALUES(?, ?, ?)`,
			planID, day, string(feedback)); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: day %d of plan %d is already tracked", ErrConflict, day, planID)
			}
			return fmt.Errorf("insert tracking for day %d: %w", day, err)
		}

		if _, err := tx.ExecContext(ctx, `UPDATE meal_plans SET current_day = current_day + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, planID); err != nil {
			return fmt.Errorf("advance plan %d: %w", planID, err)
		}
		plan.CurrentDay = day + 1
		out.CurrentDay = plan.CurrentDay
		out.Completed = plan.Completed()

		if !out.Completed {
			regen, err = s.regenerate(ctx, tx, plan)
			if err != nil {
				return err
			}
			out.RegeneratedDays = plan.DurationDays - plan.CurrentDay
		}
		return nil
	})
	if err != nil {
		return AdvanceResult{}, err
	}

	s.log.Info("day advanced",
		zap.Int64("plan_id", planID),
		zap.Int("closed_day", out.ClosedDay),
		zap.String("feedback", string(feedback)),
		zap.Int("actual_recorded", out.ActualRecorded),
		zap.Int("regenerated_days", out.RegeneratedDays),
		zap.Bool("completed", out.Completed),
	)
	if !out.Completed {
		s.log.Debug("plan regenerated",
			zap.Int64("plan_id", planID),
			zap.Float64("strictness", regen.selection.Strictness),
			zap.Int("target_count", regen.selection.TargetCount),
			zap.Int("selected_foods", len(regen.selection.Foods)),
			zap.Bool("history_biased", regen.selection.HistoryBiased),
			zap.Float64("portion_factor", regen.factor),
		)
	}
	return out, nil
}

// claimPlan takes the write lock on the plan with a guarded update so that
// only one advance per plan can get past this point at a time.
func claimPlan(ctx context.Context, tx *sql.Tx, planID int64) (model.Plan, error) {
	res, err := tx.ExecContext(ctx, `
UPDATE meal_plans SET updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND status = 'active' AND current_day < duration_days`, planID)
	if err != nil {
		return model.Plan{}, fmt.Errorf("claim plan %d: %w", planID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Plan{}, fmt.Errorf("read rows affected for claim: %w", err)
	}
	plan, err := getPlan(ctx, tx, planID)
	if err != nil {
		return model.Plan{}, err
	}
	if affected == 0 {
		return model.Plan{}, fmt.Errorf("%w: plan %d is at day %d of %d", ErrAlreadyCompleted, planID, plan.CurrentDay, plan.DurationDays)
	}
	return plan, nil
}

// recordActualMeals upserts one actual entry per meal type for day. Later
// inputs for the same meal type overwrite earlier ones.
func recordActualMeals(ctx context.Context, tx *sql.Tx, planID int64, day int, actuals []ActualMealInput) (int, error) {
	recorded := map[model.MealType]bool{}
	for _, a := range actuals {
		if a.empty() {
			continue
		}
		if _, err := foodByID(ctx, tx, a.FoodItemID); err != nil {
			return 0, validationf("actual %s: %v", a.MealType, err)
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO actual_meal_entries(meal_plan_id, food_item_id, day_index, meal_type, grams) VALUES(?, ?, ?, ?, ?)
ON CONFLICT(meal_plan_id, day_index, meal_type) DO UPDATE SET food_item_id = excluded.food_item_id, grams = excluded.grams`,
			planID, a.FoodItemID, day, string(a.MealType), a.Grams); err != nil {
			return 0, fmt.Errorf("record actual %s for day %d: %w", a.MealType, day, err)
		}
		recorded[a.MealType] = true
	}
	return len(recorded), nil
}

type regenStats struct {
	selection planner.Selection
	factor    float64
}

// regenerate rebuilds days [current_day, duration_days) from the plan's
// history. Everything is computed before the old rows are removed.
func (s *PlanService) regenerate(ctx context.Context, tx *sql.Tx, plan model.Plan) (regenStats, error) {
	trackings, err := listTrackings(ctx, tx, plan.ID)
	if err != nil {
		return regenStats{}, err
	}
	history, err := listActualMeals(ctx, tx, plan.ID, 0, plan.CurrentDay)
	if err != nil {
		return regenStats{}, err
	}
	consumed, err := consumedToDate(ctx, tx, plan)
	if err != nil {
		return regenStats{}, err
	}
	catalog, err := listFoods(ctx, tx)
	if err != nil {
		return regenStats{}, err
	}

	h := planner.HistoryFrom(trackings, history, plan.CurrentDay)
	sel := planner.Select(catalog, plan.Goal, h, s.baseCount, s.rng)
	factor := planner.AdjustmentFactor(planner.TargetsFor(plan.Goal), consumed)
	generated := planner.Generate(plan.ID, plan.CurrentDay, plan.DurationDays, sel.Foods, factor, s.rng)

	for _, table := range []string{"meal_entries", "meal_recommendations"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE meal_plan_id = ? AND day_index >= ?`, plan.ID, plan.CurrentDay); err != nil {
			return regenStats{}, fmt.Errorf("clear future %s for plan %d: %w", table, plan.ID, err)
		}
	}
	if err := insertGenerated(ctx, tx, generated); err != nil {
		return regenStats{}, err
	}
	return regenStats{selection: sel, factor: factor}, nil
}
