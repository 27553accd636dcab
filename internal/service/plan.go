package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/logging"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/model"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/planner"
)

// MaxDurationDays bounds plan length.
const MaxDurationDays = 365

// PlanService owns every write to a plan and its generated rows.
type PlanService struct {
	db        *sql.DB
	rng       planner.Rand
	log       *zap.Logger
	baseCount int
}

// NewPlanService wires the engine to db. A nil rng is seeded from time and a
// nil logger discards output.
func NewPlanService(db *sql.DB, rng planner.Rand, log *zap.Logger) *PlanService {
	if rng == nil {
		rng = planner.NewRand(nil)
	}
	return &PlanService{
		db:        db,
		rng:       rng,
		log:       logging.OrNop(log),
		baseCount: planner.DefaultBaseCount,
	}
}

type CreatePlanInput struct {
	UserID       int64      `json:"user_id"`
	Goal         model.Goal `json:"goal"`
	DurationDays int        `json:"duration_days"`
}

func (in CreatePlanInput) validate() error {
	if !in.Goal.Valid() {
		return validationf("unknown goal %q", in.Goal)
	}
	if in.DurationDays < 1 || in.DurationDays > MaxDurationDays {
		return validationf("duration_days must be between 1 and %d, got %d", MaxDurationDays, in.DurationDays)
	}
	if in.UserID <= 0 {
		return validationf("user_id is required")
	}
	return nil
}

// CreatePlan inserts an active plan at day 0 and generates meals for every
// day. It fails with ErrConflict when the user already has an active plan.
func (s *PlanService) CreatePlan(ctx context.Context, in CreatePlanInput) (model.Plan, error) {
	if err := in.validate(); err != nil {
		return model.Plan{}, err
	}
	var plan model.Plan
	var generated planner.GeneratedMeals
	err := withTx(ctx, s.db, "create plan", func(tx *sql.Tx) error {
		var err error
		plan, generated, err = s.createPlanTx(ctx, tx, in)
		return err
	})
	if err != nil {
		return model.Plan{}, err
	}
	s.log.Info("plan created",
		zap.Int64("plan_id", plan.ID),
		zap.Int64("user_id", plan.UserID),
		zap.String("goal", string(plan.Goal)),
		zap.Int("duration_days", plan.DurationDays),
		zap.Int("entries", len(generated.Entries)),
		zap.Int("recommendations", len(generated.Recommendations)),
	)
	return plan, nil
}

// ReplacePlan deletes the user's active plan, if any, and creates a new one
// in the same transaction.
func (s *PlanService) ReplacePlan(ctx context.Context, in CreatePlanInput) (model.Plan, error) {
	if err := in.validate(); err != nil {
		return model.Plan{}, err
	}
	var plan model.Plan
	var replaced int64
	err := withTx(ctx, s.db, "replace plan", func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT id FROM meal_plans WHERE user_id = ? AND status = 'active'`, in.UserID).Scan(&replaced); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("find active plan for user %d: %w", in.UserID, err)
		}
		if replaced != 0 {
			if _, err := tx.ExecContext(ctx, `DELETE FROM meal_plans WHERE id = ?`, replaced); err != nil {
				return fmt.Errorf("delete plan %d: %w", replaced, err)
			}
		}
		var err error
		plan, _, err = s.createPlanTx(ctx, tx, in)
		return err
	})
	if err != nil {
		return model.Plan{}, err
	}
	s.log.Info("plan replaced",
		zap.Int64("plan_id", plan.ID),
		zap.Int64("replaced_plan_id", replaced),
		zap.Int64("user_id", plan.UserID),
	)
	return plan, nil
}

func (s *PlanService) createPlanTx(ctx context.Context, tx *sql.Tx, in CreatePlanInput) (model.Plan, planner.GeneratedMeals, error) {
	if _, err := userByID(ctx, tx, in.UserID); err != nil {
		return model.Plan{}, planner.GeneratedMeals{}, err
	}
	var active int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM meal_plans WHERE user_id = ? AND status = 'active'`, in.UserID).Scan(&active); err != nil {
		return model.Plan{}, planner.GeneratedMeals{}, fmt.Errorf("count active plans for user %d: %w", in.UserID, err)
	}
	if active > 0 {
		return model.Plan{}, planner.GeneratedMeals{}, fmt.Errorf("%w: user %d already has an active plan", ErrConflict, in.UserID)
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO meal_plans(user_id, goal, duration_days, status, current_day) VALUES(?, ?, ?, 'active', 0)`,
		in.UserID, string(in.Goal), in.DurationDays)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Plan{}, planner.GeneratedMeals{}, fmt.Errorf("%w: user %d already has an active plan", ErrConflict, in.UserID)
		}
		return model.Plan{}, planner.GeneratedMeals{}, fmt.Errorf("insert plan: %w", err)
	}
	planID, err := res.LastInsertId()
	if err != nil {
		return model.Plan{}, planner.GeneratedMeals{}, fmt.Errorf("read plan id: %w", err)
	}

	catalog, err := listFoods(ctx, tx)
	if err != nil {
		return model.Plan{}, planner.GeneratedMeals{}, err
	}
	sel := planner.Select(catalog, in.Goal, planner.History{}, s.baseCount, s.rng)
	generated := planner.Generate(planID, 0, in.DurationDays, sel.Foods, 1.0, s.rng)
	if err := insertGenerated(ctx, tx, generated); err != nil {
		return model.Plan{}, planner.GeneratedMeals{}, err
	}

	plan, err := getPlan(ctx, tx, planID)
	if err != nil {
		return model.Plan{}, planner.GeneratedMeals{}, err
	}
	return plan, generated, nil
}

// DeletePlan removes a plan and, by cascade, all of its rows.
func (s *PlanService) DeletePlan(ctx context.Context, planID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM meal_plans WHERE id = ?`, planID)
	if err != nil {
		return fmt.Errorf("delete plan %d: %w", planID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for delete: %w", err)
	}
	if affected == 0 {
		return notFoundf("plan %d", planID)
	}
	s.log.Info("plan deleted", zap.Int64("plan_id", planID))
	return nil
}

// CompletePlan marks a plan whose days are all tracked as completed. It is a
// no-op for a plan that is already completed.
func (s *PlanService) CompletePlan(ctx context.Context, planID int64) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE meal_plans SET status = 'completed', updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND status = 'active' AND current_day >= duration_days`, planID)
	if err != nil {
		return fmt.Errorf("complete plan %d: %w", planID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for complete: %w", err)
	}
	if affected == 1 {
		s.log.Info("plan completed", zap.Int64("plan_id", planID))
		return nil
	}
	plan, err := getPlan(ctx, s.db, planID)
	if err != nil {
		return err
	}
	if plan.Status == model.PlanCompleted {
		return nil
	}
	return validationf("plan %d still has %d days remaining", planID, plan.DaysRemaining())
}
