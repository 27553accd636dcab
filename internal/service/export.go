package service

import (
	"context"
	"database/sql"
	"time"
)

const exportVersion = 1

// PlanExport is a self-contained JSON snapshot of one plan.
type PlanExport struct {
	Version    int                `json:"version"`
	ExportedAt string             `json:"exported_at"`
	Detail     PlanDetail         `json:"detail"`
	Nutrition  NutritionSummary   `json:"nutrition"`
	Progress   GoalProgressReport `json:"progress"`
}

func ExportPlan(ctx context.Context, db *sql.DB, planID int64) (*PlanExport, error) {
	detail, err := GetPlanDetail(ctx, db, planID)
	if err != nil {
		return nil, err
	}
	nutrition, err := PlanNutrition(ctx, db, planID)
	if err != nil {
		return nil, err
	}
	progress, err := GoalProgress(ctx, db, planID)
	if err != nil {
		return nil, err
	}
	return &PlanExport{
		Version:    exportVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Detail:     detail,
		Nutrition:  nutrition,
		Progress:   progress,
	}, nil
}
