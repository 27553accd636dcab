package service

import (
	"context"
	"database/sql"
	"fmt"
)

type DoctorReport struct {
	// TrackingMismatches counts plans whose tracked days differ from current_day.
	TrackingMismatches int `json:"tracking_mismatches"`
	// TerminalActivePlans counts plans with no days left that were never
	// marked completed.
	TerminalActivePlans int `json:"terminal_active_plans"`
	// MissingFutureDays counts remaining days of active plans with no planned
	// meals while the catalog has food in it.
	MissingFutureDays int `json:"missing_future_days"`
	CompletedPlans    int `json:"completed_plans,omitempty"`
}

// RunDoctor checks plan bookkeeping. With fix set, plans stuck at their last
// day are marked completed.
func RunDoctor(ctx context.Context, db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}
	if err := db.QueryRowContext(ctx, `
SELECT COUNT(1) FROM meal_plans p
WHERE p.current_day != (SELECT COUNT(1) FROM daily_trackings t WHERE t.meal_plan_id = p.id)`).Scan(&report.TrackingMismatches); err != nil {
		return report, fmt.Errorf("doctor tracking check: %w", err)
	}
	if err := db.QueryRowContext(ctx, `
SELECT COUNT(1) FROM meal_plans WHERE status = 'active' AND current_day >= duration_days`).Scan(&report.TerminalActivePlans); err != nil {
		return report, fmt.Errorf("doctor terminal plan check: %w", err)
	}

	var foods int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM food_items`).Scan(&foods); err != nil {
		return report, fmt.Errorf("doctor catalog count: %w", err)
	}
	if foods > 0 {
		if err := db.QueryRowContext(ctx, `
SELECT COALESCE(SUM(p.duration_days - p.current_day - (
  SELECT COUNT(DISTINCT e.day_index) FROM meal_entries e
  WHERE e.meal_plan_id = p.id AND e.day_index >= p.current_day AND e.day_index < p.duration_days
)), 0)
FROM meal_plans p WHERE p.status = 'active' AND p.current_day < p.duration_days`).Scan(&report.MissingFutureDays); err != nil {
			return report, fmt.Errorf("doctor future day check: %w", err)
		}
	}

	if fix && report.TerminalActivePlans > 0 {
		res, err := db.ExecContext(ctx, `
UPDATE meal_plans SET status = 'completed', updated_at = CURRENT_TIMESTAMP
WHERE status = 'active' AND current_day >= duration_days`)
		if err != nil {
			return report, fmt.Errorf("doctor fix terminal plans: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return report, fmt.Errorf("doctor fix rows affected: %w", err)
		}
		report.CompletedPlans = int(n)
	}
	return report, nil
}
