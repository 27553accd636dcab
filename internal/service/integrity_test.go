package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/model"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/service"
)

func TestRunDoctorFindsAndFixesTerminalPlans(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	seedCatalog(t, sqldb)
	user := seedUser(t, sqldb)
	svc := newPlanService(t, sqldb)
	ctx := context.Background()

	plan := createPlan(t, svc, user.ID, model.GoalWeightLoss, 1)
	if _, err := svc.AdvanceDay(ctx, plan.ID, model.StrictlyFollowed, nil); err != nil {
		t.Fatalf("advance day: %v", err)
	}

	report, err := service.RunDoctor(ctx, sqldb, false)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if report.TerminalActivePlans != 1 || report.TrackingMismatches != 0 || report.MissingFutureDays != 0 {
		t.Fatalf("unexpected report %+v", report)
	}

	report, err = service.RunDoctor(ctx, sqldb, true)
	if err != nil {
		t.Fatalf("doctor fix: %v", err)
	}
	if report.CompletedPlans != 1 {
		t.Fatalf("expected 1 plan completed, got %+v", report)
	}
	got, _ := service.GetPlan(ctx, sqldb, plan.ID)
	if got.Status != model.PlanCompleted {
		t.Fatalf("expected plan completed after fix, got %s", got.Status)
	}
}

func TestRunDoctorReportsMissingDaysAndMismatches(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	seedCatalog(t, sqldb)
	user := seedUser(t, sqldb)
	svc := newPlanService(t, sqldb)
	ctx := context.Background()

	plan := createPlan(t, svc, user.ID, model.GoalMuscleGain, 3)
	if _, err := sqldb.Exec(`DELETE FROM meal_entries WHERE meal_plan_id = ? AND day_index = 2`, plan.ID); err != nil {
		t.Fatalf("delete entries: %v", err)
	}
	if _, err := sqldb.Exec(`UPDATE meal_plans SET current_day = 1 WHERE id = ?`, plan.ID); err != nil {
		t.Fatalf("update plan: %v", err)
	}
	report, err := service.RunDoctor(ctx, sqldb, false)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if report.MissingFutureDays != 1 || report.TrackingMismatches != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestExportPlan(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	seedCatalog(t, sqldb)
	user := seedUser(t, sqldb)
	svc := newPlanService(t, sqldb)
	ctx := context.Background()

	plan := createPlan(t, svc, user.ID, model.GoalBalancedDiet, 2)
	if _, err := svc.Advance(ctx, plan.ID, model.MoreHealthy, nil); err != nil {
		t.Fatalf("advance: %v", err)
	}
	out, err := service.ExportPlan(ctx, sqldb, plan.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if out.Version != 1 || out.ExportedAt == "" {
		t.Fatalf("unexpected export header %+v", out)
	}
	if len(out.Detail.Days) != 2 || out.Detail.Days[0].Feedback != model.MoreHealthy {
		t.Fatalf("unexpected exported days %+v", out.Detail.Days)
	}
	if out.Nutrition.Consumed.DaysTracked != 1 || len(out.Progress.Metrics) != 4 {
		t.Fatalf("unexpected exported summaries %+v %+v", out.Nutrition, out.Progress)
	}
}

func TestBackupCreateAndVerify(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	seedCatalog(t, sqldb)
	ctx := context.Background()

	out := filepath.Join(t.TempDir(), "backups", "easynutri-backup.db")
	info, err := service.CreateBackup(ctx, sqldb, out)
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if info.SizeBytes == 0 || info.Checksum == "" {
		t.Fatalf("unexpected backup info %+v", info)
	}
	if _, err := service.VerifyBackup(out); err != nil {
		t.Fatalf("verify backup: %v", err)
	}
	if _, err := service.CreateBackup(ctx, sqldb, out); !errors.Is(err, service.ErrConflict) {
		t.Fatalf("expected conflict for existing backup, got %v", err)
	}

	if err := os.WriteFile(out+".sha256", []byte("deadbeef\n"), 0o644); err != nil {
		t.Fatalf("tamper checksum: %v", err)
	}
	if _, err := service.VerifyBackup(out); err == nil {
		t.Fatalf("expected checksum mismatch")
	}
}
