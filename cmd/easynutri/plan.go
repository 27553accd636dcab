package easynutri

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/model"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/service"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Create, follow and inspect meal plans",
}

var (
	planUserID  int64
	planGoal    string
	planDays    int
	planReplace bool
)

var planCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a meal plan for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		goal, err := model.ParseGoal(planGoal)
		if err != nil {
			return err
		}
		in := service.CreatePlanInput{UserID: planUserID, Goal: goal, DurationDays: planDays}
		return withPlans(func(svc *service.PlanService) error {
			create := svc.CreatePlan
			if planReplace {
				create = svc.ReplacePlan
			}
			plan, err := create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created plan %d: %s for %d days\n", plan.ID, plan.Goal, plan.DurationDays)
			return nil
		})
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show <plan-id>",
	Short: "Show every day of a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planID, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			detail, err := service.GetPlanDetail(cmd.Context(), sqldb, planID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printPlanHeader(out, detail.Plan)
			for _, d := range detail.Days {
				marker := ""
				if d.DayIndex == detail.Plan.CurrentDay {
					marker = " (today)"
				}
				if d.Feedback != "" {
					marker = " [" + string(d.Feedback) + "]"
				}
				fmt.Fprintf(out, "Day %d%s\n", d.DayIndex+1, marker)
				for _, e := range d.Meals {
					fmt.Fprintf(out, "  %s\t%s\t%dg\n", e.MealType, e.Food.Name, e.Grams)
				}
				for _, a := range d.Actual {
					fmt.Fprintf(out, "  actual %s\t%s\t%dg\n", a.MealType, a.Food.Name, a.Grams)
				}
			}
			return nil
		})
	},
}

var planTodayCmd = &cobra.Command{
	Use:   "today <plan-id>",
	Short: "Show today's planned and eaten meals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planID, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			ctx := cmd.Context()
			plan, err := service.GetPlan(ctx, sqldb, planID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printPlanHeader(out, plan)
			if plan.Completed() {
				fmt.Fprintln(out, "Plan finished: no meals left")
				return nil
			}
			meals, err := service.TodayMeals(ctx, sqldb, planID)
			if err != nil {
				return err
			}
			for _, mt := range model.MealTypes {
				for _, e := range meals[mt] {
					fmt.Fprintf(out, "%s\t%s\t%dg\n", mt, e.Food.Name, e.Grams)
				}
			}
			actual, err := service.TodayActualMeals(ctx, sqldb, planID)
			if err != nil {
				return err
			}
			for _, a := range actual {
				fmt.Fprintf(out, "actual %s\t%s\t%dg\n", a.MealType, a.Food.Name, a.Grams)
			}
			return nil
		})
	},
}

var (
	optionsDay  int
	optionsMeal string
)

var planOptionsCmd = &cobra.Command{
	Use:   "options <plan-id>",
	Short: "List alternative options for one meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planID, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		mealType, err := model.ParseMealType(optionsMeal)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			day := optionsDay
			if !cmd.Flags().Changed("day") {
				plan, err := service.GetPlan(cmd.Context(), sqldb, planID)
				if err != nil {
					return err
				}
				day = plan.CurrentDay
			}
			recs, err := service.RecommendationsFor(cmd.Context(), sqldb, planID, day, mealType)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "FOOD_ID\tNAME\tGRAMS")
			for _, r := range recs {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d\n", r.FoodItemID, r.Food.Name, r.RecommendedGrams)
			}
			return nil
		})
	},
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete <plan-id>",
	Short: "Delete a plan and everything recorded for it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planID, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		return withPlans(func(svc *service.PlanService) error {
			if err := svc.DeletePlan(cmd.Context(), planID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted plan %d\n", planID)
			return nil
		})
	},
}

var planExportOut string

var planExportCmd = &cobra.Command{
	Use:   "export <plan-id>",
	Short: "Export a plan as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planID, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			data, err := service.ExportPlan(cmd.Context(), sqldb, planID)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal export json: %w", err)
			}
			if strings.TrimSpace(planExportOut) == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			if err := os.WriteFile(planExportOut, b, 0o644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported plan %d to %s\n", planID, planExportOut)
			return nil
		})
	},
}

func printPlanHeader(out io.Writer, p model.Plan) {
	fmt.Fprintf(out, "Plan %d: %s, day %d of %d (%s)\n", p.ID, p.Goal, min(p.CurrentDay+1, p.DurationDays), p.DurationDays, p.Status)
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planCreateCmd, planShowCmd, planTodayCmd, planOptionsCmd, planDeleteCmd, planExportCmd)

	planCreateCmd.Flags().Int64Var(&planUserID, "user", 0, "User id")
	planCreateCmd.Flags().StringVar(&planGoal, "goal", "", "Goal: weight_loss, muscle_gain, low_sodium or balanced_diet")
	planCreateCmd.Flags().IntVar(&planDays, "days", 7, "Plan length in days")
	planCreateCmd.Flags().BoolVar(&planReplace, "replace", false, "Replace the user's active plan if there is one")
	_ = planCreateCmd.MarkFlagRequired("user")
	_ = planCreateCmd.MarkFlagRequired("goal")

	planOptionsCmd.Flags().IntVar(&optionsDay, "day", 0, "Day index, 0-based (default current day)")
	planOptionsCmd.Flags().StringVar(&optionsMeal, "meal", "", "Meal type: breakfast, lunch or dinner")
	_ = planOptionsCmd.MarkFlagRequired("meal")

	planExportCmd.Flags().StringVar(&planExportOut, "out", "", "Write JSON to this file instead of stdout")
}
