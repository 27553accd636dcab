package easynutri

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/model"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/service"
)

var (
	advanceFeedback string
	advanceActuals  []string
)

var planAdvanceCmd = &cobra.Command{
	Use:   "advance <plan-id>",
	Short: "Close today with feedback and regenerate the remaining days",
	Example: `  easynutri plan advance 1 --feedback strictly_followed
  easynutri plan advance 1 --feedback less_healthy --actual lunch=4:250 --actual dinner=2:300`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planID, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		feedback, err := model.ParseFeedback(advanceFeedback)
		if err != nil {
			return err
		}
		actuals := make([]service.ActualMealInput, 0, len(advanceActuals))
		for _, raw := range advanceActuals {
			a, err := parseActual(raw)
			if err != nil {
				return err
			}
			actuals = append(actuals, a)
		}
		return withPlans(func(svc *service.PlanService) error {
			res, err := svc.Advance(cmd.Context(), planID, feedback, actuals)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Closed day %d of plan %d (%s)\n", res.ClosedDay+1, planID, feedback)
			if res.ActualRecorded > 0 {
				fmt.Fprintf(out, "Recorded %d actual meals\n", res.ActualRecorded)
			}
			if res.Completed {
				fmt.Fprintln(out, "Plan completed")
				return nil
			}
			fmt.Fprintf(out, "Regenerated %d remaining days\n", res.RegeneratedDays)
			return nil
		})
	},
}

var planProgressCmd = &cobra.Command{
	Use:   "progress <plan-id>",
	Short: "Show progress toward the plan's goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planID, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.GoalProgress(cmd.Context(), sqldb, planID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Goal: %s (%d of %d days tracked)\n", report.Goal, report.DaysTracked, report.DurationDays)
			fmt.Fprintln(out, "METRIC\tCURRENT\tTARGET\tPERCENT\tAVG/DAY\tTARGET/DAY")
			for _, m := range report.Metrics {
				fmt.Fprintf(out, "%s\t%.1f%s\t%.1f%s\t%.1f%%\t%.1f\t%.1f\n", m.Metric, m.Current, m.Unit, m.TargetTotal, m.Unit, m.Percentage, m.AvgPerDay, m.PerDay)
			}
			return nil
		})
	},
}

var planNutritionCmd = &cobra.Command{
	Use:   "nutrition <plan-id>",
	Short: "Show planned totals and what was consumed so far",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planID, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			summary, err := service.PlanNutrition(cmd.Context(), sqldb, planID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			r, c := summary.Recommended, summary.Consumed
			fmt.Fprintf(out, "Recommended: %d kcal | P %.1fg | C %.1fg | F %.1fg | Na %dmg\n", r.Calories, r.Protein, r.Carbs, r.Fat, r.Sodium)
			fmt.Fprintf(out, "Consumed (%d days): %d kcal | P %.1fg | C %.1fg | F %.1fg | Na %dmg\n", c.DaysTracked, c.Calories, c.Protein, c.Carbs, c.Fat, c.Sodium)
			return nil
		})
	},
}

func init() {
	planCmd.AddCommand(planAdvanceCmd, planProgressCmd, planNutritionCmd)

	planAdvanceCmd.Flags().StringVar(&advanceFeedback, "feedback", "", "strictly_followed, less_healthy or more_healthy")
	planAdvanceCmd.Flags().StringArrayVar(&advanceActuals, "actual", nil, "What you ate instead: meal=FOOD_ID:GRAMS (repeatable)")
	_ = planAdvanceCmd.MarkFlagRequired("feedback")
}
