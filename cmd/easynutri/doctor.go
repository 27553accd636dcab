package easynutri

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/service"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run plan integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(cmd.Context(), sqldb, doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Tracking mismatches: %d\n", report.TrackingMismatches)
			fmt.Fprintf(out, "Finished plans still active: %d\n", report.TerminalActivePlans)
			fmt.Fprintf(out, "Remaining days without meals: %d\n", report.MissingFutureDays)
			if doctorFix {
				fmt.Fprintf(out, "Plans marked completed: %d\n", report.CompletedPlans)
				// Exit status reports what is left after fixing.
				report, err = service.RunDoctor(cmd.Context(), sqldb, false)
				if err != nil {
					return err
				}
			}
			if report.TrackingMismatches > 0 || report.TerminalActivePlans > 0 || report.MissingFutureDays > 0 {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Mark finished plans completed")
}
