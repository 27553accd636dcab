package easynutri

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/model"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/planner"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Inspect nutrition goals",
}

var goalTargetsCmd = &cobra.Command{
	Use:   "targets [goal]",
	Short: "Show per-day targets for a goal (all goals when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		goals := model.Goals
		if len(args) == 1 {
			g, err := model.ParseGoal(args[0])
			if err != nil {
				return err
			}
			goals = []model.Goal{g}
		}
		out := cmd.OutOrStdout()
		for _, g := range goals {
			fmt.Fprintf(out, "%s\n", g)
			for _, t := range planner.TargetsFor(g).Targets() {
				fmt.Fprintf(out, "  %s\t%g%s/day\n", t.Metric, t.PerDay, t.Unit)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalTargetsCmd)
}
