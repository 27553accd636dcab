package easynutri

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/config"
)

var (
	dbPath   string
	seedFlag int64
	cfg      config.Config
)

var rootCmd = &cobra.Command{
	Use:   "easynutri",
	Short: "easynutri builds adaptive meal plans from your feedback",
	Long:  "easynutri is a local-first meal planner: it generates a plan for a nutrition goal and regenerates the remaining days as you report how each day went.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if dbPath != "" {
			loaded.DBPath = dbPath
		}
		if cmd.Flags().Changed("seed") {
			seed := seedFlag
			loaded.Seed = &seed
		}
		cfg = loaded
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (env "+config.EnvDB+")")
	rootCmd.PersistentFlags().Int64Var(&seedFlag, "seed", 0, "Seed for the planner's random source (env "+config.EnvSeed+")")
}
