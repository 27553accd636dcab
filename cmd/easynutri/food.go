package easynutri

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/service"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage the food catalog",
}

var foodIn service.FoodInput

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a catalog food (values per 100g)",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := foodIn
		return withDB(func(sqldb *sql.DB) error {
			f, err := service.CreateFood(cmd.Context(), sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added food %d (%s)\n", f.ID, f.Name)
			return nil
		})
	},
}

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			foods, err := service.ListFoods(cmd.Context(), sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tKCAL\tPROTEIN_G\tCARBS_G\tFAT_G\tSODIUM_MG")
			for _, f := range foods {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d\t%.1f\t%.1f\t%.1f\t%d\n", f.ID, f.Name, f.CaloriesPer100g, f.ProteinPer100g, f.CarbsPer100g, f.FatPer100g, f.SodiumMgPer100g)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodAddCmd, foodListCmd)

	foodAddCmd.Flags().StringVar(&foodIn.Name, "name", "", "Food name")
	foodAddCmd.Flags().IntVar(&foodIn.CaloriesPer100g, "calories", 0, "Calories per 100g")
	foodAddCmd.Flags().Float64Var(&foodIn.ProteinPer100g, "protein", 0, "Protein grams per 100g")
	foodAddCmd.Flags().Float64Var(&foodIn.CarbsPer100g, "carbs", 0, "Carb grams per 100g")
	foodAddCmd.Flags().Float64Var(&foodIn.FatPer100g, "fat", 0, "Fat grams per 100g")
	foodAddCmd.Flags().IntVar(&foodIn.SodiumMgPer100g, "sodium", 0, "Sodium mg per 100g")
	_ = foodAddCmd.MarkFlagRequired("name")
}
