package easynutri

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/service"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var (
	userName     string
	userHeightCm int
	userWeightKg int
	userAge      int
	userSex      string
)

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		in := service.UserInput{
			Name:     userName,
			HeightCm: optionalInt(flags.Changed("height-cm"), userHeightCm),
			WeightKg: optionalInt(flags.Changed("weight-kg"), userWeightKg),
			Age:      optionalInt(flags.Changed("age"), userAge),
			Sex:      userSex,
		}
		return withDB(func(sqldb *sql.DB) error {
			u, err := service.CreateUser(cmd.Context(), sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added user %d (%s)\n", u.ID, u.Name)
			return nil
		})
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			users, err := service.ListUsers(cmd.Context(), sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tHEIGHT_CM\tWEIGHT_KG\tAGE\tSEX")
			for _, u := range users {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, intOrDash(u.HeightCm), intOrDash(u.WeightKg), intOrDash(u.Age), dashIfEmpty(u.Sex))
			}
			return nil
		})
	},
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userAddCmd, userListCmd)

	userAddCmd.Flags().StringVar(&userName, "name", "", "User name")
	userAddCmd.Flags().IntVar(&userHeightCm, "height-cm", 0, "Height in cm")
	userAddCmd.Flags().IntVar(&userWeightKg, "weight-kg", 0, "Weight in kg")
	userAddCmd.Flags().IntVar(&userAge, "age", 0, "Age in years")
	userAddCmd.Flags().StringVar(&userSex, "sex", "", "Sex (M or F)")
	_ = userAddCmd.MarkFlagRequired("name")
}
