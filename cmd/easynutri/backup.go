package easynutri

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/service"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create and verify database backups",
}

var (
	backupOut  string
	backupDir  string
	verifyFile string
)

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write a checksummed copy of the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		out := backupOut
		if out == "" {
			dir := backupDir
			if dir == "" {
				dir = filepath.Join(filepath.Dir(path), "backups")
			}
			out = filepath.Join(dir, fmt.Sprintf("easynutri-%s.db", time.Now().Format("20060102-150405")))
		}
		return withDB(func(sqldb *sql.DB) error {
			info, err := service.CreateBackup(cmd.Context(), sqldb, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created backup: %s\n", info.Path)
			fmt.Fprintf(cmd.OutOrStdout(), "Checksum: %s\n", info.Checksum)
			return nil
		})
	},
}

var backupVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a backup against its stored checksum",
	RunE: func(cmd *cobra.Command, args []string) error {
		if verifyFile == "" {
			return fmt.Errorf("--file is required")
		}
		info, err := service.VerifyBackup(verifyFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backup OK: %s (%d bytes)\n", info.Path, info.SizeBytes)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupVerifyCmd)

	backupCreateCmd.Flags().StringVar(&backupOut, "out", "", "Backup output file path")
	backupCreateCmd.Flags().StringVar(&backupDir, "dir", "", "Backup directory (used when --out is empty)")
	backupVerifyCmd.Flags().StringVar(&verifyFile, "file", "", "Backup .db file path")
}
