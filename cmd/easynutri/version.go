package easynutri

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/db"
)

// Set with -ldflags "-X .../cmd/easynutri.version=...".
var (
	version = "dev"
	commit  = "none"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version/build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "easynutri %s (%s)\n", version, commit)
		fmt.Fprintf(out, "go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "schema: v%d\n", db.LatestVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
