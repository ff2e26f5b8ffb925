package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ftcdoctor/logdoctor/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Show the current version of logdoctor`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "logdoctor %s\n", version.Version)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
