package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ftcdoctor/logdoctor/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long:  `Create the configuration file with documented defaults if it does not exist yet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.GetConfigPath()
		if err := config.EnsureConfig(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Configuration ready at %s\n", path)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
}
