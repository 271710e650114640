package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bordenet/acceptance-criteria-assistant/internal/server"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "acs %s\n", server.Version)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
