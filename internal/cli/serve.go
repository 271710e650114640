package cli

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/bordenet/acceptance-criteria-assistant/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cleanup, err := server.New(appConfig, logger)
		if err != nil {
			return fmt.Errorf("creating server: %w", err)
		}
		defer cleanup()

		logger.Info("serving MCP on stdio", "version", server.Version)
		return mcpserver.ServeStdio(s)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
