// acs scores acceptance criteria documents and serves the scoring engine
// over MCP.
//
// Usage:
//
//	acs score criteria.md   # Score a document
//	acs watch criteria.md   # Re-score on every save
//	acs serve               # Start the MCP server (stdio transport)
package main

import (
	"os"

	"github.com/bordenet/acceptance-criteria-assistant/internal/cli"
	"github.com/bordenet/acceptance-criteria-assistant/internal/config"
)

func main() {
	// A missing .env is fine; a malformed one is not worth dying over.
	_ = config.LoadEnvFile("")
	os.Exit(cli.Execute())
}
