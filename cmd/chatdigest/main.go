// Command chatdigest publishes chat group summaries as a searchable,
// topic-aware corpus and serves it to the terminal, HTTP and MCP clients.
package main

import (
	"os"

	"github.com/custodia-labs/chatdigest/internal/adapters/driving/cli"
)

// Set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
