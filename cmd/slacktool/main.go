// Command slacktool ingests a chat workspace's message history into a
// partitioned Parquet dataset and serves a handful of read/inspect
// operations over it: cache, view, stats, query.
package main

import (
	"fmt"
	"os"

	"github.com/zeebeeCoder/slack-tool/internal/cli"
	"github.com/zeebeeCoder/slack-tool/internal/logging"
	"github.com/zeebeeCoder/slack-tool/internal/slackerr"
)

func main() {
	logger := logging.New(os.Getenv("LOG_LEVEL"))

	// No ticket-tracker integration ships in this module (spec.md §1 treats
	// it as an external collaborator); a real Jira/Linear client would be
	// constructed here and passed to cli.Root as newIssueClient.
	root := cli.Root(logger, nil)
	if err := root.Execute(); err != nil {
		logger.Error(err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(slackerr.ExitCode(err))
	}
}
