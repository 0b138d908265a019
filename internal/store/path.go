package store

import (
	"fmt"
	"path/filepath"

	"github.com/zeebeeCoder/slack-tool/internal/model"
)

// MessagesPath returns the partition path for a channel/date pair:
// <root>/messages/dt=YYYY-MM-DD/channel=<alias>/data.parquet
func MessagesPath(root, date string, channel model.Channel) string {
	return filepath.Join(root, "messages", "dt="+date, "channel="+channel.Alias(), "data.parquet")
}

// UsersPath returns the single users file path: <root>/users.parquet
func UsersPath(root string) string {
	return filepath.Join(root, "users.parquet")
}

// IssueTicketsPath returns the partition path for a ticket cache snapshot:
// <root>/issue_tickets/dt=YYYY-MM-DD/data.parquet
func IssueTicketsPath(root, date string) string {
	return filepath.Join(root, "issue_tickets", "dt="+date, "data.parquet")
}

// channelDirPattern matches "channel=<alias>" directory names.
func channelDirPattern(alias string) string {
	return fmt.Sprintf("channel=%s", alias)
}
