// Package issueapi defines the narrow collaborator boundary for the
// issue-tracker HTTP API. The concrete HTTP client is out of scope here.
package issueapi

import (
	"context"

	"github.com/zeebeeCoder/slack-tool/internal/model"
)

// Client fetches one ticket's metadata by key.
type Client interface {
	Ticket(ctx context.Context, key string) (model.IssueTicket, error)
}
