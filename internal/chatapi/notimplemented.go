package chatapi

import (
	"context"
	"fmt"
	"time"

	"github.com/zeebeeCoder/slack-tool/internal/slackerr"
)

// NotImplemented is the default Client: the concrete HTTP transport to the
// chat platform is an external collaborator out of this module's scope
// (spec.md §1), so the CLI wires this until a real implementation is
// plugged in at the same construction seam.
type NotImplemented struct{}

func (NotImplemented) History(ctx context.Context, channel string, oldest, latest time.Time, cursor string) ([]RawMessage, string, error) {
	return nil, "", slackerr.New(slackerr.RetryableError, "channel="+channel, fmt.Errorf("no chat client configured"))
}

func (NotImplemented) Replies(ctx context.Context, channel, threadTS, cursor string) ([]RawMessage, string, error) {
	return nil, "", slackerr.New(slackerr.RetryableError, "thread="+threadTS, fmt.Errorf("no chat client configured"))
}

func (NotImplemented) User(ctx context.Context, userID string) (RawUser, error) {
	return RawUser{}, slackerr.New(slackerr.RetryableError, "user="+userID, fmt.Errorf("no chat client configured"))
}

var _ Client = NotImplemented{}
