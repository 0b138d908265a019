// Package enrich implements the enrichment coordinator: union issue keys
// across all messages, batch-fetch ticket metadata with isolated per-key
// failures.
package enrich

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/zeebeeCoder/slack-tool/internal/fanout"
	"github.com/zeebeeCoder/slack-tool/internal/issueapi"
	"github.com/zeebeeCoder/slack-tool/internal/logging"
	"github.com/zeebeeCoder/slack-tool/internal/model"
	"github.com/zeebeeCoder/slack-tool/internal/slackerr"
)

// MaxConcurrentFetches bounds ticket-fetch fan-out.
const MaxConcurrentFetches = 10

// Coordinator fetches ticket metadata for every issue key mentioned across a
// batch of messages.
type Coordinator struct {
	client issueapi.Client
	logger logrus.FieldLogger
}

// New builds a Coordinator around client.
func New(client issueapi.Client, logger logrus.FieldLogger) *Coordinator {
	return &Coordinator{client: client, logger: logger}
}

// Enrich unions issue_keys across allMessages and fetches each concurrently.
// Per-key failures are isolated: logged as warnings and dropped from the
// result, never surfaced to the caller. The coordinator is purely additive —
// message persistence is never rolled back if this call fails wholly or
// partly. A non-nil error means ctx was cancelled mid-gather; per spec.md
// §5/§7 the caller must discard whatever tickets were collected rather than
// persist a partial issue_tickets partition.
func (c *Coordinator) Enrich(ctx context.Context, allMessages []model.ChatMessage) ([]model.IssueTicket, error) {
	keys := uniqueIssueKeys(allMessages)
	if len(keys) == 0 {
		return nil, nil
	}

	var mu ticketMu
	err := fanout.Gather(ctx, keys, MaxConcurrentFetches, func(ctx context.Context, key string) error {
		ticket, err := c.client.Ticket(ctx, key)
		if err != nil {
			return err
		}
		mu.append(ticket)
		return nil
	}, func(key string, err error) {
		if c.logger != nil {
			logging.WarnEntity(c.logger, slackerr.NotFoundError, "ticket="+key, err)
		}
	})
	if err != nil {
		return nil, err
	}

	return mu.drain(), nil
}

func uniqueIssueKeys(messages []model.ChatMessage) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, m := range messages {
		for _, k := range m.IssueKeys {
			if seen[k] {
				continue
			}
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}
