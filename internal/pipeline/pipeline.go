// Package pipeline wires the narrow per-concern packages (clock, fetcher,
// enrich, store, thread, view) into the three CLI operations: cache, view,
// stats. Each operation is a thin composition function — no business logic
// of its own lives here beyond sequencing and date/channel partitioning.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zeebeeCoder/slack-tool/internal/chatapi"
	"github.com/zeebeeCoder/slack-tool/internal/clock"
	"github.com/zeebeeCoder/slack-tool/internal/enrich"
	"github.com/zeebeeCoder/slack-tool/internal/fetcher"
	"github.com/zeebeeCoder/slack-tool/internal/issueapi"
	"github.com/zeebeeCoder/slack-tool/internal/logging"
	"github.com/zeebeeCoder/slack-tool/internal/model"
	"github.com/zeebeeCoder/slack-tool/internal/slackerr"
	"github.com/zeebeeCoder/slack-tool/internal/store"
	"github.com/zeebeeCoder/slack-tool/internal/thread"
	"github.com/zeebeeCoder/slack-tool/internal/usercache"
	"github.com/zeebeeCoder/slack-tool/internal/view"
)

// Pipeline holds the collaborators every operation needs: the (already
// rate-limited) chat client, an optional issue client, the storage root, and
// a logger. Nil IssueClient disables enrichment entirely.
type Pipeline struct {
	ChatClient  chatapi.Client
	IssueClient issueapi.Client
	StorageRoot string
	Logger      logrus.FieldLogger
	Now         func() string // PartitionDate of "now", injected for deterministic tests
}

// New builds a Pipeline with the real-clock Now function.
func New(chatClient chatapi.Client, issueClient issueapi.Client, storageRoot string, logger logrus.FieldLogger) *Pipeline {
	return &Pipeline{
		ChatClient:  chatClient,
		IssueClient: issueClient,
		StorageRoot: storageRoot,
		Logger:      logger,
		Now:         func() string { return clock.PartitionDate(time.Now().UTC()) },
	}
}

// CacheResult summarizes one cache run for CLI reporting.
type CacheResult struct {
	Channels     []string
	MessageCount int
	TicketCount  int
	DryRun       bool
}

// Cache runs the full fetch -> (optional) enrich -> persist dataflow for each
// requested channel over window. Per-channel fetch failures are isolated
// (logged, channel skipped); messages are always persisted before
// enrichment is attempted, and an enrichment failure never rolls back the
// message write.
func (p *Pipeline) Cache(ctx context.Context, channels []model.Channel, window model.Window, dryRun bool) (CacheResult, error) {
	cache := usercache.New(p.ChatClient)
	f := fetcher.New(p.ChatClient, cache, p.Logger)

	names := make([]string, len(channels))
	for i, c := range channels {
		names[i] = c.Alias()
	}
	result := CacheResult{Channels: names, DryRun: dryRun}
	var allMessages []model.ChatMessage

	for _, channel := range channels {
		messages, err := f.GetMessages(ctx, channel.QueryRef(), window)
		if err != nil {
			if slackerr.Is(err, slackerr.CancelledError) {
				// Propagate, per spec.md §5/§7: cancellation unwinds the whole
				// run rather than being isolated like an ordinary per-channel
				// fetch failure, so no partial partitions get written below.
				return result, err
			}
			if p.Logger != nil {
				logging.WarnEntity(p.Logger, slackerr.IOError, "channel="+channel.Alias(), err)
			}
			continue
		}

		if !dryRun {
			if err := persistMessagesByDate(p.StorageRoot, channel, messages); err != nil {
				return result, fmt.Errorf("persist channel %s: %w", channel.Alias(), err)
			}
		}
		allMessages = append(allMessages, messages...)
		result.MessageCount += len(messages)
	}

	if !dryRun {
		if err := store.SaveUsers(p.StorageRoot, cache.Snapshot()); err != nil {
			return result, fmt.Errorf("persist users: %w", err)
		}
	}

	if p.IssueClient != nil {
		coordinator := enrich.New(p.IssueClient, p.Logger)
		tickets, err := coordinator.Enrich(ctx, allMessages)
		if err != nil {
			// Cancellation mid-gather: discard whatever tickets were
			// collected rather than persist a partial issue_tickets
			// partition, per spec.md §5/§7.
			return result, fmt.Errorf("enrich tickets: %w", err)
		}
		result.TicketCount = len(tickets)
		if !dryRun && len(tickets) > 0 {
			if err := store.SaveIssueTickets(p.StorageRoot, p.Now(), tickets); err != nil {
				return result, fmt.Errorf("persist tickets: %w", err)
			}
		}
	}

	return result, nil
}

// View reconstructs and renders one channel's messages over window.
func (p *Pipeline) View(channel string, window model.Window) (string, error) {
	messages, err := store.ReadChannelByName(p.StorageRoot, channel, window.Start, window.End)
	if err != nil {
		return "", fmt.Errorf("read channel %s: %w", channel, err)
	}
	if len(messages) == 0 {
		return fmt.Sprintf("no cached messages found for channel %q between %s and %s\n",
			channel, clock.PartitionDate(window.Start), clock.PartitionDate(window.End)), nil
	}

	reconstructed := thread.Reconstruct(messages)
	userMap, err := store.ReadUserMap(p.StorageRoot, channel, window.Start, window.End)
	if err != nil {
		return "", fmt.Errorf("read user map for %s: %w", channel, err)
	}
	// Messages fetched in the same window but outside this channel's own
	// partitions (e.g. a cross-posted thread parent) still need their
	// mentions resolved; fold in whatever the cheap scan missed.
	for id, name := range view.BuildUserMap(messages) {
		if _, ok := userMap[id]; !ok {
			userMap[id] = name
		}
	}
	return view.Render(channel, reconstructed, userMap), nil
}

// Stats returns every known partition's row/byte counts plus the totals
// across all of them, sorted by date then channel.
func (p *Pipeline) Stats() (store.PartitionStats, error) {
	stats, err := store.Stats(p.StorageRoot)
	if err != nil {
		return store.PartitionStats{}, fmt.Errorf("list partitions: %w", err)
	}
	return stats, nil
}

// persistMessagesByDate groups messages by their UTC partition date (a
// window can span midnight) and writes one partition file per date.
func persistMessagesByDate(root string, channel model.Channel, messages []model.ChatMessage) error {
	byDate := make(map[string][]model.ChatMessage)
	for _, m := range messages {
		date := clock.PartitionDate(m.Timestamp)
		byDate[date] = append(byDate[date], m)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, date := range dates {
		if err := store.SaveMessages(root, date, channel, byDate[date]); err != nil {
			return fmt.Errorf("save partition dt=%s: %w", date, err)
		}
	}
	return nil
}
