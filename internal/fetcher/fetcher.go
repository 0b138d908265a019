// Package fetcher implements the message fetcher: paginate channel history,
// hydrate users, fan-out-expand threads.
package fetcher

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/zeebeeCoder/slack-tool/internal/chatapi"
	"github.com/zeebeeCoder/slack-tool/internal/fanout"
	"github.com/zeebeeCoder/slack-tool/internal/logging"
	"github.com/zeebeeCoder/slack-tool/internal/mention"
	"github.com/zeebeeCoder/slack-tool/internal/model"
	"github.com/zeebeeCoder/slack-tool/internal/slackerr"
	"github.com/zeebeeCoder/slack-tool/internal/usercache"
)

// MaxConcurrentFetches bounds the per-user and per-thread fan-out (same
// 10-concurrent design target the enrichment coordinator uses).
const MaxConcurrentFetches = 10

// Fetcher pages a channel's history, expands thread parents, and hydrates
// author info from a shared usercache.Cache.
type Fetcher struct {
	client chatapi.Client
	cache  *usercache.Cache
	logger logrus.FieldLogger
}

// New builds a Fetcher. client is typically a ratelimit.Client so that every
// outbound call is throttled.
func New(client chatapi.Client, cache *usercache.Cache, logger logrus.FieldLogger) *Fetcher {
	return &Fetcher{client: client, cache: cache, logger: logger}
}

// GetMessages pages history, hydrates users, expands thread parents, merges
// the result, and returns it unsorted — sorting happens on the read path.
func (f *Fetcher) GetMessages(ctx context.Context, channel string, window model.Window) ([]model.ChatMessage, error) {
	raw, err := f.pageHistory(ctx, channel, window)
	if err != nil {
		return nil, slackerr.New(slackerr.RetryableError, "channel="+channel, err)
	}

	userIDs := distinctUserIDs(raw)
	if err := f.hydrateUsers(ctx, userIDs); err != nil {
		return nil, slackerr.New(slackerr.CancelledError, "channel="+channel, err)
	}

	timeline := make([]model.ChatMessage, 0, len(raw))
	parents := make([]model.ChatMessage, 0)
	for _, r := range raw {
		msg := f.convert(r)
		timeline = append(timeline, msg)
		if msg.IsThreadParent() {
			parents = append(parents, msg)
		}
	}

	replies, err := f.expandThreads(ctx, channel, parents)
	if err != nil {
		return nil, slackerr.New(slackerr.CancelledError, "channel="+channel, err)
	}

	// On a message_id collision between the timeline and a thread page, the
	// timeline row wins.
	seen := make(map[string]bool, len(timeline)+len(replies))
	out := make([]model.ChatMessage, 0, len(timeline)+len(replies))
	for _, m := range timeline {
		seen[m.MessageID] = true
		out = append(out, m)
	}
	for _, m := range replies {
		if seen[m.MessageID] {
			continue
		}
		seen[m.MessageID] = true
		out = append(out, m)
	}

	return out, nil
}

func (f *Fetcher) pageHistory(ctx context.Context, channel string, window model.Window) ([]chatapi.RawMessage, error) {
	var all []chatapi.RawMessage
	cursor := ""
	for {
		page, next, err := f.client.History(ctx, channel, window.Start, window.End, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if next == "" {
			break
		}
		cursor = next
	}
	return all, nil
}

func distinctUserIDs(raw []chatapi.RawMessage) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range raw {
		if r.UserID == "" || seen[r.UserID] {
			continue
		}
		seen[r.UserID] = true
		ids = append(ids, r.UserID)
	}
	return ids
}

// hydrateUsers fetches every not-yet-cached id through the worker pool,
// waiting for all to complete. Per-user failures are warnings, not fatal:
// the message is still emitted with its bare UserID. A non-nil return means
// ctx was cancelled mid-gather; the caller must abort rather than continue
// with whatever users happened to resolve first.
func (f *Fetcher) hydrateUsers(ctx context.Context, ids []string) error {
	toFetch := make([]string, 0, len(ids))
	for _, id := range ids {
		if !f.cache.Has(id) {
			toFetch = append(toFetch, id)
		}
	}

	return fanout.Gather(ctx, toFetch, MaxConcurrentFetches, func(ctx context.Context, id string) error {
		_, err := f.cache.Get(ctx, id)
		return err
	}, func(id string, err error) {
		if f.logger != nil {
			logging.WarnEntity(f.logger, slackerr.NotFoundError, "user="+id, err)
		}
	})
}

// expandThreads fetches replies for every thread parent via the worker
// pool. Per-thread failures are warnings: that thread's replies are
// omitted, the parent remains in the timeline. A non-nil error means ctx
// was cancelled mid-gather; the caller must abort and discard whatever
// replies were collected so far.
func (f *Fetcher) expandThreads(ctx context.Context, channel string, parents []model.ChatMessage) ([]model.ChatMessage, error) {
	var mu chatMu

	err := fanout.Gather(ctx, parents, MaxConcurrentFetches, func(ctx context.Context, parent model.ChatMessage) error {
		var all []chatapi.RawMessage
		cursor := ""
		for {
			page, next, err := f.client.Replies(ctx, channel, parent.MessageID, cursor)
			if err != nil {
				return err
			}
			all = append(all, page...)
			if next == "" {
				break
			}
			cursor = next
		}

		// Drop the first returned message: it duplicates the parent.
		if len(all) > 0 {
			all = all[1:]
		}

		converted := make([]model.ChatMessage, 0, len(all))
		for _, r := range all {
			converted = append(converted, f.convert(r))
		}

		mu.append(converted)
		return nil
	}, func(parent model.ChatMessage, err error) {
		if f.logger != nil {
			logging.WarnEntity(f.logger, slackerr.NotFoundError, "thread="+parent.MessageID, err)
		}
	})
	if err != nil {
		return nil, err
	}

	return mu.drain(), nil
}

// convert turns one raw message into a model.ChatMessage: extracts issue
// keys and joins cached user info when available.
func (f *Fetcher) convert(r chatapi.RawMessage) model.ChatMessage {
	msg := model.ChatMessage{
		MessageID:  r.MessageID,
		UserID:     r.UserID,
		Text:       r.Text,
		Timestamp:  r.Timestamp.UTC(),
		ThreadTS:   r.ThreadTS,
		ReplyCount: r.ReplyCount,
		IssueKeys:  mention.ExtractIssueKeys(r.Text),
	}
	for _, rx := range r.Reactions {
		msg.Reactions = append(msg.Reactions, model.Reaction{Emoji: rx.Emoji, Count: rx.Count, Users: rx.Users})
	}
	for _, rf := range r.Files {
		msg.Files = append(msg.Files, model.File{ID: rf.ID, Name: rf.Name, MimeType: rf.MimeType, URL: rf.URL, Size: rf.Size})
	}

	if r.UserID != "" && f.cache.Has(r.UserID) {
		if u, err := f.cache.Get(context.Background(), r.UserID); err == nil {
			msg = msg.WithUser(&u)
		}
	}
	return msg
}
