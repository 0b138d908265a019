// Package thread turns the flat message rows coming out of storage back
// into parent+reply trees for display.
package thread

import (
	"sort"

	"github.com/zeebeeCoder/slack-tool/internal/model"
)

// Reconstruct groups flat messages into threads: each parent gets its
// replies attached and sorted by timestamp, and is annotated with whether
// the on-disk reply set is incomplete (has_clipped_replies, when fewer
// replies were persisted than reply_count claims). Messages whose
// thread_ts points at a parent that isn't in the input set are marked
// orphaned and returned standalone rather than dropped.
func Reconstruct(messages []model.ChatMessage) []model.ChatMessage {
	repliesByParent := make(map[string][]model.ChatMessage)

	for _, m := range messages {
		if m.IsThreadReply() {
			repliesByParent[m.ThreadTS] = append(repliesByParent[m.ThreadTS], m)
		}
	}

	present := make(map[string]bool, len(messages))
	for _, m := range messages {
		present[m.MessageID] = true
	}

	var out []model.ChatMessage
	for _, m := range messages {
		if m.IsThreadReply() {
			if !present[m.ThreadTS] {
				orphan := m
				orphan.IsOrphanedReply = true
				orphan.IsClippedThread = true
				out = append(out, orphan)
			}
			continue // attached to its parent below, or surfaced as an orphan above
		}

		if m.IsThreadParent() {
			replies := repliesByParent[m.ThreadTS]
			sort.Slice(replies, func(i, j int) bool { return replies[i].Timestamp.Before(replies[j].Timestamp) })
			m.Replies = replies
			m.HasClippedReplies = len(replies) < m.ReplyCount
			m.IsClippedThread = m.HasClippedReplies
		}
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}
