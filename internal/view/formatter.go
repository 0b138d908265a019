// Package view renders reconstructed threads into the plain-text block the
// view command prints to stdout.
package view

import (
	"fmt"
	"strings"

	"github.com/zeebeeCoder/slack-tool/internal/mention"
	"github.com/zeebeeCoder/slack-tool/internal/model"
)

// Render formats a channel's reconstructed messages as a numbered, threaded
// text block: one top-level entry per parent/standalone message, replies
// indented beneath it, mentions resolved against userMap, and a trailing
// summary line.
func Render(channel string, messages []model.ChatMessage, userMap map[string]string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", channel)

	for i, m := range messages {
		fmt.Fprintf(&b, "%d. %s\n", i+1, renderLine(m, userMap))

		for _, r := range m.Replies {
			fmt.Fprintf(&b, "    - %s\n", renderLine(r, userMap))
		}
		if m.HasClippedReplies {
			fmt.Fprintf(&b, "    (showing %d of %d+ replies)\n", len(m.Replies), m.ReplyCount)
		}
	}

	fmt.Fprintf(&b, "\n%d messages, %d threads\n", countAll(messages), countThreads(messages))
	return b.String()
}

func renderLine(m model.ChatMessage, userMap map[string]string) string {
	text := mention.ResolveMentions(m.Text, userMap)
	line := fmt.Sprintf("[%s] %s: %s", m.Timestamp.Format("15:04:05"), m.DisplayName(), text)

	var tags []string
	if m.IsOrphanedReply {
		tags = append(tags, "Thread clipped — parent outside time window")
	}
	if len(m.IssueKeys) > 0 {
		tags = append(tags, strings.Join(m.IssueKeys, ","))
	}
	if m.HasReactions() {
		tags = append(tags, fmt.Sprintf("%d reactions", len(m.Reactions)))
	}
	if m.HasFiles() {
		tags = append(tags, fmt.Sprintf("%d files", len(m.Files)))
	}
	if len(tags) > 0 {
		line += " (" + strings.Join(tags, "; ") + ")"
	}
	return line
}

func countAll(messages []model.ChatMessage) int {
	n := 0
	for _, m := range messages {
		n += 1 + len(m.Replies)
	}
	return n
}

func countThreads(messages []model.ChatMessage) int {
	n := 0
	for _, m := range messages {
		if len(m.Replies) > 0 {
			n++
		}
	}
	return n
}

// BuildUserMap collects a user_id -> display name map from a message set,
// for mention resolution across channels that weren't necessarily fetched
// together.
func BuildUserMap(messages []model.ChatMessage) map[string]string {
	userMap := make(map[string]string)
	for _, m := range messages {
		if m.UserID == "" {
			continue
		}
		if _, ok := userMap[m.UserID]; ok {
			continue
		}
		userMap[m.UserID] = m.DisplayName()
	}
	return userMap
}
