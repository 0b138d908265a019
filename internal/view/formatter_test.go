package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zeebeeCoder/slack-tool/internal/model"
)

func TestRenderIncludesHeaderAndNumberedMessages(t *testing.T) {
	ts := time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC)
	messages := []model.ChatMessage{
		{MessageID: "1", Text: "hello <@U1>", Timestamp: ts, UserName: "alice"},
	}

	out := Render("eng", messages, map[string]string{"U1": "bob"})
	assert.Contains(t, out, "# eng")
	assert.Contains(t, out, "1. ")
	assert.Contains(t, out, "@bob")
	assert.Contains(t, out, "1 messages, 0 threads")
}

func TestRenderIndentsRepliesAndMarksClipped(t *testing.T) {
	ts := time.Now().UTC()
	parent := model.ChatMessage{
		MessageID: "100", ThreadTS: "100", ReplyCount: 3, Timestamp: ts,
		HasClippedReplies: true,
		Replies:           []model.ChatMessage{{MessageID: "101", Timestamp: ts.Add(time.Minute)}},
	}

	out := Render("eng", []model.ChatMessage{parent}, nil)
	assert.Contains(t, out, "    - ")
	assert.Contains(t, out, "showing 1 of 3+ replies")
}

func TestRenderMarksOrphanedRepliesAsClippedThreads(t *testing.T) {
	ts := time.Now().UTC()
	orphan := model.ChatMessage{MessageID: "202", ThreadTS: "201", Timestamp: ts, IsOrphanedReply: true}

	out := Render("eng", []model.ChatMessage{orphan}, nil)
	assert.Contains(t, out, "Thread clipped — parent outside time window")
}

func TestBuildUserMapSkipsMessagesWithoutUserID(t *testing.T) {
	messages := []model.ChatMessage{
		{UserID: "U1", UserName: "alice"},
		{UserID: "", Text: "system message"},
	}
	userMap := BuildUserMap(messages)
	assert.Len(t, userMap, 1)
	assert.Equal(t, "alice", userMap["U1"])
}
