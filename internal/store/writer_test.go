package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeebeeCoder/slack-tool/internal/model"
)

func TestSaveMessagesLeavesNoTempFileBehind(t *testing.T) {
	root := t.TempDir()
	channel := model.Channel{Name: "eng"}
	require.NoError(t, SaveMessages(root, "2025-10-15", channel, []model.ChatMessage{
		{MessageID: "1", Timestamp: time.Now().UTC()},
	}))

	dir := filepath.Dir(MessagesPath(root, "2025-10-15", channel))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data.parquet", entries[0].Name())
}

func TestSaveMessagesOverwritesExistingPartitionAtomically(t *testing.T) {
	root := t.TempDir()
	channel := model.Channel{Name: "eng"}
	ts := time.Now().UTC()

	require.NoError(t, SaveMessages(root, "2025-10-15", channel, []model.ChatMessage{
		{MessageID: "1", Timestamp: ts},
	}))
	require.NoError(t, SaveMessages(root, "2025-10-15", channel, []model.ChatMessage{
		{MessageID: "2", Timestamp: ts}, {MessageID: "3", Timestamp: ts},
	}))

	got, err := ReadChannel(root, "2025-10-15", channel)
	require.NoError(t, err)
	require.Len(t, got, 2) // second write replaced the first, not appended to it
}

func TestSaveMessagesHandlesMissingOptionalFields(t *testing.T) {
	root := t.TempDir()
	channel := model.Channel{Name: "eng"}
	ts := time.Now().UTC()

	require.NoError(t, SaveMessages(root, "2025-10-15", channel, []model.ChatMessage{
		{MessageID: "1", Timestamp: ts}, // no UserID, no ThreadTS, no IssueKeys
	}))

	got, err := ReadChannel(root, "2025-10-15", channel)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].UserID)
	assert.Equal(t, "", got[0].ThreadTS)
	assert.Empty(t, got[0].IssueKeys)
}
