package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeebeeCoder/slack-tool/internal/model"
)

func TestSaveAndReadChannelRoundTrips(t *testing.T) {
	root := t.TempDir()
	channel := model.Channel{Name: "eng"}
	date := "2025-10-15"
	ts := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	messages := []model.ChatMessage{
		{
			MessageID: "200", UserID: "U2", Text: "no mentions", Timestamp: ts.Add(time.Minute),
		},
		{
			MessageID: "100", UserID: "U1", Text: "see PRD-16975", Timestamp: ts,
			ThreadTS: "100", ReplyCount: 1, UserName: "alice", UserRealName: "Alice",
			IssueKeys: []string{"PRD-16975"},
		},
	}

	require.NoError(t, SaveMessages(root, date, channel, messages))

	got, err := ReadChannel(root, date, channel)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// sorted by timestamp ascending regardless of input order
	assert.Equal(t, "100", got[0].MessageID)
	assert.Equal(t, "200", got[1].MessageID)
	assert.Equal(t, []string{"PRD-16975"}, got[0].IssueKeys)
	assert.Equal(t, "alice", got[0].UserName)
	assert.True(t, got[0].Timestamp.Equal(ts))
}

func TestReadChannelMissingPartitionReturnsEmpty(t *testing.T) {
	root := t.TempDir()
	got, err := ReadChannel(root, "2025-10-15", model.Channel{Name: "eng"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveMessagesEmptyWritesNoFile(t *testing.T) {
	root := t.TempDir()
	channel := model.Channel{Name: "eng"}
	require.NoError(t, SaveMessages(root, "2025-10-15", channel, nil))

	got, err := ReadChannel(root, "2025-10-15", channel)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestChannelAliasFallsBackToID(t *testing.T) {
	root := t.TempDir()
	channel := model.Channel{ID: "C123"}
	ts := time.Now().UTC()

	require.NoError(t, SaveMessages(root, "2025-10-15", channel, []model.ChatMessage{
		{MessageID: "1", Timestamp: ts},
	}))

	all, err := ReadAllChannels(root, "2025-10-15")
	require.NoError(t, err)
	assert.Contains(t, all, "channel_C123")
}

func TestReadChannelByNameFallsBackToIDAlias(t *testing.T) {
	root := t.TempDir()
	ts := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	require.NoError(t, SaveMessages(root, "2025-10-15", model.Channel{ID: "C123"}, []model.ChatMessage{
		{MessageID: "1", Timestamp: ts},
	}))

	got, err := ReadChannelByName(root, "C123", ts.AddDate(0, 0, -1), ts.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].MessageID)
}

func TestReadChannelByNameMissingReturnsEmpty(t *testing.T) {
	root := t.TempDir()
	ts := time.Now().UTC()
	got, err := ReadChannelByName(root, "nope", ts, ts)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadChannelRangeConcatenatesAndSorts(t *testing.T) {
	root := t.TempDir()
	channel := model.Channel{Name: "eng"}
	day1 := time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)

	require.NoError(t, SaveMessages(root, "2025-10-14", channel, []model.ChatMessage{{MessageID: "a", Timestamp: day1}}))
	require.NoError(t, SaveMessages(root, "2025-10-15", channel, []model.ChatMessage{{MessageID: "b", Timestamp: day2}}))

	got, err := ReadChannelRange(root, channel, day1.AddDate(0, 0, -1), day2.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].MessageID)
	assert.Equal(t, "b", got[1].MessageID)
}

func TestSaveAndReadUsersRoundTrips(t *testing.T) {
	root := t.TempDir()
	users := []model.User{
		model.NewUser("U2", "bob", "Bob", "", "bob@example.com", false),
		model.NewUser("U1", "alice", "Alice", "", "alice@example.com", false),
	}
	require.NoError(t, SaveUsers(root, users))

	got, err := ReadUsers(root)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "U1", got[0].UserID) // sorted by user id
	assert.Equal(t, "alice", got[0].Name)
}

func TestSaveUsersStampsUniformCachedAt(t *testing.T) {
	root := t.TempDir()
	before := time.Now().UTC()
	users := []model.User{
		model.NewUser("U1", "alice", "Alice", "", "", false),
		model.NewUser("U2", "bob", "Bob", "", "", false),
	}
	require.NoError(t, SaveUsers(root, users))
	after := time.Now().UTC()

	got, err := ReadUsers(root)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.False(t, got[0].CachedAt.Before(before))
	assert.False(t, got[0].CachedAt.After(after))
	assert.Equal(t, got[0].CachedAt, got[1].CachedAt) // uniform within the batch
}

func TestSaveAndReadIssueTicketsRoundTrips(t *testing.T) {
	root := t.TempDir()
	now := time.Now().UTC()
	tickets := []model.IssueTicket{
		{
			TicketID: "ABC-1", Summary: "fix it", Status: "Open", Priority: "High",
			IssueType: "Bug", Assignee: "alice", Created: now, Updated: now,
			Blocks: []string{"ABC-2"}, Comments: map[string]int{"alice": 2}, TotalComments: 2,
			Sprints: []model.Sprint{{Name: "Sprint 4", State: "active"}},
			CachedAt: now,
		},
	}
	require.NoError(t, SaveIssueTickets(root, "2025-10-15", tickets))

	path := IssueTicketsPath(root, "2025-10-15")
	table, err := readTable(path)
	require.NoError(t, err)
	defer table.Release()
	assert.EqualValues(t, 1, table.NumRows())
}

func TestPartitionsListsChannelsAndCounts(t *testing.T) {
	root := t.TempDir()
	ts := time.Now().UTC()
	require.NoError(t, SaveMessages(root, "2025-10-15", model.Channel{Name: "eng"}, []model.ChatMessage{
		{MessageID: "1", Timestamp: ts}, {MessageID: "2", Timestamp: ts},
	}))
	require.NoError(t, SaveMessages(root, "2025-10-15", model.Channel{Name: "random"}, []model.ChatMessage{
		{MessageID: "3", Timestamp: ts},
	}))

	infos, err := Partitions(root)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "eng", infos[0].Channel)
	assert.Equal(t, 2, infos[0].MessageCount)
	assert.Equal(t, "random", infos[1].Channel)
	assert.Equal(t, 1, infos[1].MessageCount)
}

func TestStatsAggregatesRowsAndBytes(t *testing.T) {
	root := t.TempDir()
	ts := time.Now().UTC()
	require.NoError(t, SaveMessages(root, "2025-10-15", model.Channel{Name: "eng"}, []model.ChatMessage{
		{MessageID: "1", Timestamp: ts}, {MessageID: "2", Timestamp: ts},
	}))
	require.NoError(t, SaveMessages(root, "2025-10-15", model.Channel{Name: "random"}, []model.ChatMessage{
		{MessageID: "3", Timestamp: ts},
	}))

	stats, err := Stats(root)
	require.NoError(t, err)
	require.Len(t, stats.Partitions, 2)
	assert.Equal(t, 3, stats.TotalRows)
	assert.True(t, stats.TotalBytes > 0)
}

func TestReadUserMapProjectsOnlyUserColumns(t *testing.T) {
	root := t.TempDir()
	day1 := time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)

	require.NoError(t, SaveMessages(root, "2025-10-14", model.Channel{Name: "eng"}, []model.ChatMessage{
		{MessageID: "a", UserID: "U1", UserName: "alice", Timestamp: day1},
	}))
	require.NoError(t, SaveMessages(root, "2025-10-15", model.Channel{Name: "eng"}, []model.ChatMessage{
		{MessageID: "b", UserID: "U2", UserRealName: "Bob Real", Timestamp: day2},
	}))

	userMap, err := ReadUserMap(root, "eng", day1.AddDate(0, 0, -1), day2.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "alice", userMap["U1"])
	assert.Equal(t, "Bob Real", userMap["U2"])
}

func TestReadUserMapFallsBackToIDAlias(t *testing.T) {
	root := t.TempDir()
	ts := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, SaveMessages(root, "2025-10-15", model.Channel{ID: "C123"}, []model.ChatMessage{
		{MessageID: "1", UserID: "U1", UserName: "alice", Timestamp: ts},
	}))

	userMap, err := ReadUserMap(root, "C123", ts.AddDate(0, 0, -1), ts.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "alice", userMap["U1"])
}
