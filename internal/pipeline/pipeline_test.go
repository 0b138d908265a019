package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeebeeCoder/slack-tool/internal/chatapi"
	"github.com/zeebeeCoder/slack-tool/internal/model"
)

type fakeChatClient struct {
	messages map[string][]chatapi.RawMessage // channel -> page
	users    map[string]chatapi.RawUser
}

func (f *fakeChatClient) History(ctx context.Context, channel string, oldest, latest time.Time, cursor string) ([]chatapi.RawMessage, string, error) {
	if cursor != "" {
		return nil, "", nil
	}
	return f.messages[channel], "", nil
}

func (f *fakeChatClient) Replies(ctx context.Context, channel, threadTS, cursor string) ([]chatapi.RawMessage, string, error) {
	return nil, "", nil
}

func (f *fakeChatClient) User(ctx context.Context, userID string) (chatapi.RawUser, error) {
	return f.users[userID], nil
}

type fakeIssueClient struct {
	tickets map[string]model.IssueTicket
}

func (f *fakeIssueClient) Ticket(ctx context.Context, key string) (model.IssueTicket, error) {
	return f.tickets[key], nil
}

func TestCachePersistsMessagesAndUsers(t *testing.T) {
	root := t.TempDir()
	ts := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)
	client := &fakeChatClient{
		messages: map[string][]chatapi.RawMessage{
			"eng": {{MessageID: "1", UserID: "U1", Text: "hi", Timestamp: ts}},
		},
		users: map[string]chatapi.RawUser{"U1": {UserID: "U1", Name: "alice"}},
	}

	p := New(client, nil, root, logrus.New())
	result, err := p.Cache(context.Background(), []model.Channel{{Name: "eng"}}, model.Window{Start: ts.Add(-time.Hour), End: ts.Add(time.Hour)}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.MessageCount)

	rendered, err := p.View("eng", model.Window{Start: ts.Add(-24 * time.Hour), End: ts.Add(24 * time.Hour)})
	require.NoError(t, err)
	assert.Contains(t, rendered, "alice")
}

func TestCacheDryRunWritesNothing(t *testing.T) {
	root := t.TempDir()
	ts := time.Now().UTC()
	client := &fakeChatClient{
		messages: map[string][]chatapi.RawMessage{
			"eng": {{MessageID: "1", Timestamp: ts}},
		},
	}

	p := New(client, nil, root, logrus.New())
	result, err := p.Cache(context.Background(), []model.Channel{{Name: "eng"}}, model.Window{Start: ts.Add(-time.Hour), End: ts.Add(time.Hour)}, true)
	require.NoError(t, err)
	assert.True(t, result.DryRun)

	stats, err := p.Stats()
	require.NoError(t, err)
	assert.Empty(t, stats.Partitions)
	assert.Zero(t, stats.TotalRows)
}

func TestCacheEnrichesWhenIssueClientPresent(t *testing.T) {
	root := t.TempDir()
	ts := time.Now().UTC()
	client := &fakeChatClient{
		messages: map[string][]chatapi.RawMessage{
			"eng": {{MessageID: "1", Text: "see ABC-1", Timestamp: ts}},
		},
	}
	issueClient := &fakeIssueClient{tickets: map[string]model.IssueTicket{"ABC-1": {TicketID: "ABC-1"}}}

	p := New(client, issueClient, root, logrus.New())
	result, err := p.Cache(context.Background(), []model.Channel{{Name: "eng"}}, model.Window{Start: ts.Add(-time.Hour), End: ts.Add(time.Hour)}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TicketCount)
}

func TestViewWithNoMatchingPartitionsReturnsHintNotError(t *testing.T) {
	root := t.TempDir()
	ts := time.Now().UTC()

	p := New(&fakeChatClient{}, nil, root, logrus.New())
	out, err := p.View("ghost", model.Window{Start: ts.Add(-time.Hour), End: ts.Add(time.Hour)})
	require.NoError(t, err)
	assert.Contains(t, out, "ghost")
}

func TestStatsReflectsPersistedPartitions(t *testing.T) {
	root := t.TempDir()
	ts := time.Now().UTC()
	client := &fakeChatClient{
		messages: map[string][]chatapi.RawMessage{
			"eng": {{MessageID: "1", Timestamp: ts}, {MessageID: "2", Timestamp: ts}},
		},
	}

	p := New(client, nil, root, logrus.New())
	_, err := p.Cache(context.Background(), []model.Channel{{Name: "eng"}}, model.Window{Start: ts.Add(-time.Hour), End: ts.Add(time.Hour)}, false)
	require.NoError(t, err)

	stats, err := p.Stats()
	require.NoError(t, err)
	require.Len(t, stats.Partitions, 1)
	assert.Equal(t, 2, stats.Partitions[0].MessageCount)
	assert.Equal(t, 2, stats.TotalRows)
	assert.True(t, stats.TotalBytes > 0)
}
