package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/zeebeeCoder/slack-tool/internal/model"
)

var writerProps = parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))

// SaveMessages writes one channel/date partition. An empty messages slice
// writes no file at all, per the minimal-on-disk-footprint rule: nothing
// downstream distinguishes "no messages that day" from "never queried".
func SaveMessages(root, date string, channel model.Channel, messages []model.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}

	sorted := make([]model.ChatMessage, len(messages))
	copy(sorted, messages)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })

	record, err := buildMessageRecord(sorted)
	if err != nil {
		return fmt.Errorf("build message record: %w", err)
	}
	defer record.Release()

	return atomicWriteParquet(MessagesPath(root, date, channel), MessageSchema, record)
}

// SaveUsers overwrites the single users.parquet file with the full known
// user set. Called after every ingestion run; the file is small enough that
// a full overwrite is simpler than an upsert. cached_at is stamped here with
// one UTC instant shared by every row in the batch — per spec.md §4.5, the
// field is writer-assigned, not carried over from whatever time each user
// happened to be resolved at in the cache.
func SaveUsers(root string, users []model.User) error {
	if len(users) == 0 {
		return nil
	}
	now := time.Now().UTC()
	sorted := make([]model.User, len(users))
	copy(sorted, users)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].UserID < sorted[j].UserID })
	for i := range sorted {
		sorted[i].CachedAt = now
	}

	record, err := buildUserRecord(sorted)
	if err != nil {
		return fmt.Errorf("build user record: %w", err)
	}
	defer record.Release()

	return atomicWriteParquet(UsersPath(root), UserSchema, record)
}

// SaveIssueTickets writes a daily ticket cache snapshot. cached_at is
// stamped here with one UTC instant shared by every row in the batch, per
// spec.md §3/§4.5 ("writer-assigned, monotone per batch") — the coordinator
// and issue-tracker client never need to set it themselves.
func SaveIssueTickets(root, date string, tickets []model.IssueTicket) error {
	if len(tickets) == 0 {
		return nil
	}
	now := time.Now().UTC()
	sorted := make([]model.IssueTicket, len(tickets))
	copy(sorted, tickets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TicketID < sorted[j].TicketID })
	for i := range sorted {
		sorted[i].CachedAt = now
	}

	record, err := buildTicketRecord(sorted)
	if err != nil {
		return fmt.Errorf("build ticket record: %w", err)
	}
	defer record.Release()

	return atomicWriteParquet(IssueTicketsPath(root, date), IssueTicketSchema, record)
}

func atomicWriteParquet(path string, schema *arrow.Schema, record arrow.Record) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".data-*.parquet.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	writer, err := pqarrow.NewFileWriter(schema, tmp, writerProps, pqarrow.DefaultWriterProps())
	if err != nil {
		tmp.Close()
		return fmt.Errorf("new parquet writer: %w", err)
	}
	if err := writer.Write(record); err != nil {
		writer.Close()
		tmp.Close()
		return fmt.Errorf("write record: %w", err)
	}
	if err := writer.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

func buildMessageRecord(messages []model.ChatMessage) (arrow.Record, error) {
	mem := memory.DefaultAllocator
	b := array.NewRecordBuilder(mem, MessageSchema)
	defer b.Release()

	messageID := b.Field(0).(*array.StringBuilder)
	userID := b.Field(1).(*array.StringBuilder)
	text := b.Field(2).(*array.StringBuilder)
	timestamp := b.Field(3).(*array.StringBuilder)
	threadTS := b.Field(4).(*array.StringBuilder)
	isParent := b.Field(5).(*array.BooleanBuilder)
	isReply := b.Field(6).(*array.BooleanBuilder)
	replyCount := b.Field(7).(*array.Int64Builder)
	userName := b.Field(8).(*array.StringBuilder)
	userRealName := b.Field(9).(*array.StringBuilder)
	userEmail := b.Field(10).(*array.StringBuilder)
	userIsBot := b.Field(11).(*array.BooleanBuilder)
	issueKeys := b.Field(12).(*array.ListBuilder)
	hasReactions := b.Field(13).(*array.BooleanBuilder)
	hasFiles := b.Field(14).(*array.BooleanBuilder)
	hasThread := b.Field(15).(*array.BooleanBuilder)

	for _, m := range messages {
		messageID.Append(m.MessageID)
		appendOptionalString(userID, m.UserID)
		text.Append(m.Text)
		timestamp.Append(m.Timestamp.UTC().Format(timestampLayout))
		appendOptionalString(threadTS, m.ThreadTS)
		isParent.Append(m.IsThreadParent())
		isReply.Append(m.IsThreadReply())
		replyCount.Append(int64(m.ReplyCount))
		appendOptionalString(userName, m.UserName)
		appendOptionalString(userRealName, m.UserRealName)
		appendOptionalString(userEmail, m.UserEmail)
		userIsBot.Append(m.UserIsBot)
		appendStringList(issueKeys, m.IssueKeys)
		hasReactions.Append(m.HasReactions())
		hasFiles.Append(m.HasFiles())
		hasThread.Append(m.HasThread())
	}

	return b.NewRecord(), nil
}

func buildUserRecord(users []model.User) (arrow.Record, error) {
	mem := memory.DefaultAllocator
	b := array.NewRecordBuilder(mem, UserSchema)
	defer b.Release()

	userID := b.Field(0).(*array.StringBuilder)
	name := b.Field(1).(*array.StringBuilder)
	realName := b.Field(2).(*array.StringBuilder)
	email := b.Field(3).(*array.StringBuilder)
	isBot := b.Field(4).(*array.BooleanBuilder)
	cachedAt := b.Field(5).(*array.StringBuilder)

	for _, u := range users {
		userID.Append(u.UserID)
		appendOptionalString(name, u.Name)
		appendOptionalString(realName, u.RealName)
		appendOptionalString(email, u.Email)
		isBot.Append(u.IsBot)
		cachedAt.Append(u.CachedAt.UTC().Format(timestampLayout))
	}

	return b.NewRecord(), nil
}

func buildTicketRecord(tickets []model.IssueTicket) (arrow.Record, error) {
	mem := memory.DefaultAllocator
	b := array.NewRecordBuilder(mem, IssueTicketSchema)
	defer b.Release()

	ticketID := b.Field(0).(*array.StringBuilder)
	summary := b.Field(1).(*array.StringBuilder)
	status := b.Field(2).(*array.StringBuilder)
	priority := b.Field(3).(*array.StringBuilder)
	issueType := b.Field(4).(*array.StringBuilder)
	assignee := b.Field(5).(*array.StringBuilder)
	created := b.Field(6).(*array.StringBuilder)
	updated := b.Field(7).(*array.StringBuilder)
	dueDate := b.Field(8).(*array.StringBuilder)
	storyPoints := b.Field(9).(*array.Int64Builder)
	blocks := b.Field(10).(*array.ListBuilder)
	blockedBy := b.Field(11).(*array.ListBuilder)
	dependsOn := b.Field(12).(*array.ListBuilder)
	related := b.Field(13).(*array.ListBuilder)
	components := b.Field(14).(*array.ListBuilder)
	labels := b.Field(15).(*array.ListBuilder)
	fixVersions := b.Field(16).(*array.ListBuilder)
	project := b.Field(17).(*array.StringBuilder)
	team := b.Field(18).(*array.StringBuilder)
	epicLink := b.Field(19).(*array.StringBuilder)
	resolution := b.Field(20).(*array.StringBuilder)
	commentAuthors := b.Field(21).(*array.ListBuilder)
	commentCounts := b.Field(22).(*array.ListBuilder)
	totalComments := b.Field(23).(*array.Int64Builder)
	sprintNames := b.Field(24).(*array.ListBuilder)
	sprintStates := b.Field(25).(*array.ListBuilder)
	cachedAt := b.Field(26).(*array.StringBuilder)

	for _, t := range tickets {
		ticketID.Append(t.TicketID)
		summary.Append(t.Summary)
		status.Append(t.Status)
		priority.Append(t.Priority)
		issueType.Append(t.IssueType)
		assignee.Append(t.Assignee)
		created.Append(t.Created.UTC().Format(timestampLayout))
		updated.Append(t.Updated.UTC().Format(timestampLayout))
		appendOptionalTimePtr(dueDate, t.DueDate)
		appendOptionalIntPtr(storyPoints, t.StoryPoints)
		appendStringList(blocks, t.Blocks)
		appendStringList(blockedBy, t.BlockedBy)
		appendStringList(dependsOn, t.DependsOn)
		appendStringList(related, t.Related)
		appendStringList(components, t.Components)
		appendStringList(labels, t.Labels)
		appendStringList(fixVersions, t.FixVersions)
		appendOptionalString(project, t.Project)
		appendOptionalString(team, t.Team)
		appendOptionalString(epicLink, t.EpicLink)
		appendOptionalString(resolution, t.Resolution)

		var authors []string
		var counts []int64
		for author, count := range t.Comments {
			authors = append(authors, author)
			counts = append(counts, int64(count))
		}
		sort.Strings(authors) // deterministic on-disk order from an unordered map
		appendStringList(commentAuthors, authors)
		appendInt64List(commentCounts, counts)
		totalComments.Append(int64(t.TotalComments))

		var names, states []string
		for _, s := range t.Sprints {
			names = append(names, s.Name)
			states = append(states, s.State)
		}
		appendStringList(sprintNames, names)
		appendStringList(sprintStates, states)

		cachedAt.Append(t.CachedAt.UTC().Format(timestampLayout))
	}

	return b.NewRecord(), nil
}

func appendOptionalString(b *array.StringBuilder, v string) {
	if v == "" {
		b.AppendNull()
		return
	}
	b.Append(v)
}

func appendOptionalIntPtr(b *array.Int64Builder, v *int) {
	if v == nil {
		b.AppendNull()
		return
	}
	b.Append(int64(*v))
}

func appendOptionalTimePtr(b *array.StringBuilder, t *time.Time) {
	if t == nil {
		b.AppendNull()
		return
	}
	b.Append(t.UTC().Format(timestampLayout))
}

func appendStringList(b *array.ListBuilder, values []string) {
	b.Append(true)
	vb := b.ValueBuilder().(*array.StringBuilder)
	for _, v := range values {
		vb.Append(v)
	}
}

func appendInt64List(b *array.ListBuilder, values []int64) {
	b.Append(true)
	vb := b.ValueBuilder().(*array.Int64Builder)
	for _, v := range values {
		vb.Append(v)
	}
}

const timestampLayout = "2006-01-02T15:04:05.000000Z"
