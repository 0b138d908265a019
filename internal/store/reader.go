package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/zeebeeCoder/slack-tool/internal/model"
)

// ReadChannel reads every message row for one channel on one date. A missing
// partition (no file on disk) returns an empty slice, not an error: the
// caller cannot distinguish "nothing ingested" from "nothing happened" and
// does not need to.
func ReadChannel(root, date string, channel model.Channel) ([]model.ChatMessage, error) {
	path := MessagesPath(root, date, channel)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return readMessageFile(path)
}

// ReadChannelRange reads and concatenates every date partition for channel
// between start and end inclusive, sorted by timestamp.
func ReadChannelRange(root string, channel model.Channel, start, end time.Time) ([]model.ChatMessage, error) {
	var all []model.ChatMessage
	for _, date := range datesInclusive(start, end) {
		msgs, err := ReadChannel(root, date, channel)
		if err != nil {
			return nil, fmt.Errorf("read %s/%s: %w", channel.Alias(), date, err)
		}
		all = append(all, msgs...)
	}
	sortRows(all)
	return all, nil
}

func sortRows(rows []model.ChatMessage) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Timestamp.Equal(rows[j].Timestamp) {
			return rows[i].MessageID < rows[j].MessageID
		}
		return rows[i].Timestamp.Before(rows[j].Timestamp)
	})
}

// ResolveChannel tries the literal partition "channel=<requested>" first,
// then falls back to "channel=channel_<requested>" for callers that only
// have a raw id on hand. Only these two attempts are made; if neither
// partition exists for date, ok is false.
func ResolveChannel(root, date, requested string) (channel model.Channel, ok bool) {
	literal := model.Channel{Name: requested}
	if _, err := os.Stat(MessagesPath(root, date, literal)); err == nil {
		return literal, true
	}
	fallback := model.Channel{ID: requested}
	if _, err := os.Stat(MessagesPath(root, date, fallback)); err == nil {
		return fallback, true
	}
	return model.Channel{}, false
}

// ReadChannelByName resolves requested to a channel alias per-day (trying
// the literal name, then the "channel_<id>" fallback) and reads every date
// partition in [start, end] under whichever alias is found that day, sorted
// by timestamp ascending. Days with no matching partition under either
// alias are silently skipped.
func ReadChannelByName(root, requested string, start, end time.Time) ([]model.ChatMessage, error) {
	var all []model.ChatMessage
	for _, date := range datesInclusive(start, end) {
		channel, ok := ResolveChannel(root, date, requested)
		if !ok {
			continue
		}
		msgs, err := readMessageFile(MessagesPath(root, date, channel))
		if err != nil {
			return nil, fmt.Errorf("read %s/%s: %w", channel.Alias(), date, err)
		}
		all = append(all, msgs...)
	}
	sortRows(all)
	return all, nil
}

// ReadAllChannels reads every channel partition under dt=date, keyed by
// channel alias as it appears on disk (the original channel name is not
// recoverable from the directory name alone when the fallback form was used).
func ReadAllChannels(root, date string) (map[string][]model.ChatMessage, error) {
	dir := filepath.Join(root, "messages", "dt="+date)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return map[string][]model.ChatMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	out := make(map[string][]model.ChatMessage, len(entries))
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), "channel=") {
			continue
		}
		alias := strings.TrimPrefix(e.Name(), "channel=")
		msgs, err := readMessageFile(filepath.Join(dir, e.Name(), "data.parquet"))
		if err != nil {
			return nil, fmt.Errorf("read channel=%s: %w", alias, err)
		}
		out[alias] = msgs
	}
	return out, nil
}

// ReadUsers reads the full users.parquet file, or an empty slice if it does
// not exist yet.
func ReadUsers(root string) ([]model.User, error) {
	path := UsersPath(root)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	table, err := readTable(path)
	if err != nil {
		return nil, err
	}
	defer table.Release()

	cols := columnIndex(table.Schema())
	var out []model.User
	err = forEachRow(table, func(r row) error {
		out = append(out, model.User{
			UserID:   r.str(cols["user_id"]),
			Name:     r.str(cols["user_name"]),
			RealName: r.str(cols["user_real_name"]),
			Email:    r.str(cols["user_email"]),
			IsBot:    r.boolean(cols["is_bot"]),
			CachedAt: r.time(cols["cached_at"]),
		})
		return nil
	})
	return out, err
}

// PartitionInfo summarizes one channel/date partition for the stats command.
type PartitionInfo struct {
	Channel      string
	Date         string
	MessageCount int
	Bytes        int64
}

// PartitionStats is the spec.md §4.6 PartitionInfo() aggregate: every known
// partition plus the rollup a stats command actually wants to print.
type PartitionStats struct {
	Partitions []PartitionInfo
	TotalRows  int
	TotalBytes int64
}

// Stats computes PartitionStats for root: Partitions() plus the row/byte
// totals across all of them.
func Stats(root string) (PartitionStats, error) {
	infos, err := Partitions(root)
	if err != nil {
		return PartitionStats{}, err
	}
	stats := PartitionStats{Partitions: infos}
	for _, info := range infos {
		stats.TotalRows += info.MessageCount
		stats.TotalBytes += info.Bytes
	}
	return stats, nil
}

// Partitions lists every channel/date partition found under root/messages,
// sorted by date then channel.
func Partitions(root string) ([]PartitionInfo, error) {
	messagesDir := filepath.Join(root, "messages")
	dateDirs, err := os.ReadDir(messagesDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", messagesDir, err)
	}

	var out []PartitionInfo
	for _, dateDir := range dateDirs {
		if !dateDir.IsDir() || !strings.HasPrefix(dateDir.Name(), "dt=") {
			continue
		}
		date := strings.TrimPrefix(dateDir.Name(), "dt=")
		channelDirs, err := os.ReadDir(filepath.Join(messagesDir, dateDir.Name()))
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", dateDir.Name(), err)
		}
		for _, cd := range channelDirs {
			if !cd.IsDir() || !strings.HasPrefix(cd.Name(), "channel=") {
				continue
			}
			alias := strings.TrimPrefix(cd.Name(), "channel=")
			path := filepath.Join(messagesDir, dateDir.Name(), cd.Name(), "data.parquet")
			count, err := countRows(path)
			if err != nil {
				return nil, err
			}
			info, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", path, err)
			}
			out = append(out, PartitionInfo{Channel: alias, Date: date, MessageCount: count, Bytes: info.Size()})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Channel < out[j].Channel
	})
	return out, nil
}

func datesInclusive(start, end time.Time) []string {
	start, end = start.UTC(), end.UTC()
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates
}

// DateLayout mirrors internal/clock.DateLayout, the `dt=YYYY-MM-DD`
// partition date format.
const DateLayout = "2006-01-02"

func readMessageFile(path string) ([]model.ChatMessage, error) {
	table, err := readTable(path)
	if err != nil {
		return nil, err
	}
	defer table.Release()

	cols := columnIndex(table.Schema())
	var out []model.ChatMessage
	err = forEachRow(table, func(r row) error {
		ts, parseErr := time.Parse(timestampLayout, r.str(cols["timestamp"]))
		if parseErr != nil {
			return fmt.Errorf("parse timestamp: %w", parseErr)
		}
		out = append(out, model.ChatMessage{
			MessageID:    r.str(cols["message_id"]),
			UserID:       r.str(cols["user_id"]),
			Text:         r.str(cols["text"]),
			Timestamp:    ts,
			ThreadTS:     r.str(cols["thread_ts"]),
			ReplyCount:   int(r.int64(cols["reply_count"])),
			UserName:     r.str(cols["user_name"]),
			UserRealName: r.str(cols["user_real_name"]),
			UserEmail:    r.str(cols["user_email"]),
			UserIsBot:    r.boolean(cols["user_is_bot"]),
			IssueKeys:    r.strList(cols["issue_keys"]),
		})
		return nil
	})
	return out, err
}

func countRows(path string) (int, error) {
	rdr, err := file.OpenParquetFile(path, false)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer rdr.Close()
	return int(rdr.NumRows()), nil
}

func readTable(path string) (arrow.Table, error) {
	rdr, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer rdr.Close()

	arrowRdr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("new arrow reader: %w", err)
	}

	table, err := arrowRdr.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	return table, nil
}

// userMapColumns are the only columns needed to build a user_id -> display
// name map: user_id plus the two name fields DisplayName() prefers. Scanning
// just these over a wide date window skips decoding every message's text,
// reactions, and file attachments.
var userMapColumns = []string{"user_id", "user_name", "user_real_name"}

// ReadUserMap scans channel's partitions between start and end (resolving
// the alias per-day the same way ReadChannelByName does) projecting only
// userMapColumns, and returns a user_id -> display name map. This is the
// cheap-scan path for mention resolution over a wide window: callers who
// need full message rows should use ReadChannelByName instead.
func ReadUserMap(root, requested string, start, end time.Time) (map[string]string, error) {
	userMap := make(map[string]string)
	for _, date := range datesInclusive(start, end) {
		channel, ok := ResolveChannel(root, date, requested)
		if !ok {
			continue
		}
		table, err := readTableColumns(MessagesPath(root, date, channel), userMapColumns)
		if err != nil {
			return nil, fmt.Errorf("read %s/%s: %w", channel.Alias(), date, err)
		}
		cols := columnIndex(table.Schema())
		err = forEachRow(table, func(r row) error {
			id := r.str(cols["user_id"])
			if id == "" {
				return nil
			}
			if _, ok := userMap[id]; ok {
				return nil
			}
			switch {
			case r.str(cols["user_real_name"]) != "":
				userMap[id] = r.str(cols["user_real_name"])
			case r.str(cols["user_name"]) != "":
				userMap[id] = r.str(cols["user_name"])
			default:
				userMap[id] = id
			}
			return nil
		})
		table.Release()
		if err != nil {
			return nil, err
		}
	}
	return userMap, nil
}

// readTableColumns reads only the named columns from path, via pqarrow's
// row-group column projection — the cheap-scan counterpart to readTable's
// full-column read. Column names absent from the file's schema are skipped.
func readTableColumns(path string, columns []string) (arrow.Table, error) {
	rdr, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer rdr.Close()

	arrowRdr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("new arrow reader: %w", err)
	}

	schema, err := arrowRdr.Schema()
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}

	indices := make([]int, 0, len(columns))
	for _, name := range columns {
		if idx := schema.FieldIndices(name); len(idx) > 0 {
			indices = append(indices, idx[0])
		}
	}

	table, err := arrowRdr.ReadRowGroups(context.Background(), indices, nil)
	if err != nil {
		return nil, fmt.Errorf("read row groups: %w", err)
	}
	return table, nil
}

func columnIndex(schema *arrow.Schema) map[string]int {
	idx := make(map[string]int, len(schema.Fields()))
	for i, f := range schema.Fields() {
		idx[f.Name] = i
	}
	return idx
}
