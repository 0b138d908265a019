// Package store is the Arrow-backed Parquet persistence layer: a fixed,
// strongly-typed schema, one file per partition, Snappy compression, atomic
// overwrite-per-partition writes.
//
// Grounded on malbeclabs-lake (go.mod pairs github.com/slack-go/slack with
// github.com/apache/arrow-go/v18 in the same module — the pack's only
// Slack-plus-Arrow precedent) and on grafana-tempo's partitioned,
// one-file-per-segment on-disk discipline (modules/bufferer/partition_reader.go,
// tempodb/tempodb.go).
package store

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// MessageSchema is the fixed 16-column messages schema. Field order and
// nullability are part of the on-disk contract; never reorder existing
// fields, only append.
//
// Per-message reactions/files are not persisted as nested list<struct>
// columns — that is an optional extension this writer skips; it keeps only
// their derived has_reactions/has_files flags, the minimal required
// contract.
var MessageSchema = arrow.NewSchema([]arrow.Field{
	{Name: "message_id", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "user_id", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "text", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "timestamp", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "thread_ts", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "is_thread_parent", Type: arrow.FixedWidthTypes.Boolean, Nullable: false},
	{Name: "is_thread_reply", Type: arrow.FixedWidthTypes.Boolean, Nullable: false},
	{Name: "reply_count", Type: arrow.PrimitiveTypes.Int64, Nullable: false},
	{Name: "user_name", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "user_real_name", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "user_email", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "user_is_bot", Type: arrow.FixedWidthTypes.Boolean, Nullable: true},
	{Name: "issue_keys", Type: arrow.ListOf(arrow.BinaryTypes.String), Nullable: false},
	{Name: "has_reactions", Type: arrow.FixedWidthTypes.Boolean, Nullable: false},
	{Name: "has_files", Type: arrow.FixedWidthTypes.Boolean, Nullable: false},
	{Name: "has_thread", Type: arrow.FixedWidthTypes.Boolean, Nullable: false},
}, nil)

// UserSchema is the fixed 6-column users schema.
var UserSchema = arrow.NewSchema([]arrow.Field{
	{Name: "user_id", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "user_name", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "user_real_name", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "user_email", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "is_bot", Type: arrow.FixedWidthTypes.Boolean, Nullable: false},
	{Name: "cached_at", Type: arrow.BinaryTypes.String, Nullable: false},
}, nil)

// IssueTicketSchema is the full ticket field set, cached_at last.
var IssueTicketSchema = arrow.NewSchema([]arrow.Field{
	{Name: "ticket_id", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "summary", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "status", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "priority", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "issue_type", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "assignee", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "created", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "updated", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "due_date", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "story_points", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
	{Name: "blocks", Type: arrow.ListOf(arrow.BinaryTypes.String), Nullable: false},
	{Name: "blocked_by", Type: arrow.ListOf(arrow.BinaryTypes.String), Nullable: false},
	{Name: "depends_on", Type: arrow.ListOf(arrow.BinaryTypes.String), Nullable: false},
	{Name: "related", Type: arrow.ListOf(arrow.BinaryTypes.String), Nullable: false},
	{Name: "components", Type: arrow.ListOf(arrow.BinaryTypes.String), Nullable: false},
	{Name: "labels", Type: arrow.ListOf(arrow.BinaryTypes.String), Nullable: false},
	{Name: "fix_versions", Type: arrow.ListOf(arrow.BinaryTypes.String), Nullable: false},
	{Name: "project", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "team", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "epic_link", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "resolution", Type: arrow.BinaryTypes.String, Nullable: true},
	// comments is persisted as two parallel lists (keys/values) rather than
	// a map<string,int> column: simpler Arrow builder round trip, and
	// map-valued Parquet columns gain nothing over parallel lists for this
	// tool's read path (reader only ever needs total_comments downstream).
	{Name: "comment_authors", Type: arrow.ListOf(arrow.BinaryTypes.String), Nullable: false},
	{Name: "comment_counts", Type: arrow.ListOf(arrow.PrimitiveTypes.Int64), Nullable: false},
	{Name: "total_comments", Type: arrow.PrimitiveTypes.Int64, Nullable: false},
	{Name: "sprint_names", Type: arrow.ListOf(arrow.BinaryTypes.String), Nullable: false},
	{Name: "sprint_states", Type: arrow.ListOf(arrow.BinaryTypes.String), Nullable: false},
	{Name: "cached_at", Type: arrow.BinaryTypes.String, Nullable: false},
}, nil)
