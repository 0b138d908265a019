// Package model defines the entities persisted and read back by slack-tool:
// chat messages, workspace users, issue tickets, and the channels they
// belong to.
package model

import "time"

// Reaction is an emoji reaction attached to a message, with the set of users
// who applied it.
type Reaction struct {
	Emoji string
	Count int
	Users []string
}

// File is a file attachment on a message.
type File struct {
	ID       string
	Name     string
	MimeType string
	URL      string
	Size     int64
}

// ChatMessage is a single message row, flat (not yet reconstructed into a
// thread tree).
type ChatMessage struct {
	MessageID   string
	UserID      string // empty when the platform omitted it (system message)
	Text        string
	Timestamp   time.Time
	ThreadTS    string // empty when not part of any thread
	ReplyCount  int
	Reactions   []Reaction
	Files       []File
	IssueKeys   []string

	// User fields, joined in from the user cache at fetch time. Empty when
	// the user lookup failed or UserID is empty.
	UserName     string
	UserRealName string
	UserEmail    string
	UserIsBot    bool
	userJoined   bool

	// Reader-only annotations, set by internal/thread. Never written by
	// internal/store.
	IsOrphanedReply    bool
	IsClippedThread    bool
	HasClippedReplies  bool
	Replies            []ChatMessage
}

// WithUser returns a copy of m with user fields populated from u.
func (m ChatMessage) WithUser(u *User) ChatMessage {
	if u == nil {
		return m
	}
	m.UserName = u.Name
	m.UserRealName = u.RealName
	m.UserEmail = u.Email
	m.UserIsBot = u.IsBot
	m.userJoined = true
	return m
}

// IsThreadParent reports whether m is a thread parent: thread_ts ==
// message_id and it has at least one reply.
func (m ChatMessage) IsThreadParent() bool {
	return m.ThreadTS != "" && m.ThreadTS == m.MessageID && m.ReplyCount > 0
}

// IsThreadReply reports whether m is a reply: thread_ts present and not self.
func (m ChatMessage) IsThreadReply() bool {
	return m.ThreadTS != "" && m.ThreadTS != m.MessageID
}

// HasReactions reports whether the message carries any reactions.
func (m ChatMessage) HasReactions() bool { return len(m.Reactions) > 0 }

// HasFiles reports whether the message carries any file attachments.
func (m ChatMessage) HasFiles() bool { return len(m.Files) > 0 }

// HasThread is reserved for forward schema compatibility: always false in
// current writers, and no reader logic consults it.
func (m ChatMessage) HasThread() bool { return false }

// DisplayName returns the best available human label for the message's
// author, falling back to the bare user id.
func (m ChatMessage) DisplayName() string {
	switch {
	case m.UserRealName != "":
		return m.UserRealName
	case m.UserName != "":
		return m.UserName
	default:
		return m.UserID
	}
}
