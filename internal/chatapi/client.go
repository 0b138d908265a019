// Package chatapi defines the narrow collaborator boundary for the chat
// platform's HTTP API. Per spec.md §1, the concrete HTTP client is an
// external collaborator — only the interface, its payload types and a
// NotImplemented placeholder live here (the error taxonomy is in
// internal/slackerr).
package chatapi

import (
	"context"
	"time"
)

// RawMessage is one message as returned by the chat platform, before
// conversion into model.ChatMessage.
type RawMessage struct {
	MessageID  string
	UserID     string
	Text       string
	Timestamp  time.Time
	ThreadTS   string
	ReplyCount int
	Reactions  []RawReaction
	Files      []RawFile
}

// RawReaction mirrors the platform's reaction payload shape.
type RawReaction struct {
	Emoji string
	Count int
	Users []string
}

// RawFile mirrors the platform's file-attachment payload shape.
type RawFile struct {
	ID       string
	Name     string
	MimeType string
	URL      string
	Size     int64
}

// RawUser mirrors the platform's user-info payload shape.
type RawUser struct {
	UserID      string
	Name        string
	RealName    string
	DisplayName string
	Email       string
	IsBot       bool
}

// TokenKind records which credential was selected at construction, for
// logging only — spec.md §4.1 states behavior never differs by kind.
type TokenKind string

const (
	TokenKindUser TokenKind = "user"
	TokenKindBot  TokenKind = "bot"
)

// Client is the narrow capability set spec.md §9 calls for: history,
// replies, user. No retry, no rate limiting: internal/ratelimit wraps a
// Client with a token bucket and a worker pool, and nothing in this module
// retries a failed call.
type Client interface {
	// History pages a channel's timeline between oldest and latest. cursor
	// is the empty string on the first call; the returned nextCursor is
	// empty when exhausted.
	History(ctx context.Context, channel string, oldest, latest time.Time, cursor string) (page []RawMessage, nextCursor string, err error)

	// Replies pages one thread's replies, including the parent as the first
	// element (callers drop it, per spec.md §4.3 step 4).
	Replies(ctx context.Context, channel, threadTS, cursor string) (page []RawMessage, nextCursor string, err error)

	// User fetches one user's profile.
	User(ctx context.Context, userID string) (RawUser, error)
}
