package model

import "time"

// User is a workspace member, cached for the lifetime of a run and flushed
// once to users.parquet.
//
// Mirrors the value-object-plus-factory shape the teacher uses for its own
// User entity, trimmed to the fields this tool uses (DisplayName is kept in
// memory only; users.parquet does not store it).
type User struct {
	UserID      string
	Name        string
	RealName    string
	DisplayName string
	Email       string
	IsBot       bool
	CachedAt    time.Time
}

// NewUser builds a User from raw fields, defaulting DisplayName to Name when
// the platform didn't supply one. CachedAt is left zero: it is writer-
// assigned, uniformly across a batch, by store.SaveUsers — not stamped per
// user at resolution time.
func NewUser(userID, name, realName, displayName, email string, isBot bool) User {
	if displayName == "" {
		displayName = name
	}
	return User{
		UserID:      userID,
		Name:        name,
		RealName:    realName,
		DisplayName: displayName,
		Email:       email,
		IsBot:       isBot,
	}
}
