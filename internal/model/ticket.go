package model

import "time"

// Sprint is one sprint a ticket has been scheduled into, with its state at
// cache time.
type Sprint struct {
	Name  string
	State string
}

// IssueTicket is one issue-tracker item, enriched onto messages that mention
// its key. Dependency lists (Blocks, BlockedBy, ...) form a directed graph
// that may contain cycles; this is intentionally not resolved here, only
// carried as arrays of IDs for the caller to traverse.
type IssueTicket struct {
	TicketID      string
	Summary       string
	Status        string
	Priority      string
	IssueType     string
	Assignee      string
	Created       time.Time
	Updated       time.Time
	DueDate       *time.Time
	StoryPoints   *int

	Blocks       []string
	BlockedBy    []string
	DependsOn    []string
	Related      []string
	Components   []string
	Labels       []string
	FixVersions  []string

	Project      string
	Team         string
	EpicLink     string
	Resolution   string

	Comments      map[string]int
	TotalComments int

	Sprints  []Sprint
	CachedAt time.Time
}
