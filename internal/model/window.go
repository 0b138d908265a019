package model

import "time"

// Window is a closed time range [Start, End], always normalized to UTC.
// Produced by internal/clock, consumed by internal/fetcher.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the window, inclusive.
func (w Window) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(w.Start) && !t.After(w.End)
}
