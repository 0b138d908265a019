// Package clock converts the (days, hours, end) CLI inputs into a concrete
// UTC time window, and formats partition dates.
package clock

import (
	"time"

	"github.com/zeebeeCoder/slack-tool/internal/model"
)

// DateLayout is the partition date format used throughout the dataset
// (`dt=YYYY-MM-DD`).
const DateLayout = "2006-01-02"

// Window computes [start, end] from a lookback of days+hours ending at end
// (or now, if end is the zero Time). Both bounds are normalized to UTC.
func Window(days, hours int, end time.Time) model.Window {
	if end.IsZero() {
		end = time.Now()
	}
	end = end.UTC()
	lookback := time.Duration(days)*24*time.Hour + time.Duration(hours)*time.Hour
	start := end.Add(-lookback)
	return model.Window{Start: start, End: end}
}

// WindowForDate computes the [00:00:00, 23:59:59] UTC window for a single
// calendar date, used by `view --date D`.
func WindowForDate(date time.Time) model.Window {
	date = date.UTC()
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Nanosecond)
	return model.Window{Start: start, End: end}
}

// WindowForRange computes the window spanning [startDate 00:00:00, endDate 23:59:59].
func WindowForRange(startDate, endDate time.Time) model.Window {
	return model.Window{
		Start: WindowForDate(startDate).Start,
		End:   WindowForDate(endDate).End,
	}
}

// PartitionDate formats t's UTC calendar date for use in a `dt=` partition
// segment. This must always be the message's own UTC date, never ingestion
// time.
func PartitionDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses a `YYYY-MM-DD` CLI argument as a UTC midnight instant.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// DatesInRange enumerates every calendar date in [start, end] inclusive, as
// DateLayout-formatted strings, for range partition reads.
func DatesInRange(start, end time.Time) []string {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if end.Before(start) {
		return nil
	}
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates
}
