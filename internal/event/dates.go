package event

import (
	"fmt"
	"sort"
	"time"
)

// The two timestamp layouts observed in events.json and in Facebook Graph
// responses: full ISO 8601 with numeric offset, and a minute-precision
// local form produced by datetime-local form inputs.
var startLayouts = []string{
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04",
}

// ParseStart parses an event timestamp. Offset-aware values are normalized
// to UTC so comparisons between the two layouts are consistent.
func ParseStart(value string) (time.Time, error) {
	for _, layout := range startLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("no valid date format found for %q", value)
}

// Start returns the parsed start time of the event.
func (e Event) Start() (time.Time, error) {
	return ParseStart(e.StartTime)
}

// SortByStart orders events chronologically by parsed start time. Events
// whose start time does not parse sort last, preserving their relative order.
func SortByStart(events []Event) []Event {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, errA := sorted[i].Start()
		b, errB := sorted[j].Start()
		if errA != nil {
			return false
		}
		if errB != nil {
			return true
		}
		return a.Before(b)
	})
	return sorted
}

// Upcoming keeps events starting strictly after now. Events with unparseable
// start times are dropped.
func Upcoming(events []Event, now time.Time) []Event {
	return filter(events, func(start time.Time) bool { return start.After(now) })
}

// Past keeps events starting at or before now.
func Past(events []Event, now time.Time) []Event {
	return filter(events, func(start time.Time) bool { return !start.After(now) })
}

func filter(events []Event, keep func(time.Time) bool) []Event {
	kept := make([]Event, 0, len(events))
	for _, e := range events {
		start, err := e.Start()
		if err != nil {
			continue
		}
		if keep(start) {
			kept = append(kept, e)
		}
	}
	return kept
}

// Merge replaces the Facebook-sourced portion of the local list wholesale:
// only locally authored events survive from existing, and every event from
// the latest Facebook fetch is included. The result is sorted by start time.
func Merge(existing, fetched []Event) []Event {
	merged := make([]Event, 0, len(existing)+len(fetched))
	for _, e := range existing {
		if e.Local() {
			merged = append(merged, e)
		}
	}
	merged = append(merged, fetched...)
	return SortByStart(merged)
}
