// Package interval defines the half-open time-range primitive shared by
// conflict detection and slot synchronization. All overlap semantics in the
// system are defined here and nowhere else.
package interval

import (
	"fmt"
	"time"
)

// Source identifies which kind of record an interval was built from.
type Source string

const (
	SourceLesson Source = "lesson"
	SourceSlot   Source = "slot"
)

// Range is a normalized half-open time range [Start, End) tagged with the
// record it came from.
type Range struct {
	RecordID string
	Source   Source
	Start    time.Time
	End      time.Time
	Label    string
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share any
// instant. Touching endpoints (aEnd == bStart) do not overlap, and a
// zero-length range overlaps nothing, including itself, by construction
// of the strict inequalities.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Overlaps reports whether r and other share any instant.
func (r Range) Overlaps(other Range) bool {
	return Overlaps(r.Start, r.End, other.Start, other.End)
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ParseDate parses a YYYY-MM-DD date at midnight in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// At combines a YYYY-MM-DD date and an HH:MM clock time into a single
// instant in loc.
func At(date, clock string, loc *time.Location) (time.Time, error) {
	day, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, err
	}
	c, err := time.ParseInLocation(timeLayout, clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, loc), nil
}

// New builds a Range from a date, an HH:MM start and an HH:MM end in loc.
func New(recordID string, source Source, date, startClock, endClock, label string, loc *time.Location) (Range, error) {
	start, err := At(date, startClock, loc)
	if err != nil {
		return Range{}, err
	}
	end, err := At(date, endClock, loc)
	if err != nil {
		return Range{}, err
	}
	return Range{RecordID: recordID, Source: source, Start: start, End: end, Label: label}, nil
}

// NewWithDuration builds a Range from a date, an HH:MM start and a duration
// in minutes in loc.
func NewWithDuration(recordID string, source Source, date, startClock string, minutes int, label string, loc *time.Location) (Range, error) {
	start, err := At(date, startClock, loc)
	if err != nil {
		return Range{}, err
	}
	return Range{
		RecordID: recordID,
		Source:   source,
		Start:    start,
		End:      start.Add(time.Duration(minutes) * time.Minute),
		Label:    label,
	}, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string { return t.Format(dateLayout) }

// FormatClock renders t as HH:MM.
func FormatClock(t time.Time) string { return t.Format(timeLayout) }
