// Package daterange resolves the optional start/end query parameters used by
// the ledger and report endpoints into concrete calendar dates.
package daterange

import (
	"fmt"
	"time"
)

const layout = "2006-01-02"

// Range is an inclusive pair of calendar dates in a reference zone.
type Range struct {
	Start    string
	End      string
	TimeZone string
}

// Resolver fills in defaults relative to "now" in a fixed location.
type Resolver struct {
	loc *time.Location
	now func() time.Time
}

// New returns a Resolver for the IANA zone name tz ("" means UTC).
func New(tz string) (*Resolver, error) {
	if tz == "" {
		tz = "UTC"
	}
	if tz == "Local" {
		return nil, fmt.Errorf("time zone %q: an IANA name such as UTC or Europe/Berlin is required", tz)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", tz, err)
	}
	return &Resolver{loc: loc, now: time.Now}, nil
}

// WithClock returns a copy of r that reads the current time from now.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	return &Resolver{loc: r.loc, now: now}
}

// Location is the reference zone.
func (r *Resolver) Location() *time.Location { return r.loc }

// TimeZone is the reference zone's name as understood by PostgreSQL.
func (r *Resolver) TimeZone() string { return r.loc.String() }

// Now is the current instant in the reference zone.
func (r *Resolver) Now() time.Time { return r.now().In(r.loc) }

// Resolve defaults an empty start to the first day of the current month and
// an empty end to today. Supplied values are passed through unchanged;
// PostgreSQL rejects malformed ones when the query runs.
func (r *Resolver) Resolve(start, end string) Range {
	today := r.Now()
	if start == "" {
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, r.loc).Format(layout)
	}
	if end == "" {
		end = today.Format(layout)
	}
	return Range{Start: start, End: end, TimeZone: r.TimeZone()}
}

// Today is the current calendar date.
func (r *Resolver) Today() time.Time {
	t := r.Now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, r.loc)
}

// WeekStart is the most recent Monday on or before today.
func (r *Resolver) WeekStart() time.Time {
	today := r.Today()
	offset := (int(today.Weekday()) + 6) % 7
	return today.AddDate(0, 0, -offset)
}

// Format renders t as YYYY-MM-DD.
func Format(t time.Time) string { return t.Format(layout) }
