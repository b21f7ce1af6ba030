// Package timeline reconstructs a continuous daily activity calendar from
// export fragments whose timestamps cannot be trusted. Records are totally
// ordered, known step-count sequences ("clusters") are located inside that
// order to bind record indices to real dates, and every remaining index is
// dated by linear interpolation around those anchors.
package timeline

import (
	"fmt"
	"time"
)

// Day is a calendar date expressed as whole days since 1970-01-01 UTC.
// Every date in this package is a Day, so date comparisons can never mix
// timestamp representations. The zero value is the epoch itself, which
// doubles as the "untrusted date" sentinel carried by some export fragments.
type Day int

const dayLayout = "2006-01-02"

// ParseDay parses an ISO calendar date ("2006-01-02").
func ParseDay(s string) (Day, error) {
	t, err := time.ParseInLocation(dayLayout, s, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("parse day %q: %w", s, err)
	}
	return DayOfTime(t), nil
}

// DayOfTime truncates t to its UTC calendar date.
func DayOfTime(t time.Time) Day {
	return DayOfUnix(t.Unix())
}

// DayOfUnix truncates a unix-seconds timestamp to its UTC calendar date.
func DayOfUnix(sec int64) Day {
	d := sec / 86400
	if sec < 0 && sec%86400 != 0 {
		d--
	}
	return Day(d)
}

// Time returns midnight UTC of the day.
func (d Day) Time() time.Time {
	return time.Unix(int64(d)*86400, 0).UTC()
}

// String formats the day as an ISO calendar date.
func (d Day) String() string {
	return d.Time().Format(dayLayout)
}

// Record is one normalized observation parsed from an export fragment.
// Records are created once during discovery and never mutated.
type Record struct {
	Steps      int     // total steps for the (believed) day, > 0
	DistanceKm float64 // measured or derived distance, never negative
	RawDay     Day     // date extracted from the fragment; 0 means untrusted
	ModifiedAt int64   // unix seconds mtime of the source fragment
	Source     string  // path of origin, used only as a deterministic tie-break
	Style      string  // export dialect the fragment was written in
}

// TrustedDay reports whether the record carries a usable extracted date.
// The epoch sentinel written by some exporters does not count.
func (r Record) TrustedDay() bool {
	return r.RawDay > 0
}

// Cluster is a priori ground truth: a run of consecutive days whose step
// counts and real start date are known in advance.
type Cluster struct {
	StartDay Day
	Steps    []int
}

// Anchor binds one record index in the total order to a real calendar day.
type Anchor struct {
	Index int
	Day   Day
}

// Entry is one day of the reconstructed calendar.
type Entry struct {
	Day        Day
	Steps      int
	DistanceKm float64
}

// Timeline is a contiguous, gap-free run of entries, one per day, dates
// strictly increasing by one day.
type Timeline []Entry
