package timeline

import "sort"

// BlankCalendar builds the gap-free calendar from start to end inclusive,
// one zeroed entry per day. An inverted span yields an empty timeline.
func BlankCalendar(start, end Day) Timeline {
	if end < start {
		return Timeline{}
	}
	tl := make(Timeline, 0, int(end-start)+1)
	for d := start; d <= end; d++ {
		tl = append(tl, Entry{Day: d})
	}
	return tl
}

// InterpolateDays assigns a day to every record index by linear day-offset
// interpolation around the anchors, assuming one record per calendar day:
// indices before the first anchor count backwards from it, indices between
// two anchors count forwards from the earlier one, and indices after the
// last anchor count forwards from it. With no anchors there is nothing to
// interpolate from and the result is nil.
func InterpolateDays(n int, anchors []Anchor) []Day {
	if n == 0 || len(anchors) == 0 {
		return nil
	}
	as := make([]Anchor, len(anchors))
	copy(as, anchors)
	sort.SliceStable(as, func(i, j int) bool { return as[i].Index < as[j].Index })

	days := make([]Day, n)
	next := 0 // first anchor with Index >= i
	for i := 0; i < n; i++ {
		for next < len(as) && as[next].Index < i {
			next++
		}
		switch {
		case next < len(as) && as[next].Index == i:
			days[i] = as[next].Day
		case next == 0:
			first := as[0]
			days[i] = first.Day - Day(first.Index-i)
		default:
			prev := as[next-1]
			days[i] = prev.Day + Day(i-prev.Index)
		}
	}
	return days
}

// resolveByDay collapses multiple records landing on the same day down to a
// single winner: greatest steps, ties broken by greatest distance. The
// outcome does not depend on input order.
func resolveByDay(records []Record, days []Day) map[Day]Record {
	best := make(map[Day]Record)
	for i, r := range records {
		d := days[i]
		cur, ok := best[d]
		if !ok || betterEntry(r.Steps, r.DistanceKm, cur.Steps, cur.DistanceKm) {
			best[d] = r
		}
	}
	return best
}

// betterEntry reports whether (steps, km) strictly beats (curSteps, curKm).
func betterEntry(steps int, km float64, curSteps int, curKm float64) bool {
	if steps != curSteps {
		return steps > curSteps
	}
	return km > curKm
}

// Build runs the full timeline construction: blank calendar, index-to-day
// interpolation, per-day conflict resolution, and overlay. The calendar is
// always complete; records only ever raise a day's entry, never lower it,
// and days resolved outside the calendar span are dropped.
func Build(records []Record, anchors []Anchor, start, end Day) Timeline {
	tl := BlankCalendar(start, end)
	days := InterpolateDays(len(records), anchors)
	if days == nil {
		return tl
	}
	for d, r := range resolveByDay(records, days) {
		if d < start || d > end {
			continue
		}
		e := &tl[int(d-start)]
		if betterEntry(r.Steps, r.DistanceKm, e.Steps, e.DistanceKm) {
			e.Steps = r.Steps
			e.DistanceKm = r.DistanceKm
		}
	}
	return tl
}
