package timeline

import "sort"

// sortDay is the primary ordering key for a record: the extracted date when
// it can be trusted, otherwise the UTC day of the fragment's mtime. Both are
// epoch days, so the two sources of truth are always comparable.
func sortDay(r Record) Day {
	if r.TrustedDay() {
		return r.RawDay
	}
	return DayOfUnix(r.ModifiedAt)
}

// Order sorts records in place into the deterministic total order that
// anchoring depends on: by trusted date, then mtime, then source path.
// The sort is stable, so repeated runs over the same inputs always produce
// the same coordinate space.
func Order(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if da, db := sortDay(a), sortDay(b); da != db {
			return da < db
		}
		if a.ModifiedAt != b.ModifiedAt {
			return a.ModifiedAt < b.ModifiedAt
		}
		return a.Source < b.Source
	})
}
