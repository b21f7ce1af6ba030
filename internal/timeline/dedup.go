package timeline

// Dedup suppresses sensor double-reporting: a non-zero step count that
// already appeared on an earlier day is rewritten to an empty entry.
// First occurrence wins, strictly in date order. Zero-step days are never
// treated as duplicates and pass through untouched.
func Dedup(tl Timeline) {
	seen := make(map[int]struct{}, len(tl))
	for i := range tl {
		e := &tl[i]
		if e.Steps == 0 {
			continue
		}
		if _, dup := seen[e.Steps]; dup {
			e.Steps = 0
			e.DistanceKm = 0.0
			continue
		}
		seen[e.Steps] = struct{}{}
	}
}
