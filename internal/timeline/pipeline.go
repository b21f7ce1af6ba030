package timeline

// Params configures a reconstruction pass.
type Params struct {
	// Clusters is the ground truth used to anchor the record order to real
	// dates. May be empty, in which case the timeline stays blank.
	Clusters []Cluster

	// CalStart and CalEnd bound the output calendar. When both are zero the
	// span is derived as the minimal range covering all clusters.
	CalStart Day
	CalEnd   Day
}

// Summary reports what a reconstruction pass actually did, so operators can
// sanity-check coverage.
type Summary struct {
	Records         int
	ClustersMatched int
	AnchoredIndices int
	TimelineDays    int
}

// CalendarSpan returns the minimal calendar range covering every cluster:
// the earliest start day through the latest cluster's final day. ok is false
// when there are no non-empty clusters to derive a span from.
func CalendarSpan(clusters []Cluster) (start, end Day, ok bool) {
	for _, c := range clusters {
		if len(c.Steps) == 0 {
			continue
		}
		last := c.StartDay + Day(len(c.Steps)-1)
		if !ok || c.StartDay < start {
			start = c.StartDay
		}
		if !ok || last > end {
			end = last
		}
		ok = true
	}
	return start, end, ok
}

// Reconstruct runs the core pipeline over already-discovered records:
// ordering, cluster anchoring, calendar building, and deduplication. The
// input slice is not modified. A run with no records or no matched clusters
// still returns the complete, all-zero calendar.
func Reconstruct(records []Record, p Params) (Timeline, Summary) {
	start, end := p.CalStart, p.CalEnd
	if start == 0 && end == 0 {
		s, e, ok := CalendarSpan(p.Clusters)
		if !ok {
			return Timeline{}, Summary{Records: len(records)}
		}
		start, end = s, e
	}

	ordered := make([]Record, len(records))
	copy(ordered, records)
	Order(ordered)

	anchors, matched := AnchorClusters(ordered, p.Clusters)

	tl := Build(ordered, anchors, start, end)
	Dedup(tl)

	return tl, Summary{
		Records:         len(ordered),
		ClustersMatched: matched,
		AnchoredIndices: len(anchors),
		TimelineDays:    len(tl),
	}
}
