package timeline

import "sort"

// AnchorClusters locates each cluster's step sequence inside the ordered
// records and binds the matched indices to real days. Clusters are matched
// in ascending start-date order and the search window only moves forward, so
// anchors from successive clusters can never overlap or run backwards. A
// cluster whose sequence does not occur is skipped; its days stay unbound.
//
// The returned anchors are in ascending index order. The second result is
// the number of clusters that matched.
func AnchorClusters(records []Record, clusters []Cluster) ([]Anchor, int) {
	ordered := make([]Cluster, len(clusters))
	copy(ordered, clusters)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartDay < ordered[j].StartDay
	})

	var anchors []Anchor
	matched := 0
	searchFrom := 0
	for _, c := range ordered {
		if len(c.Steps) == 0 {
			continue
		}
		i := matchSequence(records, c.Steps, searchFrom)
		if i < 0 {
			continue
		}
		for k := range c.Steps {
			anchors = append(anchors, Anchor{Index: i + k, Day: c.StartDay + Day(k)})
		}
		matched++
		searchFrom = i + len(c.Steps)
	}
	return anchors, matched
}

// matchSequence returns the first index at or after from where the records'
// step counts equal seq element-wise, or -1 when seq does not occur.
func matchSequence(records []Record, seq []int, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i+len(seq) <= len(records); i++ {
		hit := true
		for k, want := range seq {
			if records[i+k].Steps != want {
				hit = false
				break
			}
		}
		if hit {
			return i
		}
	}
	return -1
}
