package timeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stream builds an untrusted-date record stream whose total order is fixed
// by ascending mtimes, mirroring fragments that only carry reliable mtimes.
func stream(steps ...int) []Record {
	out := make([]Record, len(steps))
	for i, s := range steps {
		out[i] = Record{
			Steps:      s,
			DistanceKm: float64(s) / 1000,
			ModifiedAt: int64(1_600_000_000 + i),
			Source:     fmt.Sprintf("exports/%03d.binning_data.json", i),
		}
	}
	return out
}

func entryAt(t *testing.T, tl Timeline, day Day) Entry {
	t.Helper()
	require.NotEmpty(t, tl)
	i := int(day - tl[0].Day)
	require.True(t, i >= 0 && i < len(tl), "day %s not in timeline", day)
	return tl[i]
}

func TestReconstruct_ThreeClustersEndToEnd(t *testing.T) {
	clusters := []Cluster{
		{StartDay: mustDay(t, "2021-12-14"), Steps: []int{4702, 6105, 10453}},
		{StartDay: mustDay(t, "2023-05-16"), Steps: []int{2470, 9953, 5412}},
		{StartDay: mustDay(t, "2025-09-15"), Steps: []int{4964, 1247, 2865}},
	}

	// Filler records surround the cluster step values in the ordered stream.
	records := stream(
		1111,
		4702, 6105, 10453,
		2222,
		2470, 9953, 5412,
		3333,
		4964, 1247, 2865,
		4444,
	)

	tl, sum := Reconstruct(records, Params{Clusters: clusters})

	assert.Equal(t, 3, sum.ClustersMatched)
	assert.Equal(t, 9, sum.AnchoredIndices)

	start := mustDay(t, "2021-12-14")
	end := mustDay(t, "2025-09-17")
	require.Len(t, tl, int(end-start)+1)
	assert.Equal(t, start, tl[0].Day)
	assert.Equal(t, end, tl[len(tl)-1].Day)

	// Cluster days carry the anchored values.
	assert.Equal(t, 4702, entryAt(t, tl, mustDay(t, "2021-12-14")).Steps)
	assert.Equal(t, 6105, entryAt(t, tl, mustDay(t, "2021-12-15")).Steps)
	assert.Equal(t, 10453, entryAt(t, tl, mustDay(t, "2021-12-16")).Steps)
	assert.Equal(t, 2470, entryAt(t, tl, mustDay(t, "2023-05-16")).Steps)
	assert.Equal(t, 9953, entryAt(t, tl, mustDay(t, "2023-05-17")).Steps)
	assert.Equal(t, 5412, entryAt(t, tl, mustDay(t, "2023-05-18")).Steps)
	assert.Equal(t, 4964, entryAt(t, tl, mustDay(t, "2025-09-15")).Steps)
	assert.Equal(t, 1247, entryAt(t, tl, mustDay(t, "2025-09-16")).Steps)
	assert.Equal(t, 2865, entryAt(t, tl, mustDay(t, "2025-09-17")).Steps)

	// Filler records interpolate to the days around their neighbours.
	assert.Equal(t, 2222, entryAt(t, tl, mustDay(t, "2021-12-17")).Steps)
	assert.Equal(t, 3333, entryAt(t, tl, mustDay(t, "2023-05-19")).Steps)

	// The filler before the first anchor and after the last one fall outside
	// the derived calendar and are dropped.
	for _, e := range tl {
		assert.NotEqual(t, 1111, e.Steps)
		assert.NotEqual(t, 4444, e.Steps)
	}

	// Days no record mapped to stay blank.
	assert.Zero(t, entryAt(t, tl, mustDay(t, "2022-06-01")).Steps)
}

func TestReconstruct_NoMatchesYieldsAllZeroCalendar(t *testing.T) {
	start := mustDay(t, "2024-02-12")
	end := mustDay(t, "2024-02-25")

	records := stream(10, 20, 30, 40)
	clusters := []Cluster{
		{StartDay: mustDay(t, "2024-02-13"), Steps: []int{999, 888}},
	}

	tl, sum := Reconstruct(records, Params{Clusters: clusters, CalStart: start, CalEnd: end})

	assert.Zero(t, sum.ClustersMatched)
	assert.Zero(t, sum.AnchoredIndices)
	require.Len(t, tl, int(end-start)+1)
	for i, e := range tl {
		assert.Equal(t, start+Day(i), e.Day)
		assert.Zero(t, e.Steps)
		assert.Zero(t, e.DistanceKm)
	}
}

func TestReconstruct_RepeatedCountDeduplicated(t *testing.T) {
	start := mustDay(t, "2024-01-01")
	clusters := []Cluster{{StartDay: start, Steps: []int{100}}}

	// Two different days both report 500 steps; the later one is a sensor
	// artifact and must be blanked.
	records := stream(100, 500, 500)

	tl, sum := Reconstruct(records, Params{Clusters: clusters, CalStart: start, CalEnd: start + 2})

	require.Equal(t, 1, sum.ClustersMatched)
	require.Len(t, tl, 3)
	assert.Equal(t, 100, tl[0].Steps)
	assert.Equal(t, 500, tl[1].Steps)
	assert.Zero(t, tl[2].Steps)
	assert.Zero(t, tl[2].DistanceKm)
}

func TestReconstruct_NoClustersNoSpan(t *testing.T) {
	tl, sum := Reconstruct(stream(1, 2, 3), Params{})
	assert.Empty(t, tl)
	assert.Equal(t, 3, sum.Records)
}

func TestReconstruct_EmptyInputStillBuildsCalendar(t *testing.T) {
	start := mustDay(t, "2024-05-01")
	end := mustDay(t, "2024-05-10")

	tl, sum := Reconstruct(nil, Params{CalStart: start, CalEnd: end})
	require.Len(t, tl, 10)
	assert.Zero(t, sum.Records)
	for _, e := range tl {
		assert.Zero(t, e.Steps)
	}
}

func TestReconstruct_DoesNotMutateInput(t *testing.T) {
	records := stream(300, 100, 200)
	clusters := []Cluster{{StartDay: mustDay(t, "2024-01-01"), Steps: []int{100}}}

	before := make([]Record, len(records))
	copy(before, records)

	_, _ = Reconstruct(records, Params{Clusters: clusters})
	assert.Equal(t, before, records)
}

func TestCalendarSpan_CoversAllClusters(t *testing.T) {
	clusters := []Cluster{
		{StartDay: mustDay(t, "2023-05-16"), Steps: []int{1, 2, 3}},
		{StartDay: mustDay(t, "2021-12-14"), Steps: []int{1, 2}},
	}

	start, end, ok := CalendarSpan(clusters)
	require.True(t, ok)
	assert.Equal(t, mustDay(t, "2021-12-14"), start)
	assert.Equal(t, mustDay(t, "2023-05-18"), end)
}

func TestCalendarSpan_NoUsableClusters(t *testing.T) {
	_, _, ok := CalendarSpan(nil)
	assert.False(t, ok)

	_, _, ok = CalendarSpan([]Cluster{{StartDay: 100}})
	assert.False(t, ok)
}
