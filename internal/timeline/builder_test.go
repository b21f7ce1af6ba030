package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlankCalendar_GapFree(t *testing.T) {
	start := mustDay(t, "2024-02-26")
	end := mustDay(t, "2024-03-03")

	tl := BlankCalendar(start, end)
	require.Len(t, tl, 7)

	for i, e := range tl {
		assert.Equal(t, start+Day(i), e.Day, "dates must increase by exactly one day")
		assert.Zero(t, e.Steps)
		assert.Zero(t, e.DistanceKm)
	}
}

func TestBlankCalendar_SingleDayAndInverted(t *testing.T) {
	d := mustDay(t, "2024-01-01")
	assert.Len(t, BlankCalendar(d, d), 1)
	assert.Empty(t, BlankCalendar(d, d-1))
}

func TestInterpolateDays_AroundSingleAnchor(t *testing.T) {
	day := mustDay(t, "2024-02-13")
	days := InterpolateDays(5, []Anchor{{Index: 2, Day: day}})
	require.Len(t, days, 5)

	assert.Equal(t, day-2, days[0])
	assert.Equal(t, day-1, days[1])
	assert.Equal(t, day, days[2])
	assert.Equal(t, day+1, days[3])
	assert.Equal(t, day+2, days[4])
}

func TestInterpolateDays_BetweenAnchors(t *testing.T) {
	d1 := mustDay(t, "2024-01-10")
	d2 := mustDay(t, "2024-01-14")
	days := InterpolateDays(6, []Anchor{{Index: 1, Day: d1}, {Index: 5, Day: d2}})

	// Indices strictly between the anchors advance one day per index from
	// the earlier anchor.
	assert.Equal(t, d1+1, days[2])
	assert.Equal(t, d1+2, days[3])
	assert.Equal(t, d1+3, days[4])
	assert.Equal(t, d2, days[5])

	// Monotonic between bound anchors.
	for i := 2; i <= 5; i++ {
		assert.Greater(t, days[i], days[i-1])
	}
}

func TestInterpolateDays_NoAnchors(t *testing.T) {
	assert.Nil(t, InterpolateDays(4, nil))
	assert.Nil(t, InterpolateDays(0, []Anchor{{Index: 0, Day: 1}}))
}

func TestBuild_ConflictResolutionCommutative(t *testing.T) {
	day := mustDay(t, "2024-02-13")
	a := Record{Steps: 500, DistanceKm: 0.4}
	b := Record{Steps: 800, DistanceKm: 0.1}
	// Both indices bound to the same day forces a same-day conflict.
	anchors := []Anchor{{Index: 0, Day: day}, {Index: 1, Day: day}}

	tlAB := Build([]Record{a, b}, anchors, day, day)
	tlBA := Build([]Record{b, a}, anchors, day, day)

	// Order-independent winner for the contested day.
	assert.Equal(t, tlAB[0], tlBA[0])
	assert.Equal(t, 800, tlAB[0].Steps)
}

func TestBuild_SameDayKeepsGreatestSteps(t *testing.T) {
	day := mustDay(t, "2024-02-13")
	records := []Record{
		{Steps: 500, DistanceKm: 0.4},
		{Steps: 800, DistanceKm: 0.1},
	}
	// Two anchors binding both indices to the same day forces a same-day
	// conflict.
	anchors := []Anchor{{Index: 0, Day: day}, {Index: 1, Day: day}}

	tl := Build(records, anchors, day, day)
	require.Len(t, tl, 1)
	assert.Equal(t, 800, tl[0].Steps)
	assert.Equal(t, 0.1, tl[0].DistanceKm)
}

func TestBuild_TieOnStepsKeepsGreatestDistance(t *testing.T) {
	day := mustDay(t, "2024-02-13")
	records := []Record{
		{Steps: 500, DistanceKm: 0.2},
		{Steps: 500, DistanceKm: 0.7},
	}
	anchors := []Anchor{{Index: 0, Day: day}, {Index: 1, Day: day}}

	tl := Build(records, anchors, day, day)
	require.Len(t, tl, 1)
	assert.Equal(t, 500, tl[0].Steps)
	assert.Equal(t, 0.7, tl[0].DistanceKm)
}

func TestBuild_DropsDaysOutsideCalendar(t *testing.T) {
	start := mustDay(t, "2024-02-12")
	records := recordsWithSteps(100, 200, 300)
	// Anchor index 1 on the calendar start; index 0 interpolates to the day
	// before the calendar and must be dropped.
	anchors := []Anchor{{Index: 1, Day: start}}

	tl := Build(records, anchors, start, start+1)
	require.Len(t, tl, 2)
	assert.Equal(t, 200, tl[0].Steps)
	assert.Equal(t, 300, tl[1].Steps)
}

func TestBuild_NoAnchorsYieldsBlankCalendar(t *testing.T) {
	start := mustDay(t, "2024-02-12")
	end := mustDay(t, "2024-02-15")

	tl := Build(recordsWithSteps(1, 2, 3), nil, start, end)
	require.Len(t, tl, 4)
	for _, e := range tl {
		assert.Zero(t, e.Steps)
		assert.Zero(t, e.DistanceKm)
	}
}
