package timeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	d := mustDay(t, "2024-02-12")
	tl := Timeline{
		{Day: d, Steps: 6822, DistanceKm: 5.11},
		{Day: d + 1, Steps: 4521, DistanceKm: 3.389},
		{Day: d + 2},
	}

	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, tl))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "date,steps,distance_km", lines[0])
	assert.Equal(t, "2024-02-12,6822,5.11", lines[1])
	assert.Equal(t, "2024-02-13,4521,3.39", lines[2], "distance fixed to two decimals")
	assert.Equal(t, "2024-02-14,0,0.00", lines[3])
}

func TestWriteCSV_EmptyTimeline(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, Timeline{}))
	assert.Equal(t, "date,steps,distance_km", strings.TrimSpace(sb.String()))
}
