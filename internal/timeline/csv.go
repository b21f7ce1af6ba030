package timeline

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes the timeline as date,steps,distance_km rows with a header,
// dates in ISO form and distance fixed to two decimals.
func WriteCSV(w io.Writer, tl Timeline) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "steps", "distance_km"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range tl {
		row := []string{
			e.Day.String(),
			fmt.Sprintf("%d", e.Steps),
			fmt.Sprintf("%.2f", e.DistanceKm),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", e.Day, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
