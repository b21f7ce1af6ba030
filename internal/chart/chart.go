// Package chart renders the reconstructed timeline as self-contained HTML
// bar charts: steps per day, distance per day, and distance per month.
package chart

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/runnerr0/stridelog/internal/timeline"
)

const (
	barColor     = "#1976d2"
	monthlyLabel = "Jan 2006"
)

// RenderAll writes the three standard charts into dir, creating it if
// needed, and returns the written paths.
func RenderAll(tl timeline.Timeline, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create chart directory: %w", err)
	}

	dates := make([]string, len(tl))
	steps := make([]opts.BarData, len(tl))
	km := make([]opts.BarData, len(tl))
	for i, e := range tl {
		dates[i] = e.Day.String()
		steps[i] = opts.BarData{Value: e.Steps}
		km[i] = opts.BarData{Value: e.DistanceKm}
	}

	months, monthlyKm := monthlyDistance(tl)

	files := []struct {
		name string
		bar  *charts.Bar
	}{
		{"steps_daily.html", newBar("Step Count Per Day", "Steps", dates, steps)},
		{"km_daily.html", newBar("Distance (km) Per Day", "Distance (km)", dates, km)},
		{"km_monthly.html", newBar("Distance (km) Per Month", "Distance (km)", months, monthlyKm)},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := renderToFile(f.bar, path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// monthlyDistance sums distance per calendar month, in chronological order.
func monthlyDistance(tl timeline.Timeline) ([]string, []opts.BarData) {
	var labels []string
	var sums []float64
	for _, e := range tl {
		label := e.Day.Time().Format(monthlyLabel)
		if len(labels) == 0 || labels[len(labels)-1] != label {
			labels = append(labels, label)
			sums = append(sums, 0)
		}
		sums[len(sums)-1] += e.DistanceKm
	}
	values := make([]opts.BarData, len(sums))
	for i, s := range sums {
		values[i] = opts.BarData{Value: math.Round(s*100) / 100}
	}
	return labels, values
}

func newBar(title, yName string, x []string, data []opts.BarData) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "1600px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	bar.SetXAxis(x)
	bar.AddSeries(yName, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: barColor}))
	return bar
}

func renderToFile(bar *charts.Bar, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	if err := bar.Render(f); err != nil {
		return fmt.Errorf("render chart %s: %w", filepath.Base(path), err)
	}
	return nil
}
