// Package export discovers and normalizes raw sensor-export fragments.
// Fragments come in a handful of JSON dialects written by different app
// versions; the parser collapses each one into at most one timeline record.
package export

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/runnerr0/stridelog/internal/timeline"
)

// Export dialects. The list-of-bins shape appears in both; the single-object
// aggregate shape also appears in both but with different field names.
const (
	StyleShealth   = "shealth"
	StylePedometer = "pedometer"
)

// dayFields are the known aliases for a fragment's date, in epoch
// milliseconds. First present field wins.
var dayFields = []string{"mBestStepsDate", "mStartTime", "start_time"}

// Parser normalizes fragments into records.
type Parser struct {
	// KmForSteps derives distance for fragments with no usable distance
	// field. Required.
	KmForSteps func(steps int) float64
}

// ParseFragment normalizes one fragment. It returns ok=false for fragments
// that decode fine but carry no positive steps (not an error), and an error
// only when the payload cannot be decoded at all. A returned record always
// has Steps > 0.
func (p *Parser) ParseFragment(source string, data []byte, modifiedAt int64) (timeline.Record, bool, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return timeline.Record{}, false, fmt.Errorf("decode fragment: %w", err)
	}

	var (
		style    string
		steps    int
		meters   float64
		rawDay   timeline.Day
		dayFound bool
	)

	switch doc := v.(type) {
	case []interface{}:
		style, steps, meters, rawDay, dayFound = parseBins(doc)
	case map[string]interface{}:
		style, steps, rawDay, dayFound = parseAggregate(doc)
	}

	if style == "" || steps <= 0 {
		return timeline.Record{}, false, nil
	}

	km := p.KmForSteps(steps)
	if meters > 0 {
		km = round2(meters / 1000)
	}

	if !dayFound || rawDay < 0 {
		rawDay = 0
	}

	return timeline.Record{
		Steps:      steps,
		DistanceKm: km,
		RawDay:     rawDay,
		ModifiedAt: modifiedAt,
		Source:     source,
		Style:      style,
	}, true, nil
}

// parseBins handles the list-of-bins shape. The first bin naming a known
// step field fixes the dialect for the whole fragment; bins are then summed.
func parseBins(doc []interface{}) (style string, steps int, meters float64, rawDay timeline.Day, dayFound bool) {
	for _, item := range doc {
		bin, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if !dayFound {
			rawDay, dayFound = extractDay(bin)
		}
		if _, ok := bin["count"]; ok {
			style = StyleShealth
			break
		}
		if _, ok := bin["mStepCount"]; ok {
			style = StylePedometer
			break
		}
	}
	if style == "" {
		return "", 0, 0, 0, false
	}

	stepKey, distKey := "count", "distance"
	if style == StylePedometer {
		stepKey, distKey = "mStepCount", "mDistance"
	}

	for _, item := range doc {
		bin, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if s, ok := numField(bin, stepKey); ok && s > 0 {
			steps += int(s)
		}
		if d, ok := numField(bin, distKey); ok && d > 0 {
			meters += d
		}
		if !dayFound {
			rawDay, dayFound = extractDay(bin)
		}
	}
	return style, steps, meters, rawDay, dayFound
}

// parseAggregate handles the single-object shape: a pedometer best-day
// summary or a shealth daily aggregate.
func parseAggregate(doc map[string]interface{}) (style string, steps int, rawDay timeline.Day, dayFound bool) {
	if s, ok := numField(doc, "mBestSteps"); ok {
		if _, ok := doc["mBestStepsDate"]; ok {
			rawDay, dayFound = extractDay(doc)
			return StylePedometer, int(s), rawDay, dayFound
		}
	}
	if s, ok := numField(doc, "count"); ok {
		if _, ok := doc["start_time"]; ok {
			rawDay, dayFound = extractDay(doc)
			return StyleShealth, int(s), rawDay, dayFound
		}
	}
	return "", 0, 0, false
}

// extractDay pulls the fragment's date from the first known alias present.
// An epoch value stays an epoch Day (the untrusted sentinel).
func extractDay(m map[string]interface{}) (timeline.Day, bool) {
	for _, key := range dayFields {
		if ms, ok := numField(m, key); ok {
			return timeline.DayOfUnix(int64(ms / 1000)), true
		}
	}
	return 0, false
}

func numField(m map[string]interface{}, key string) (float64, bool) {
	f, ok := m[key].(float64)
	return f, ok
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
