package export

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/runnerr0/stridelog/internal/monitoring"
	"github.com/runnerr0/stridelog/internal/timeline"
)

// FragmentPattern matches the export's fragment naming convention.
const FragmentPattern = "*.binning_data.json"

// Discovery is the outcome of one discovery pass. The counters let operators
// check coverage: Found fragments were seen on disk, Parsed became records,
// Empty decoded but carried nothing usable, Skipped could not be read or
// decoded.
type Discovery struct {
	Records []timeline.Record
	Found   int
	Parsed  int
	Empty   int
	Skipped int
}

// Discover walks the export tree under root and parses every fragment
// matching FragmentPattern. A fragment that cannot be read or decoded is
// logged, counted, and skipped; discovery never aborts on a single bad
// fragment. Only an unusable root is fatal.
func Discover(root string, p *Parser) (*Discovery, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("export root: %w", err)
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			monitoring.Logf("discover: skipping %s: %v", path, walkErr)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(FragmentPattern, d.Name()); ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk export root: %w", err)
	}
	// Filesystem walk order is already lexical per directory; sorting the
	// full list keeps the pass deterministic across platforms.
	sort.Strings(paths)

	res := &Discovery{Found: len(paths)}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			res.Skipped++
			monitoring.Logf("discover: skipping %s: %v", path, err)
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			res.Skipped++
			monitoring.Logf("discover: skipping %s: %v", path, err)
			continue
		}
		rec, ok, err := p.ParseFragment(path, data, info.ModTime().Unix())
		if err != nil {
			res.Skipped++
			monitoring.Logf("discover: skipping %s: %v", path, err)
			continue
		}
		if !ok {
			res.Empty++
			continue
		}
		res.Parsed++
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

// FilterStyle returns the records written in the given export dialect.
// An empty style keeps everything.
func FilterStyle(records []timeline.Record, style string) []timeline.Record {
	if style == "" {
		return records
	}
	out := make([]timeline.Record, 0, len(records))
	for _, r := range records {
		if r.Style == style {
			out = append(out, r)
		}
	}
	return out
}
