package export

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chigwell/graph-ui/pkg/graph"
	"github.com/pkg/errors"
)

// CSVHeader is the first line of every export.
var CSVHeader = []string{"Node 1", "Connection", "Node 2"}

// CSV renders rows as comma separated text. Fields are joined as-is: commas,
// quotes and newlines inside a field are not escaped, so such values will
// not round-trip through a CSV reader.
func CSV(rows []graph.Row) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(CSVHeader, ","))
	for _, r := range rows {
		lines = append(lines, strings.Join([]string{r.Node1, r.Connection, r.Node2}, ","))
	}
	return strings.Join(lines, "\n")
}

// CSVFilename returns graph-data-<ISO-8601 UTC timestamp>.csv.
func CSVFilename(t time.Time) string {
	return "graph-data-" + t.UTC().Format("2006-01-02T15:04:05.000Z07:00") + ".csv"
}

// WriteCSV writes rows into dir under a timestamped name and returns the path.
func WriteCSV(dir string, rows []graph.Row, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "creating export directory %s", dir)
	}
	path := filepath.Join(dir, CSVFilename(now))
	if err := os.WriteFile(path, []byte(CSV(rows)), 0644); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}
	return path, nil
}
