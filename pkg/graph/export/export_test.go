package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chigwell/graph-ui/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV(t *testing.T) {
	rows := []graph.Row{
		{Node1: "Alice", Connection: "knows", Node2: "Bob"},
		{Node1: "Bob", Connection: "works with", Node2: "Carol"},
	}
	assert.Equal(t, "Node 1,Connection,Node 2\nAlice,knows,Bob\nBob,works with,Carol", CSV(rows))
}

func TestCSVEmpty(t *testing.T) {
	assert.Equal(t, "Node 1,Connection,Node 2", CSV(nil))
}

func TestCSVDoesNotEscape(t *testing.T) {
	rows := []graph.Row{{Node1: "Smith, John", Connection: `said "hi"`, Node2: "Bob"}}
	assert.Equal(t, "Node 1,Connection,Node 2\nSmith, John,said \"hi\",Bob", CSV(rows))
}

func TestCSVFilename(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 7, 9, 123000000, time.FixedZone("X", 3600))
	assert.Equal(t, "graph-data-2024-03-05T13:07:09.123Z.csv", CSVFilename(ts))
}

func TestWriteCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	path, err := WriteCSV(dir, []graph.Row{{Node1: "A", Connection: "r", Node2: "B"}}, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "graph-data-2024-01-02T03:04:05.000Z.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Node 1,Connection,Node 2\nA,r,B", string(data))
}

func TestWriteJSON(t *testing.T) {
	state, _ := graph.NewAggregator().Apply(graph.NewGraphState(), []graph.Candidate{
		{Source: "Alice", Relation: "knows", Target: "Bob"},
	}, 0)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "out", "graph.json")

	require.NoError(t, WriteJSON(path, NewDocument(state, now)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc.Nodes, 2)
	require.Len(t, doc.Edges, 1)
	assert.Equal(t, "knows", doc.Edges[0].Label)
	assert.Equal(t, []graph.Row{{Node1: "Alice", Connection: "knows", Node2: "Bob"}}, doc.Rows)
	assert.True(t, now.Equal(doc.GeneratedAt))
}
