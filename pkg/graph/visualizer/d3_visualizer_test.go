package visualizer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/chigwell/graph-ui/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProjection() graph.Projection {
	return graph.Projection{
		Nodes: []graph.GraphNode{{ID: "Alice", Label: "Alice"}, {ID: "Bob", Label: "Bob"}},
		Edges: []graph.GraphEdge{{ID: "e-1", Source: "Alice", Target: "Bob", Label: "knows"}},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewD3Visualizer("unused.html").Render(&buf, sampleProjection()))

	page := buf.String()
	assert.Contains(t, page, "Nodes: 2, Edges: 1")
	assert.Contains(t, page, `"label":"knows"`)
	assert.Contains(t, page, `const graphData = {"nodes":`)
}

func TestVisualize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viz", "graph.html")
	require.NoError(t, NewD3Visualizer(path).Visualize(sampleProjection()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "d3.forceSimulation")
}
