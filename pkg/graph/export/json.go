package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/chigwell/graph-ui/pkg/graph"
	"github.com/pkg/errors"
)

// Document is the JSON shape written by WriteJSON.
type Document struct {
	Nodes       []graph.GraphNode `json:"nodes"`
	Edges       []graph.GraphEdge `json:"edges"`
	Rows        []graph.Row       `json:"rows"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// NewDocument bundles the graph and tabular views of state.
func NewDocument(state graph.GraphState, now time.Time) Document {
	p := state.Projection()
	return Document{
		Nodes:       p.Nodes,
		Edges:       p.Edges,
		Rows:        state.Rows(),
		GeneratedAt: now.UTC(),
	}
}

// WriteJSON writes doc to path, creating parent directories as needed.
func WriteJSON(path string, doc Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "creating directory %s", dir)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding graph")
	}

	return os.WriteFile(path, data, 0644)
}
