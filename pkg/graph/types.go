package graph

import (
	"context"
	"fmt"
)

// DefaultRelation is used when a block carries no <relationship> tag.
const DefaultRelation = "related"

// Candidate is a triple as it came out of the parser, before validation.
// An empty Source or Target means the tag was missing or blank.
type Candidate struct {
	Source   string `json:"source"`
	Relation string `json:"relation"`
	Target   string `json:"target"`
}

// Triple is an accepted (source, relation, target) fact.
type Triple struct {
	Source   string `json:"source"`
	Relation string `json:"relation"`
	Target   string `json:"target"`
}

func (t Triple) String() string {
	return fmt.Sprintf("%s --(%s)--> %s", t.Source, t.Relation, t.Target)
}

// Edge is an accepted triple with its generated identifier.
type Edge struct {
	ID string `json:"id"`
	Triple
}

// GraphNode is a node of the graph projection.
type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// GraphEdge is an edge of the graph projection.
type GraphEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// Projection is the renderable view of a GraphState.
type Projection struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Row is one line of the tabular view.
type Row struct {
	Node1      string `json:"node1"`
	Connection string `json:"connection"`
	Node2      string `json:"node2"`
}

// Extractor is the language model capability: given the instructions for one
// segment it returns the generated text. Implementations should return errors
// wrapping ErrModelUnavailable or ErrModelError.
type Extractor interface {
	Invoke(ctx context.Context, req ExtractionRequest, cfg RunConfig) (string, error)
}
