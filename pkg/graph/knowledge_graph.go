package graph

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// GraphState is the running node set and edge list of one run. The zero value
// is an empty graph. A GraphState is treated as a value: Aggregator.Apply
// returns a new state and never changes the one it was given.
type GraphState struct {
	nodes   []string
	nodeSet mapset.Set[string]
	edges   []Edge
}

// NewGraphState returns an empty graph.
func NewGraphState() GraphState {
	return GraphState{nodeSet: mapset.NewThreadUnsafeSet[string]()}
}

// NodeCount returns the number of unique nodes.
func (g GraphState) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of accepted edges.
func (g GraphState) EdgeCount() int {
	return len(g.edges)
}

// HasNode reports whether id has been seen.
func (g GraphState) HasNode(id string) bool {
	return g.nodeSet != nil && g.nodeSet.Contains(id)
}

// Nodes returns node identifiers in first-seen order.
func (g GraphState) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns accepted edges in acceptance order.
func (g GraphState) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// clone returns a copy that can be extended without touching g.
func (g GraphState) clone() GraphState {
	next := GraphState{
		nodes: make([]string, len(g.nodes), len(g.nodes)+8),
		edges: make([]Edge, len(g.edges), len(g.edges)+8),
	}
	copy(next.nodes, g.nodes)
	copy(next.edges, g.edges)
	if g.nodeSet != nil {
		next.nodeSet = g.nodeSet.Clone()
	} else {
		next.nodeSet = mapset.NewThreadUnsafeSet[string]()
	}
	return next
}

// addNode records id if it has not been seen yet.
func (g *GraphState) addNode(id string) {
	if g.nodeSet.Add(id) {
		g.nodes = append(g.nodes, id)
	}
}

// Projection builds the graph view: one node per identifier labelled with
// itself, one edge per accepted triple.
func (g GraphState) Projection() Projection {
	p := Projection{
		Nodes: make([]GraphNode, 0, len(g.nodes)),
		Edges: make([]GraphEdge, 0, len(g.edges)),
	}
	for _, id := range g.nodes {
		p.Nodes = append(p.Nodes, GraphNode{ID: id, Label: id})
	}
	for _, e := range g.edges {
		p.Edges = append(p.Edges, GraphEdge{
			ID:     e.ID,
			Source: e.Source,
			Target: e.Target,
			Label:  e.Relation,
		})
	}
	return p
}

// Rows builds the tabular view in edge order.
func (g GraphState) Rows() []Row {
	rows := make([]Row, 0, len(g.edges))
	for _, e := range g.edges {
		rows = append(rows, Row{Node1: e.Source, Connection: e.Relation, Node2: e.Target})
	}
	return rows
}
