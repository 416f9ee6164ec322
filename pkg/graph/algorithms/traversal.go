package algorithms

import (
	"github.com/chigwell/graph-ui/pkg/graph"
	"github.com/pkg/errors"
)

type TraversalType string

const (
	BFS TraversalType = "BFS"
	DFS TraversalType = "DFS"
)

// GraphTraversal walks a GraphState treating every edge as undirected.
type GraphTraversal struct {
	adjacency map[string][]string
	state     graph.GraphState
}

func NewGraphTraversal(g graph.GraphState) *GraphTraversal {
	adjacency := make(map[string][]string)
	for _, e := range g.Edges() {
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
		adjacency[e.Target] = append(adjacency[e.Target], e.Source)
	}
	return &GraphTraversal{adjacency: adjacency, state: g}
}

// Traverse returns the nodes reachable from startID within maxDepth hops, in
// visiting order. startID itself is depth 0.
func (t *GraphTraversal) Traverse(startID string, maxDepth int, traversalType TraversalType) ([]string, error) {
	if !t.state.HasNode(startID) {
		return nil, errors.Errorf("node %q not found", startID)
	}

	switch traversalType {
	case BFS:
		return t.bfs(startID, maxDepth, make(map[string]bool)), nil
	case DFS:
		result := make([]string, 0)
		t.dfs(startID, maxDepth, make(map[string]int), &result)
		return result, nil
	default:
		return nil, errors.Errorf("unsupported traversal type: %s", traversalType)
	}
}

func (t *GraphTraversal) bfs(startID string, maxDepth int, visited map[string]bool) []string {
	queue := []string{startID}
	result := make([]string, 0)

	for depth := 0; len(queue) > 0 && depth <= maxDepth; depth++ {
		levelSize := len(queue)
		for i := 0; i < levelSize; i++ {
			current := queue[0]
			queue = queue[1:]

			if visited[current] {
				continue
			}
			visited[current] = true
			result = append(result, current)

			for _, next := range t.adjacency[current] {
				if !visited[next] {
					queue = append(queue, next)
				}
			}
		}
	}
	return result
}

// dfs records in remaining the most depth left on any arrival at a node. A
// node is walked again when reached by a shorter path, but emitted once.
func (t *GraphTraversal) dfs(currentID string, depthLeft int, remaining map[string]int, result *[]string) {
	if depthLeft < 0 {
		return
	}
	best, seen := remaining[currentID]
	if seen && best >= depthLeft {
		return
	}
	if !seen {
		*result = append(*result, currentID)
	}
	remaining[currentID] = depthLeft

	for _, next := range t.adjacency[currentID] {
		t.dfs(next, depthLeft-1, remaining, result)
	}
}

// Subgraph projects only the given nodes and the edges running between them.
func (t *GraphTraversal) Subgraph(nodes []string) graph.Projection {
	keep := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		keep[n] = true
	}

	full := t.state.Projection()
	p := graph.Projection{
		Nodes: make([]graph.GraphNode, 0, len(nodes)),
		Edges: make([]graph.GraphEdge, 0),
	}
	for _, n := range full.Nodes {
		if keep[n.ID] {
			p.Nodes = append(p.Nodes, n)
		}
	}
	for _, e := range full.Edges {
		if keep[e.Source] && keep[e.Target] {
			p.Edges = append(p.Edges, e)
		}
	}
	return p
}
