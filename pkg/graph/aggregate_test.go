package graph

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialAggregator() *Aggregator {
	n := 0
	return &Aggregator{newID: func() string {
		n++
		return fmt.Sprintf("e-%d", n)
	}}
}

func TestAggregatorApply(t *testing.T) {
	agg := sequentialAggregator()
	prior := NewGraphState()

	next, skipped := agg.Apply(prior, []Candidate{
		{Source: "Alice", Relation: "knows", Target: "Bob"},
		{Source: "Bob", Relation: "works with", Target: "Carol"},
		{Source: "Alice", Relation: "knows", Target: "Bob"},
	}, 0)

	assert.Empty(t, skipped)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, next.Nodes())
	require.Equal(t, 3, next.EdgeCount())
	edges := next.Edges()
	assert.Equal(t, "e-1", edges[0].ID)
	assert.Equal(t, "e-3", edges[2].ID)
	assert.Equal(t, edges[0].Triple, edges[2].Triple, "duplicates are kept as separate edges")

	assert.Equal(t, 0, prior.NodeCount())
	assert.Equal(t, 0, prior.EdgeCount())
}

func TestAggregatorApplySkips(t *testing.T) {
	agg := sequentialAggregator()

	next, skipped := agg.Apply(NewGraphState(), []Candidate{
		{Source: "", Relation: "knows", Target: "Bob"},
		{Source: "Alice", Relation: "knows", Target: ""},
		{Source: "Alice", Relation: "is", Target: "Alice"},
	}, 2)

	assert.Equal(t, 0, next.NodeCount())
	assert.Equal(t, 0, next.EdgeCount())
	require.Len(t, skipped, 3)
	assert.Equal(t, SkipIncomplete, skipped[0].Reason)
	assert.Equal(t, SkipIncomplete, skipped[1].Reason)
	assert.Equal(t, SkipSelfLoop, skipped[2].Reason)
	assert.Equal(t, 2, skipped[0].Segment)

	assert.Equal(t, `Skipping incomplete edge from segment 3: source="", target="Bob"`, skipped[0].String())
	assert.Equal(t, "Skipping self-loop edge: Alice --(is)--> Alice", skipped[2].String())
}

func TestAggregatorApplyDoesNotChangePrior(t *testing.T) {
	agg := sequentialAggregator()
	first, _ := agg.Apply(NewGraphState(), []Candidate{{Source: "A", Relation: "r", Target: "B"}}, 0)

	second, _ := agg.Apply(first, []Candidate{{Source: "B", Relation: "r", Target: "C"}}, 1)
	third, _ := agg.Apply(first, []Candidate{{Source: "X", Relation: "r", Target: "Y"}}, 1)

	assert.Equal(t, []string{"A", "B"}, first.Nodes())
	assert.Equal(t, []string{"A", "B", "C"}, second.Nodes())
	assert.Equal(t, []string{"A", "B", "X", "Y"}, third.Nodes())
	assert.False(t, third.HasNode("C"))
}

func TestAggregatorApplySameCandidatesAgain(t *testing.T) {
	agg := sequentialAggregator()
	candidates := []Candidate{
		{Source: "Alice", Relation: "knows", Target: "Bob"},
		{Source: "Bob", Relation: "likes", Target: "Carol"},
	}

	next, _ := agg.Apply(NewGraphState(), candidates, 0)
	again, skipped := agg.Apply(next, candidates, 1)

	assert.Empty(t, skipped)
	assert.Equal(t, next.NodeCount(), again.NodeCount())
	assert.Equal(t, next.Nodes(), again.Nodes())
	assert.Equal(t, 2*next.EdgeCount(), again.EdgeCount())
}

func TestAggregatorApplyEmptyCandidates(t *testing.T) {
	agg := sequentialAggregator()
	first, _ := agg.Apply(NewGraphState(), []Candidate{{Source: "A", Relation: "r", Target: "B"}}, 0)

	next, skipped := agg.Apply(first, nil, 1)
	assert.Empty(t, skipped)
	assert.Equal(t, first.Nodes(), next.Nodes())
	assert.Equal(t, first.Edges(), next.Edges())
}

func TestNewAggregatorIDs(t *testing.T) {
	agg := NewAggregator()
	next, _ := agg.Apply(GraphState{}, []Candidate{
		{Source: "A", Relation: "r", Target: "B"},
		{Source: "B", Relation: "r", Target: "C"},
	}, 0)

	edges := next.Edges()
	require.Len(t, edges, 2)
	assert.True(t, strings.HasPrefix(edges[0].ID, "e-"))
	assert.NotEqual(t, edges[0].ID, edges[1].ID)
}

func TestGraphStateViews(t *testing.T) {
	agg := sequentialAggregator()
	state, _ := agg.Apply(NewGraphState(), []Candidate{
		{Source: "Alice", Relation: "knows", Target: "Bob"},
		{Source: "Bob", Relation: "likes", Target: "Carol"},
	}, 0)

	p := state.Projection()
	assert.Equal(t, []GraphNode{
		{ID: "Alice", Label: "Alice"},
		{ID: "Bob", Label: "Bob"},
		{ID: "Carol", Label: "Carol"},
	}, p.Nodes)
	assert.Equal(t, []GraphEdge{
		{ID: "e-1", Source: "Alice", Target: "Bob", Label: "knows"},
		{ID: "e-2", Source: "Bob", Target: "Carol", Label: "likes"},
	}, p.Edges)

	assert.Equal(t, []Row{
		{Node1: "Alice", Connection: "knows", Node2: "Bob"},
		{Node1: "Bob", Connection: "likes", Node2: "Carol"},
	}, state.Rows())

	empty := NewGraphState().Projection()
	assert.Empty(t, empty.Nodes)
	assert.Empty(t, empty.Edges)
}
