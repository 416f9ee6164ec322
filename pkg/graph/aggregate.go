package graph

import (
	"fmt"

	"github.com/google/uuid"
)

// SkipReason says why a candidate was not added to the graph.
type SkipReason string

const (
	SkipIncomplete SkipReason = "incomplete"
	SkipSelfLoop   SkipReason = "self_loop"
)

// SkipEvent records a rejected candidate.
type SkipEvent struct {
	Segment   int
	Reason    SkipReason
	Candidate Candidate
}

func (e SkipEvent) String() string {
	c := e.Candidate
	switch e.Reason {
	case SkipSelfLoop:
		return fmt.Sprintf("Skipping self-loop edge: %s --(%s)--> %s", c.Source, c.Relation, c.Target)
	default:
		return fmt.Sprintf("Skipping incomplete edge from segment %d: source=%q, target=%q",
			e.Segment+1, c.Source, c.Target)
	}
}

// Aggregator folds parsed candidates into a GraphState.
type Aggregator struct {
	newID func() string
}

// NewAggregator returns an aggregator that names edges "e-<uuid>".
func NewAggregator() *Aggregator {
	return &Aggregator{newID: func() string { return "e-" + uuid.NewString() }}
}

// Apply returns prior extended with the valid candidates, plus one skip event
// per rejected candidate. Candidates are handled in order. prior is not changed.
func (a *Aggregator) Apply(prior GraphState, candidates []Candidate, segment int) (GraphState, []SkipEvent) {
	next := prior.clone()
	var skipped []SkipEvent

	for _, c := range candidates {
		switch {
		case c.Source == "" || c.Target == "":
			skipped = append(skipped, SkipEvent{Segment: segment, Reason: SkipIncomplete, Candidate: c})
		case c.Source == c.Target:
			skipped = append(skipped, SkipEvent{Segment: segment, Reason: SkipSelfLoop, Candidate: c})
		default:
			next.edges = append(next.edges, Edge{
				ID:     a.newID(),
				Triple: Triple{Source: c.Source, Relation: c.Relation, Target: c.Target},
			})
			next.addNode(c.Source)
			next.addNode(c.Target)
		}
	}
	return next, skipped
}
