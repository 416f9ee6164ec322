package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	raw := `Sure! Here you go:
<nodes>
  <node><from_node> Alice </from_node><relationship>knows</relationship><to_node>Bob</to_node></node>
  <node><from_node>Bob</from_node><to_node>Carol</to_node></node>
  <node><from_node>Dave</from_node><relationship>likes</relationship></node>
</nodes>
Hope that helps.`

	candidates := Parse(raw)
	require.Len(t, candidates, 3)
	assert.Equal(t, Candidate{Source: "Alice", Relation: "knows", Target: "Bob"}, candidates[0])
	assert.Equal(t, Candidate{Source: "Bob", Relation: DefaultRelation, Target: "Carol"}, candidates[1])
	assert.Equal(t, Candidate{Source: "Dave", Relation: "likes", Target: ""}, candidates[2])
}

func TestParseWithoutNodes(t *testing.T) {
	assert.Empty(t, Parse("I could not find any relationships."))
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("<nodes><node><from_node>A</from_node>"))
}

func TestParseEmptyNodes(t *testing.T) {
	assert.Empty(t, Parse("<nodes>   </nodes>"))
}

func TestParseUnterminatedBlockIsDropped(t *testing.T) {
	raw := "<nodes><node><from_node>A</from_node><to_node>B</to_node></node><node><from_node>C</from_node></nodes>"
	candidates := Parse(raw)
	require.Len(t, candidates, 1)
	assert.Equal(t, "A", candidates[0].Source)
}

func TestParseUsesFirstNodesSpan(t *testing.T) {
	raw := "<nodes><node><from_node>A</from_node><to_node>B</to_node></node></nodes>" +
		"<nodes><node><from_node>C</from_node><to_node>D</to_node></node></nodes>"
	candidates := Parse(raw)
	require.Len(t, candidates, 1)
	assert.Equal(t, "B", candidates[0].Target)
}

func TestParseBlankRelationship(t *testing.T) {
	candidates := Parse("<nodes><node><from_node>A</from_node><relationship>  </relationship><to_node>B</to_node></node></nodes>")
	require.Len(t, candidates, 1)
	assert.Equal(t, "", candidates[0].Relation)
}

func TestOuterSpan(t *testing.T) {
	span, ok := OuterSpan("x <nodes>\n inner \n</nodes> y")
	require.True(t, ok)
	assert.Equal(t, "inner", span)

	_, ok = OuterSpan("<nodes> no close")
	assert.False(t, ok)
}

func TestBlocks(t *testing.T) {
	blocks := Blocks("<node>a</node> junk <node>b</node><node>c")
	assert.Equal(t, []string{"a", "b"}, blocks)
	assert.Empty(t, Blocks("nothing"))
}

func TestField(t *testing.T) {
	v, ok := Field("<from_node>  A B </from_node><from_node>C</from_node>", "from_node")
	require.True(t, ok)
	assert.Equal(t, "A B", v)

	_, ok = Field("<from_node>A", "from_node")
	assert.False(t, ok)
}
