package graph

import "strings"

// Tag names of the model's answer format.
const (
	tagNodes        = "nodes"
	tagNode         = "node"
	tagFromNode     = "from_node"
	tagRelationship = "relationship"
	tagToNode       = "to_node"
)

// Parse extracts candidates from raw model output. It never fails: output
// without a <nodes> span yields no candidates, and every <node> block is read
// independently of the others.
func Parse(raw string) []Candidate {
	span, ok := OuterSpan(raw)
	if !ok {
		return nil
	}

	var candidates []Candidate
	for _, block := range Blocks(span) {
		candidates = append(candidates, parseBlock(block))
	}
	return candidates
}

// OuterSpan returns the trimmed content of the first <nodes>...</nodes> pair.
func OuterSpan(raw string) (string, bool) {
	inner, _, ok := between(raw, tagNodes, 0)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(inner), true
}

// Blocks returns the content of every <node>...</node> pair in span, in
// document order and without overlap.
func Blocks(span string) []string {
	var blocks []string
	for pos := 0; ; {
		inner, next, ok := between(span, tagNode, pos)
		if !ok {
			return blocks
		}
		blocks = append(blocks, inner)
		pos = next
	}
}

// Field returns the trimmed content of the first <tag>...</tag> pair in block.
func Field(block, tag string) (string, bool) {
	inner, _, ok := between(block, tag, 0)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(inner), true
}

func parseBlock(block string) Candidate {
	source, _ := Field(block, tagFromNode)
	target, _ := Field(block, tagToNode)
	relation, ok := Field(block, tagRelationship)
	if !ok {
		relation = DefaultRelation
	}
	return Candidate{Source: source, Relation: relation, Target: target}
}

// between finds the first <tag> at or after from and the first </tag> after
// it. It returns the text in between and the offset just past the closing tag.
func between(s, tag string, from int) (string, int, bool) {
	open := "<" + tag + ">"
	closing := "</" + tag + ">"

	start := strings.Index(s[from:], open)
	if start < 0 {
		return "", 0, false
	}
	start += from + len(open)

	end := strings.Index(s[start:], closing)
	if end < 0 {
		return "", 0, false
	}
	end += start
	return s[start:end], end + len(closing), true
}
