package graph

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Segment is one bounded slice of the input text. Index is 0-based.
type Segment struct {
	Index int
	Text  string
}

// Len returns the segment length in characters.
func (s Segment) Len() int {
	return utf8.RuneCountInString(s.Text)
}

// SegmentText splits text into contiguous segments of at most size characters.
// Text that already fits yields exactly one segment, even when empty.
func SegmentText(text string, size int) ([]Segment, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "segment size must be positive, got %d", size)
	}

	if utf8.RuneCountInString(text) <= size {
		return []Segment{{Index: 0, Text: text}}, nil
	}

	var segments []Segment
	start, count := 0, 0
	for i := range text {
		if count == size {
			segments = append(segments, Segment{Index: len(segments), Text: text[start:i]})
			start, count = i, 0
		}
		count++
	}
	segments = append(segments, Segment{Index: len(segments), Text: text[start:]})
	return segments, nil
}
