package graph

import (
	"strings"

	"github.com/pkg/errors"
)

// ExtractionRequest is the pair of instructions sent to the model for one segment.
type ExtractionRequest struct {
	System string
	User   string
}

// BuildRequest renders the instructions for seg. The segment text is inserted
// verbatim in place of the first placeholder; the system prompt is passed through.
func BuildRequest(seg Segment, cfg RunConfig) (ExtractionRequest, error) {
	if !strings.Contains(cfg.UserTemplate, Placeholder) {
		return ExtractionRequest{}, errors.Wrapf(ErrInvalidConfiguration,
			"user template has no %s placeholder", Placeholder)
	}
	return ExtractionRequest{
		System: cfg.SystemPrompt,
		User:   strings.Replace(cfg.UserTemplate, Placeholder, seg.Text, 1),
	}, nil
}
