package processors

import (
	"context"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// TextProcessor passes UTF-8 text through unchanged.
type TextProcessor struct{}

func NewTextProcessor() *TextProcessor {
	return &TextProcessor{}
}

func (p *TextProcessor) Process(ctx context.Context, content []byte) (string, error) {
	if !utf8.Valid(content) {
		return "", errors.New("content is not valid UTF-8 text")
	}
	return string(content), nil
}

func (p *TextProcessor) SupportedTypes() []string {
	return []string{"text/plain", "text/markdown"}
}
