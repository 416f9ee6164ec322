package processors

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

// HTMLProcessor is responsible for processing HTML content.
type HTMLProcessor struct{}

// NewHTMLProcessor creates a new instance of HTMLProcessor.
func NewHTMLProcessor() *HTMLProcessor {
	return &HTMLProcessor{}
}

// Process returns the visible text of the document body. Script and style
// elements are dropped first.
func (p *HTMLProcessor) Process(ctx context.Context, content []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return "", errors.Wrap(err, "failed to create document from HTML content")
	}

	doc.Find("script, style, noscript").Remove()
	return strings.TrimSpace(doc.Find("body").Text()), nil
}

// SupportedTypes returns the MIME types supported by the HTMLProcessor.
func (p *HTMLProcessor) SupportedTypes() []string {
	return []string{"text/html"}
}
