package processors

import (
	"bytes"
	"context"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

type PDFProcessor struct{}

func NewPDFProcessor() *PDFProcessor {
	return &PDFProcessor{}
}

// Process concatenates the plain text of every readable page. Pages that
// fail to decode are skipped.
func (p *PDFProcessor) Process(ctx context.Context, content []byte) (string, error) {
	reader := bytes.NewReader(content)

	r, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return "", errors.Wrap(err, "opening pdf")
	}

	var sb strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}

func (p *PDFProcessor) SupportedTypes() []string {
	return []string{"application/pdf"}
}
