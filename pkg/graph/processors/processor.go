package processors

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Processor turns raw file content into the plain text fed to the pipeline.
type Processor interface {
	Process(ctx context.Context, content []byte) (string, error)
	SupportedTypes() []string
}

// ForPath picks a processor by file extension. Unknown extensions are read
// as plain text.
func ForPath(path string) Processor {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return NewHTMLProcessor()
	case ".pdf":
		return NewPDFProcessor()
	default:
		return NewTextProcessor()
	}
}

// LoadFile reads path and converts it with the matching processor.
func LoadFile(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	text, err := ForPath(path).Process(ctx, content)
	if err != nil {
		return "", errors.Wrapf(err, "processing %s", path)
	}
	return text, nil
}
