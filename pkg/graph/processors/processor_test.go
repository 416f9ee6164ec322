package processors

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForPath(t *testing.T) {
	assert.IsType(t, &HTMLProcessor{}, ForPath("page.HTML"))
	assert.IsType(t, &HTMLProcessor{}, ForPath("page.htm"))
	assert.IsType(t, &PDFProcessor{}, ForPath("paper.pdf"))
	assert.IsType(t, &TextProcessor{}, ForPath("notes.md"))
	assert.IsType(t, &TextProcessor{}, ForPath("README"))
}

func TestTextProcessor(t *testing.T) {
	p := NewTextProcessor()

	text, err := p.Process(context.Background(), []byte("Alice knows Bob.\n"))
	require.NoError(t, err)
	assert.Equal(t, "Alice knows Bob.\n", text)

	_, err = p.Process(context.Background(), []byte{0xff, 0xfe})
	assert.Error(t, err)
}

func TestHTMLProcessor(t *testing.T) {
	html := `<html><head><title>t</title><style>body{}</style></head>
<body><h1>Team</h1><script>var x = 1;</script><p>Alice manages Bob.</p></body></html>`

	text, err := NewHTMLProcessor().Process(context.Background(), []byte(html))
	require.NoError(t, err)
	assert.Contains(t, text, "Team")
	assert.Contains(t, text, "Alice manages Bob.")
	assert.NotContains(t, text, "var x")
	assert.NotContains(t, text, "body{}")
}

func TestPDFProcessorRejectsGarbage(t *testing.T) {
	_, err := NewPDFProcessor().Process(context.Background(), []byte("not a pdf"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.html")
	require.NoError(t, os.WriteFile(path, []byte("<body><p>Carol likes Dave.</p></body>"), 0644))

	text, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Carol likes Dave.", text)

	_, err = LoadFile(context.Background(), filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
