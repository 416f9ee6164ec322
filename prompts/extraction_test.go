package prompts

import (
	"context"
	"testing"

	"github.com/chigwell/graph-ui/pkg/graph"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractionPrompt(t *testing.T) {
	var req mcp.GetPromptRequest
	req.Params.Arguments = map[string]string{"text": "Alice knows Bob."}

	result, err := extractionPromptHandler(graph.DefaultRunConfig())(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, mcp.RoleUser, result.Messages[0].Role)

	content, ok := result.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, content.Text, graph.DefaultSystemPrompt)
	assert.Contains(t, content.Text, "following text:\n\nAlice knows Bob.")
}

func TestExtractionPromptRequiresText(t *testing.T) {
	var req mcp.GetPromptRequest
	req.Params.Arguments = map[string]string{"text": "  "}

	_, err := extractionPromptHandler(graph.DefaultRunConfig())(context.Background(), req)
	assert.Error(t, err)
}
